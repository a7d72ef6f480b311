package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

func TestOutputPathFor_BuiltinRules(t *testing.T) {
	rs := domain.DefaultRuleSet()

	tests := []struct {
		phase string
		want  string
	}{
		{"Bundle React Native code and images", "$(DERIVED_FILE_DIR)/main.jsbundle"},
		{"Bundle React Native code", "$(DERIVED_FILE_DIR)/main.jsbundle"},
		{"[CP-User] [RNFB] Core Configuration", "$(DERIVED_FILE_DIR)/rnfb-config-generated"},
		{"Firebase Crashlytics", "$(DERIVED_FILE_DIR)/rnfb-config-generated"},
		{"Start Packager", "$(DERIVED_FILE_DIR)/packager-started"},
		{"[CP-User] Generate Assets", "$(DERIVED_FILE_DIR)/script-output-generated"},
		{"bundle lowercase", "$(DERIVED_FILE_DIR)/script-output-generated"},
	}

	for _, tt := range tests {
		t.Run(tt.phase, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.OutputPathFor(tt.phase))
		})
	}
}

func TestOutputPathFor_FirstMatchWins(t *testing.T) {
	rs := domain.DefaultRuleSet()
	// Matches both the bundle and the packager rule.
	assert.Equal(t, "$(DERIVED_FILE_DIR)/main.jsbundle", rs.OutputPathFor("Bundle and Start Packager"))
}

func TestOutputPathFor_EmptyDefault(t *testing.T) {
	rs := domain.RuleSet{}
	assert.Equal(t, domain.DefaultOutputPath, rs.OutputPathFor("anything"))
}

func TestOutputRule_Matches(t *testing.T) {
	r := domain.OutputRule{Contains: []string{"Sentry", "dSYM"}}
	assert.True(t, r.Matches("Upload dSYMs"))
	assert.True(t, r.Matches("Sentry"))
	assert.False(t, r.Matches("sentry"))
}
