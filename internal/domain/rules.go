package domain

import "strings"

// DefaultRiskKeywords are the phase-name substrings that mark a shell-script
// phase as one Xcode will warn about when it declares no outputs.
var DefaultRiskKeywords = []string{
	"Bundle React Native code",
	"RNFB",
	"Core Configuration",
	"Start Packager",
	"[CP-User]",
}

// DefaultOutputPath is used when no rule matches a phase name.
const DefaultOutputPath = "$(DERIVED_FILE_DIR)/script-output-generated"

// OutputRule maps phase names containing any of Contains to OutputPath.
type OutputRule struct {
	Contains   []string `yaml:"contains"    json:"contains"`
	OutputPath string   `yaml:"output_path" json:"output_path"`
}

// Matches reports whether name contains any of the rule's substrings.
func (r OutputRule) Matches(name string) bool {
	for _, s := range r.Contains {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// BuiltinOutputRules is the ordered rule table. Order matters: a name like
// "Bundle React Native code" must resolve to the bundle output.
var BuiltinOutputRules = []OutputRule{
	{Contains: []string{"React Native", "Bundle"}, OutputPath: "$(DERIVED_FILE_DIR)/main.jsbundle"},
	{Contains: []string{"RNFB", "Firebase"}, OutputPath: "$(DERIVED_FILE_DIR)/rnfb-config-generated"},
	{Contains: []string{"Packager"}, OutputPath: "$(DERIVED_FILE_DIR)/packager-started"},
}

// RuleSet is an ordered rule table plus the fallback path.
type RuleSet struct {
	Rules   []OutputRule
	Default string
}

// DefaultRuleSet returns the built-in rules.
func DefaultRuleSet() RuleSet {
	return RuleSet{Rules: BuiltinOutputRules, Default: DefaultOutputPath}
}

// OutputPathFor returns the output path of the first matching rule.
func (rs RuleSet) OutputPathFor(phaseName string) string {
	for _, r := range rs.Rules {
		if r.Matches(phaseName) {
			return r.OutputPath
		}
	}
	if rs.Default == "" {
		return DefaultOutputPath
	}
	return rs.Default
}
