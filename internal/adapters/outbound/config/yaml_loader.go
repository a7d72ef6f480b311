package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xcodeaudit/xcodeaudit/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".xcodeaudit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .xcodeaudit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .xcodeaudit.yaml from root.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(root string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging so typos in the user's input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of the defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if len(override.ProjectDirs) > 0 {
		result.ProjectDirs = override.ProjectDirs
	}
	// Explicit keywords replace the defaults entirely.
	if len(override.RiskKeywords) > 0 {
		result.RiskKeywords = override.RiskKeywords
	}
	// User rules are evaluated before the built-in table, see RuleSet.
	if len(override.OutputRules) > 0 {
		result.OutputRules = override.OutputRules
	}

	if override.DefaultOutputPath != "" {
		result.DefaultOutputPath = override.DefaultOutputPath
	}
	if override.BackupDir != "" {
		result.BackupDir = override.BackupDir
	}
	if override.ReportFile != "" {
		result.ReportFile = override.ReportFile
	}
	if override.Hook.File != "" {
		result.Hook.File = override.Hook.File
	}
	if override.Hook.Enabled != nil {
		result.Hook.Enabled = override.Hook.Enabled
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	return result
}

// ErrConfigExists is returned by Save when the file is already present and
// overwrite was not requested.
var ErrConfigExists = errors.New(fileName + " already exists")

const fileHeader = `# xcodeaudit configuration
#
# output_rules are checked before the built-in rules, first match wins:
#   output_rules:
#     - contains: ["Sentry", "dSYM"]
#       output_path: "$(DERIVED_FILE_DIR)/sentry-upload-done"
`

// Save writes cfg to root/.xcodeaudit.yaml and returns the written path.
func (l *YAMLLoader) Save(root string, cfg domain.ProjectConfig, overwrite bool) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid config: %w", err)
	}

	dest := filepath.Join(root, fileName)
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return "", ErrConfigExists
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(dest, append([]byte(fileHeader), data...), 0644); err != nil {
		return "", err
	}
	return dest, nil
}
