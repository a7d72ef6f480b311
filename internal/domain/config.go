package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default file locations, relative to the project root.
const (
	DefaultBackupDir  = ".xcode_backup"
	DefaultReportFile = "xcode-audit-report.json"
	DefaultHookFile   = "podfile_post_install_hook.rb"
	DefaultLogLevel   = "warn"
)

// DefaultProjectDirs are searched in order for a *.xcodeproj directory.
var DefaultProjectDirs = []string{"ios", "."}

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// ProjectConfig holds project-level configuration loaded from .xcodeaudit.yaml.
type ProjectConfig struct {
	ProjectDirs       []string     `yaml:"project_dirs"        json:"project_dirs,omitempty"`
	RiskKeywords      []string     `yaml:"risk_keywords"       json:"risk_keywords,omitempty"`
	OutputRules       []OutputRule `yaml:"output_rules"        json:"output_rules,omitempty"`
	DefaultOutputPath string       `yaml:"default_output_path" json:"default_output_path,omitempty"`
	BackupDir         string       `yaml:"backup_dir"          json:"backup_dir,omitempty"`
	ReportFile        string       `yaml:"report_file"         json:"report_file,omitempty"`
	Hook              HookConfig   `yaml:"hook"                json:"hook"`
	LogLevel          string       `yaml:"log_level"           json:"log_level,omitempty"`
}

// HookConfig controls the Podfile hook written after a fix.
// Enabled is a pointer so an absent key keeps the default.
type HookConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	File    string `yaml:"file"              json:"file,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		ProjectDirs:       append([]string{}, DefaultProjectDirs...),
		RiskKeywords:      append([]string{}, DefaultRiskKeywords...),
		DefaultOutputPath: DefaultOutputPath,
		BackupDir:         DefaultBackupDir,
		ReportFile:        DefaultReportFile,
		Hook:              HookConfig{File: DefaultHookFile},
		LogLevel:          DefaultLogLevel,
	}
}

// RuleSet returns user rules followed by the built-in rules.
func (c ProjectConfig) RuleSet() RuleSet {
	rules := make([]OutputRule, 0, len(c.OutputRules)+len(BuiltinOutputRules))
	rules = append(rules, c.OutputRules...)
	rules = append(rules, BuiltinOutputRules...)
	return RuleSet{Rules: rules, Default: c.DefaultOutputPath}
}

// HookEnabled reports whether the Podfile hook should be written.
func (c ProjectConfig) HookEnabled() bool {
	return c.Hook.Enabled == nil || *c.Hook.Enabled
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	for _, kw := range c.RiskKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("risk_keywords contains an empty keyword")
		}
	}

	for i, r := range c.OutputRules {
		if len(r.Contains) == 0 {
			return fmt.Errorf("output_rules[%d]: contains must list at least one substring", i)
		}
		for _, s := range r.Contains {
			if s == "" {
				return fmt.Errorf("output_rules[%d]: contains has an empty substring", i)
			}
		}
		if r.OutputPath == "" {
			return fmt.Errorf("output_rules[%d]: output_path is required", i)
		}
	}

	paths := map[string]string{
		"backup_dir":  c.BackupDir,
		"report_file": c.ReportFile,
		"hook.file":   c.Hook.File,
	}
	for key, p := range paths {
		if err := validateRelative(key, p); err != nil {
			return err
		}
	}
	for _, d := range c.ProjectDirs {
		if err := validateRelative("project_dirs", d); err != nil {
			return err
		}
	}

	if c.LogLevel != "" && !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (valid: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	return nil
}

func validateRelative(key, p string) error {
	if p == "" {
		return nil
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("%s %q must be relative to the project root", key, p)
	}
	clean := filepath.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s %q escapes the project root", key, p)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
