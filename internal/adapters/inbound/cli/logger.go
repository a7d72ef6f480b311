package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/config"
	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

// logLevelEnv overrides log_level from .xcodeaudit.yaml.
const logLevelEnv = "XCODEAUDIT_LOG_LEVEL"

// setupLogger attaches a stderr console logger to the command context.
// Progress output stays on stdout; the logger carries diagnostics only.
//
// A config that fails to load does not stop the command here: the audit
// verbs report it themselves, and init must still be able to replace it.
func setupLogger(cmd *cobra.Command, _ []string) error {
	root, err := logRoot(cmd)
	if err != nil {
		return err
	}

	level := domain.DefaultLogLevel
	cfg, cfgErr := config.New().Load(root)
	if cfgErr == nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if env := os.Getenv(logLevelEnv); env != "" {
		level = env
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Str("level", level).Msg("config not loaded, using default log level")
	}

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// logRoot is the directory whose config sets the log level: the command's
// --path when it has one, otherwise the working directory.
func logRoot(cmd *cobra.Command) (string, error) {
	if f := cmd.Flags().Lookup("path"); f != nil && f.Value.String() != "" {
		return f.Value.String(), nil
	}
	return projectRoot()
}
