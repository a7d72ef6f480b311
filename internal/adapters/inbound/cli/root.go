package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/tui"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xcodeaudit",
		Short: "Add output paths to shell-script build phases",
		Long: "xcodeaudit finds shell-script build phases in the Xcode project under the current directory " +
			"that declare no output paths, patches synthetic outputs into project.pbxproj, and verifies the result. " +
			"Without a command it runs the full scan, fix, verify and report cycle.",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogger,
		RunE:              runFull,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newFullCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, tui.RenderError(err))
		return err
	}
	return nil
}

// projectRoot is the directory the audit runs against.
func projectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}
