package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/tui"
)

func newFixCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix",
		Short: "Patch output paths into risky shell-script phases",
		Long:  "Back up project.pbxproj, insert an outputPaths clause into every risky shell-script phase that lacks one, and write a Podfile post_install hook.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tui.RenderSection("APPLYING FIXES"))

			res, err := newAuditService().Fix(cmd.Context(), root)
			if res != nil {
				fmt.Fprint(out, tui.RenderFix(res))
			}
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}
			return nil
		},
	}
}
