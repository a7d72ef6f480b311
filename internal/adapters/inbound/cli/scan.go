package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/tui"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Report shell-script phases without output paths",
		Long:  "Locate project.pbxproj and list risky shell-script build phases that declare no output paths. Nothing is written.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tui.RenderSection("SCANNING FOR ISSUES"))

			res, err := newAuditService().Scan(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			fmt.Fprint(out, tui.RenderScan(res))
			return nil
		},
	}
}
