package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/tui"
)

func newFullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "full",
		Short: "Scan, fix, verify and write the audit report",
		Long:  "Run the complete cycle: scan, and when issues exist back up, fix and verify. The JSON report is always written at the end.",
		Args:  cobra.NoArgs,
		RunE:  runFull,
	}
}

func runFull(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, tui.RenderBanner())

	res, err := newFullService().Run(cmd.Context(), root)
	if res != nil {
		fmt.Fprint(out, tui.RenderSection("SCANNING FOR ISSUES"))
		fmt.Fprint(out, tui.RenderScan(res.Scan))
		if res.Fix != nil {
			fmt.Fprint(out, tui.RenderSection("APPLYING FIXES"))
			fmt.Fprint(out, tui.RenderFix(res.Fix))
		}
		if res.Verify != nil {
			fmt.Fprint(out, tui.RenderSection("VERIFICATION"))
			fmt.Fprint(out, tui.RenderVerify(res.Verify))
		}
	}
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	fmt.Fprint(out, tui.RenderReport(res.Report, res.ReportPath))
	fmt.Fprint(out, tui.RenderSection("AUDIT COMPLETE"))
	return nil
}
