package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/tui"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Re-scan the project and confirm no issues remain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tui.RenderSection("VERIFICATION"))

			res, err := newAuditService().Verify(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("verify failed: %w", err)
			}

			fmt.Fprint(out, tui.RenderVerify(res))
			return nil
		},
	}
}
