package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xcodeaudit/xcodeaudit/internal/adapters/outbound/config"
	"github.com/xcodeaudit/xcodeaudit/internal/domain"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .xcodeaudit.yaml configuration file",
		Long:  "Create a .xcodeaudit.yaml in the current directory with the default keywords, paths and log level.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := projectRoot()
			if err != nil {
				return err
			}

			dest, err := config.New().Save(root, domain.DefaultConfig(), force)
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			if err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .xcodeaudit.yaml")

	return cmd
}
