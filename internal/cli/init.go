package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/orgtree/internal/logging"
	"github.com/yaklabco/orgtree/pkg/config"
)

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := config.DefaultFileName
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			logging.Default().Info("wrote configuration", logging.FieldPath, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
