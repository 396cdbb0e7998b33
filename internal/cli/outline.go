package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/orgtree/internal/ui/pretty"
)

func newOutlineCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "Show the headline skeleton of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, doc, err := parseFile(globals, args[0], "headline")
			if err != nil {
				return err
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(*globals.color, os.Stdout))
			return pretty.NewOutlineRenderer(styles).Render(os.Stdout, doc)
		},
	}
	return cmd
}
