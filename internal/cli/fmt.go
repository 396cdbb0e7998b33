package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/orgtree/pkg/writer"
)

// ErrNotNormalized signals that --check found a non-canonical file.
var ErrNotNormalized = errors.New("file is not normalized")

func newFmtCommand(globals *globalFlags) *cobra.Command {
	var write bool
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Normalize a document through a parse/interpret round-trip",
		Long: `fmt parses the document and interprets the tree back to its canonical
textual form: stable tag alignment, normalized indentation, preserved
blank-line counts. By default the result goes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, doc, err := parseFile(globals, args[0], "object")
			if err != nil {
				return err
			}
			out := writer.Interpret(doc, cfg.Syntax())

			original, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			switch {
			case check:
				if string(original) != out {
					return fmt.Errorf("%s: %w", args[0], ErrNotNormalized)
				}
				return nil
			case write:
				if string(original) == out {
					return nil
				}
				return os.WriteFile(args[0], []byte(out), 0o644)
			default:
				_, err := os.Stdout.WriteString(out)
				return err
			}
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	cmd.Flags().BoolVar(&check, "check", false, "exit non-zero when the file is not canonical")
	return cmd
}
