package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/orgtree/internal/ui/pretty"
	"github.com/yaklabco/orgtree/pkg/langdetect"
	"github.com/yaklabco/orgtree/pkg/orgast"
)

func newLangsCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "langs FILE",
		Short: "Report the source languages of a document's code blocks",
		Long: `langs walks the document's src blocks and counts their languages.
Blocks without a language tag are classified from their content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, doc, err := parseFile(globals, args[0], "element")
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			detected := make(map[string]int)
			for _, block := range orgast.FindByKind(doc, orgast.NodeSrcBlock) {
				lang := block.Block.Language
				if lang == "" {
					lang = langdetect.Detect([]byte(block.Raw))
					detected[lang]++
				}
				counts[lang]++
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(*globals.color, os.Stdout))
			langs := make([]string, 0, len(counts))
			for l := range counts {
				langs = append(langs, l)
			}
			sort.Strings(langs)
			for _, l := range langs {
				line := fmt.Sprintf("%-16s %d", l, counts[l])
				if detected[l] > 0 {
					line += " " + styles.Dim.Render(fmt.Sprintf("(%d detected)", detected[l]))
				}
				fmt.Fprintln(os.Stdout, line)
			}
			return nil
		},
	}
	return cmd
}
