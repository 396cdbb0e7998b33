package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/orgtree/internal/logging"
	"github.com/yaklabco/orgtree/internal/ui/pretty"
	"github.com/yaklabco/orgtree/pkg/buffer"
	"github.com/yaklabco/orgtree/pkg/config"
	"github.com/yaklabco/orgtree/pkg/orgast"
	"github.com/yaklabco/orgtree/pkg/parser"
)

func newParseCommand(globals *globalFlags) *cobra.Command {
	var granularity string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a document and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, doc, err := parseFile(globals, args[0], granularity)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(treeJSON(doc))
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(*globals.color, os.Stdout))
			width := pretty.TerminalWidth(os.Stdout, 100)
			return pretty.NewTreeRenderer(styles, width).Render(os.Stdout, doc)
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", "",
		"parse depth: headline, greater-element, element, object")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the tree as JSON")
	return cmd
}

// parseFile loads configuration and parses one document.
func parseFile(globals *globalFlags, path, granularity string) (*config.Config, *orgast.Node, error) {
	cfg, err := config.Load(*globals.configPath, filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	if granularity == "" {
		granularity = cfg.Granularity
	}
	g, ok := parser.GranularityByName(granularity)
	if !ok {
		return nil, nil, fmt.Errorf("unknown granularity %q", granularity)
	}

	logger := logging.Default()
	logger.Debug("parsing",
		logging.FieldPath, path,
		logging.FieldBytes, len(data),
		logging.FieldGranularity, g.String(),
	)

	p := parser.New(buffer.NewView(data), cfg.Syntax())
	p.Granularity = g
	doc := p.Parse()

	logger.Debug("parsed",
		logging.FieldElements, len(orgast.FindAll(doc, func(n *orgast.Node) bool {
			return n.Kind.IsElement()
		})),
	)
	return cfg, doc, nil
}

// jsonNode is the serializable shape of a tree node.
type jsonNode struct {
	Kind     string      `json:"kind"`
	Begin    int         `json:"begin"`
	End      int         `json:"end"`
	Value    string      `json:"value,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func treeJSON(n *orgast.Node) *jsonNode {
	out := &jsonNode{
		Kind:  n.Kind.String(),
		Begin: n.Begin,
		End:   n.End,
		Value: n.Raw,
	}
	for _, sec := range n.SecondaryStrings() {
		for _, obj := range sec {
			out.Children = append(out.Children, treeJSON(obj))
		}
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		out.Children = append(out.Children, treeJSON(c))
	}
	return out
}
