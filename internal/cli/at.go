package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/foldedit"
	"github.com/yaklabco/gofold/pkg/foldtree"
	"github.com/yaklabco/gofold/pkg/runner"
)

// atOutput is the JSON form of the at command.
type atOutput struct {
	foldtree.Record
	Label string `json:"label,omitempty"`
}

func newAtCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "at FILE LINE",
		Short: "Show the innermost fold enclosing a line",
		Long: `Show the innermost fold whose range contains LINE (one-based).

Exits with status 1 when no fold encloses the line.`,
		Example: `  gofold at main.py 12
  gofold at src/lib.rs 40 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}

			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			outcome, err := openFile(commandContext(cmd), cfg, args[0])
			if err != nil {
				return err
			}

			node := outcome.Tree.NodeAt(line)
			if node == nil {
				return fmt.Errorf("%w %d in %s", ErrNoFold, line+1, args[0])
			}
			label := nodeLabel(outcome, node)
			logging.FromContext(commandContext(cmd)).Debug("fold found",
				logging.FieldLine, line,
				logging.FieldRange, node.Range(),
			)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.Marshal(atOutput{Record: node.Record(), Label: label})
				if err != nil {
					return fmt.Errorf("encode fold: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
			_, err = fmt.Fprint(out, styles.FormatFold(node, label))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the fold as a JSON record (zero-based lines)")
	return cmd
}

func newTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print a file's fold tree as JSON records",
		Long: `Print every fold of FILE in pre-order as JSON records with zero-based
start and end lines, nesting level, parent tag and child tags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			outcome, err := openFile(commandContext(cmd), cfg, args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), outcome.Tree.String())
			return err
		},
	}

	return cmd
}

// nodeLabel returns the label text written after node's open marker.
func nodeLabel(outcome runner.FileOutcome, node *foldtree.Node) string {
	return foldedit.Label(outcome.Snapshot.Text(node.Start), outcome.Markers)
}
