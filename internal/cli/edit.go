package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/pkg/config"
	"github.com/yaklabco/gofold/pkg/foldedit"
)

type editFlags struct {
	dryRun    bool
	noBackups bool
}

func addEditFlags(cmd *cobra.Command, flags *editFlags) {
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "print a diff instead of writing the file")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "do not write a .bak file before editing")
}

func (f *editFlags) overrides() *config.Config {
	return &config.Config{DryRun: f.dryRun, NoBackups: f.noBackups}
}

func newAddCommand() *cobra.Command {
	flags := &editFlags{}
	var label string

	cmd := &cobra.Command{
		Use:   "add FILE START END",
		Short: "Wrap a line range in a new fold",
		Long: `Insert an open marker before line START and a close marker after line END
(both one-based and inclusive). The markers take the indentation of the lines
they sit next to. The range must not cross an existing fold.`,
		Example: `  gofold add main.py 10 24 --label "helpers"
  gofold add lib.rs 3 9 --dry-run`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseLine(args[1])
			if err != nil {
				return err
			}
			end, err := parseLine(args[2])
			if err != nil {
				return err
			}

			cfg, workDir, err := loadConfig(cmd, flags.overrides())
			if err != nil {
				return err
			}
			outcome, err := openFile(commandContext(cmd), cfg, args[0])
			if err != nil {
				return err
			}

			edits, err := foldedit.Add(outcome.Snapshot, outcome.Tree, outcome.Markers, start, end, label)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return commitEdits(cmd, cfg, workDir, outcome, edits)
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "text written after the open marker")
	addEditFlags(cmd, flags)
	return cmd
}

func newRemoveCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "remove FILE LINE",
		Short: "Delete a fold's markers and keep its contents",
		Long: `Delete the open and close marker lines of the fold whose open or close
marker is on LINE (one-based). The lines between them are kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}

			cfg, workDir, err := loadConfig(cmd, flags.overrides())
			if err != nil {
				return err
			}
			outcome, err := openFile(commandContext(cmd), cfg, args[0])
			if err != nil {
				return err
			}

			edits, err := foldedit.Remove(outcome.Snapshot, outcome.Tree, line)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return commitEdits(cmd, cfg, workDir, outcome, edits)
		},
	}

	addEditFlags(cmd, flags)
	return cmd
}

func newCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy FILE LINE",
		Short: "Print a fold including its markers",
		Long: `Print every line of the fold whose open marker is on LINE (one-based),
from the open marker through the close marker.`,
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

			text, err := foldedit.Copy(outcome.Snapshot, outcome.Tree, line)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	return cmd
}

func newCutCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "cut FILE LINE",
		Short: "Print a fold and delete it from the file",
		Long: `Print the fold whose open marker is on LINE (one-based), markers included,
then delete those lines from FILE. With --dry-run the fold is printed followed
by the diff that would be applied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := parseLine(args[1])
			if err != nil {
				return err
			}

			cfg, workDir, err := loadConfig(cmd, flags.overrides())
			if err != nil {
				return err
			}
			outcome, err := openFile(commandContext(cmd), cfg, args[0])
			if err != nil {
				return err
			}

			text, edits, err := foldedit.Cut(outcome.Snapshot, outcome.Tree, line)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), text); err != nil {
				return err
			}
			return commitEdits(cmd, cfg, workDir, outcome, edits)
		},
	}

	addEditFlags(cmd, flags)
	return cmd
}
