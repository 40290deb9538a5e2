package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gofold/internal/logging"
	"github.com/yaklabco/gofold/pkg/langdetect"
	"github.com/yaklabco/gofold/pkg/store"
	"github.com/yaklabco/gofold/pkg/watch"
)

// watchEvent is the JSON-lines form of a watch event.
type watchEvent struct {
	Event    string `json:"event"`
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Folds    int    `json:"folds"`
	Warnings int    `json:"warnings"`
}

func newWatchCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Rebuild fold trees as files change",
		Long: `Watch files and directories and rebuild each file's fold tree whenever it
is created or written. Removed files are dropped. One line is printed per
update until interrupted.`,
		Example: `  gofold watch src/
  gofold watch main.py --json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			markers := cfg.MarkerTable()
			watcher, err := watch.New(store.New(markers), langdetect.New(markers, cfg.Extensions))
			if err != nil {
				return err
			}
			defer watcher.Stop()

			if err := watcher.Add(ctx, args...); err != nil {
				return err
			}
			logging.FromContext(ctx).Info("watching", logging.FieldPaths, args)

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return watcher.Run(groupCtx)
			})
			group.Go(func() error {
				return printEvents(groupCtx, cmd.OutOrStdout(), watcher.Events(), asJSON)
			})
			return group.Wait()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print events as JSON lines")
	return cmd
}

func printEvents(ctx context.Context, out io.Writer, events <-chan watch.Event, asJSON bool) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			if err := printEvent(out, event, asJSON); err != nil {
				return err
			}
		}
	}
}

func printEvent(out io.Writer, event watch.Event, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(watchEvent{
			Event:    event.Kind.String(),
			Path:     event.Path,
			Language: event.Language,
			Folds:    event.Folds,
			Warnings: event.Warnings,
		})
		if err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if event.Kind == watch.EventClosed {
		_, err := fmt.Fprintf(out, "%s  closed\n", event.Path)
		return err
	}
	_, err := fmt.Fprintf(out, "%s  %s  %d folds  %d warnings\n",
		event.Path, event.Language, event.Folds, event.Warnings)
	return err
}
