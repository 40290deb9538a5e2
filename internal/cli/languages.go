package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gofold/internal/ui/pretty"
	"github.com/yaklabco/gofold/pkg/langdetect"
)

const formatJSON = "json"

// languageInfo represents a marker-table entry in JSON output.
type languageInfo struct {
	Language   string   `json:"language"`
	Open       string   `json:"open"`
	Close      string   `json:"close"`
	End        string   `json:"end,omitempty"`
	Extensions []string `json:"extensions"`
}

func newLanguagesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List languages with fold markers",
		Long: `List every language in the marker table, built-in and configured, with
its open and close markers.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			markers := cfg.MarkerTable()
			out := cmd.OutOrStdout()

			switch format {
			case formatJSON:
				detector := langdetect.New(markers, cfg.Extensions)
				infos := make([]languageInfo, 0, len(markers))
				for _, lang := range markers.Languages() {
					m := markers.Lookup(lang)
					infos = append(infos, languageInfo{
						Language:   lang,
						Open:       m.OpenMarker(),
						Close:      m.CloseMarker(),
						End:        m.End,
						Extensions: extensionsOf(detector, lang),
					})
				}
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return fmt.Errorf("encode languages: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			case "table", "text", "":
				styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
				_, err = fmt.Fprint(out, styles.FormatMarkerTable(markers))
				return err
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: table, json", ErrUsage, format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json")
	return cmd
}

// extensionsOf lists the scanned extensions that resolve to lang.
func extensionsOf(detector *langdetect.Detector, lang string) []string {
	exts := []string{}
	for _, ext := range detector.Extensions() {
		if detector.Detect("file"+ext, nil) == lang {
			exts = append(exts, ext)
		}
	}
	slices.Sort(exts)
	return exts
}
