package pretty

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/gofold/pkg/foldtree"
)

// FoldRow is a single row in the fold table.
type FoldRow struct {
	File  string
	Start int // one-based
	End   int // one-based
	Level int
	Label string
}

// FormatFoldTable renders fold rows as a bordered table.
func (s *Styles) FormatFoldTable(rows []FoldRow) string {
	if len(rows) == 0 {
		return ""
	}

	tbl := s.newTable("FILE", "LINES", "LEVEL", "LABEL")
	for _, row := range rows {
		tbl.Row(
			row.File,
			strconv.Itoa(row.Start)+"-"+strconv.Itoa(row.End),
			strconv.Itoa(row.Level),
			row.Label,
		)
	}
	return tbl.Render() + "\n"
}

// FormatMarkerTable renders a language marker table sorted by language.
func (s *Styles) FormatMarkerTable(markers foldtree.MarkerTable) string {
	tbl := s.newTable("LANGUAGE", "OPEN", "CLOSE", "END")
	for _, lang := range markers.Languages() {
		m := markers.Lookup(lang)
		tbl.Row(lang, m.OpenMarker(), m.CloseMarker(), m.End)
	}
	return tbl.Render() + "\n"
}

func (s *Styles) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers(headers...)
}
