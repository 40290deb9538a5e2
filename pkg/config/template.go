package config

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gofold/pkg/foldtree"
)

// GenerateTemplate returns a commented .gofold.yml starter file listing the
// built-in languages.
func GenerateTemplate() []byte {
	var b strings.Builder

	b.WriteString("# gofold configuration\n")
	b.WriteString("#\n")
	b.WriteString("# Folds open on a line containing <start>{{{ and close on a line\n")
	b.WriteString("# containing <start>}}}. Built-in languages:\n")
	b.WriteString("#\n")

	table := foldtree.DefaultMarkers()
	for _, lang := range table.Languages() {
		markers := table.Lookup(lang)
		fmt.Fprintf(&b, "#   %-10s %s ... %s\n", lang, markers.OpenMarker(), markers.CloseMarker())
	}

	b.WriteString("\n# Extra languages, or overrides of the built-in ones.\n")
	b.WriteString("# languages:\n")
	b.WriteString("#   lua:\n")
	b.WriteString("#     start: \"--\"\n")
	b.WriteString("#   css:\n")
	b.WriteString("#     start: \"/*\"\n")
	b.WriteString("#     end: \"*/\"\n")

	b.WriteString("\n# Map file extensions to language IDs.\n")
	b.WriteString("# extensions:\n")
	b.WriteString("#   .lua: lua\n")

	b.WriteString("\n# Glob patterns of files to skip.\n")
	b.WriteString("ignore:\n")
	b.WriteString("  - \"**/testdata/**\"\n")

	b.WriteString("\n# Backups written before add/remove/cut edit a file.\n")
	b.WriteString("backups:\n")
	b.WriteString("  enabled: true\n")
	b.WriteString("  mode: sidecar\n")

	return []byte(b.String())
}
