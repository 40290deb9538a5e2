// Package langdetect resolves a file to a fold-marker language ID.
// It uses go-enry for shebang, extension and content-based detection.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gofold/pkg/foldtree"
)

// Language IDs with special handling.
const (
	langShell     = "shell"
	langPlaintext = "plaintext"
)

// Detector resolves paths to language IDs from a marker table.
type Detector struct {
	markers   foldtree.MarkerTable
	overrides map[string]string
}

// New creates a Detector. Overrides map file extensions (with leading dot)
// to language IDs and win over any detection.
func New(markers foldtree.MarkerTable, overrides map[string]string) *Detector {
	if markers == nil {
		markers = foldtree.DefaultMarkers()
	}
	normalized := make(map[string]string, len(overrides))
	for ext, lang := range overrides {
		normalized[strings.ToLower(ext)] = lang
	}
	return &Detector{markers: markers, overrides: normalized}
}

// Detect resolves path against the built-in marker table.
func Detect(path string, content []byte, overrides map[string]string) string {
	return New(nil, overrides).Detect(path, content)
}

// Detect returns the language ID for a file.
//
// Resolution order: extension override, shebang, extension via enry (the
// classifier breaks ties between several candidates), then plaintext for
// unrecognized text. Binary content yields "". The result may name a language
// outside the marker table; callers check Supports.
func (d *Detector) Detect(path string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := d.overrides[ext]; ok {
		return lang
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if candidates := enry.GetLanguagesByExtension(path, content, nil); len(candidates) > 0 {
		return d.pick(candidates, content)
	}

	if len(content) > 0 && enry.IsBinary(content) {
		return ""
	}

	return langPlaintext
}

// Supports reports whether lang has fold markers.
func (d *Detector) Supports(lang string) bool {
	return d.markers.Supports(lang)
}

// Markers returns the fold markers for lang.
func (d *Detector) Markers(lang string) foldtree.Markers {
	return d.markers.Lookup(lang)
}

// Extensions returns the file extensions that resolve to a supported language,
// including overrides.
func (d *Detector) Extensions() []string {
	seen := make(map[string]bool)
	var exts []string

	add := func(ext string) {
		ext = strings.ToLower(ext)
		if !seen[ext] {
			seen[ext] = true
			exts = append(exts, ext)
		}
	}

	for _, lang := range d.markers.Languages() {
		for _, ext := range extensionsFor(lang) {
			add(ext)
		}
	}
	for ext, lang := range d.overrides {
		if d.markers.Supports(lang) {
			add(ext)
		}
	}

	return exts
}

// IsVendored reports whether path looks like vendored or third-party code.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// pick chooses among enry candidates, preferring supported languages.
func (d *Detector) pick(candidates []string, content []byte) string {
	var supported []string
	for _, candidate := range candidates {
		if d.markers.Supports(normalize(candidate)) {
			supported = append(supported, candidate)
		}
	}

	switch {
	case len(supported) == 1:
		return normalize(supported[0])
	case len(supported) > 1 && len(content) > 0:
		if lang, _ := enry.GetLanguageByClassifier(content, supported); lang != "" {
			return normalize(lang)
		}
		return normalize(supported[0])
	case len(supported) > 1:
		return normalize(supported[0])
	default:
		return normalize(candidates[0])
	}
}

// extensionsFor lists the extensions enry associates with a language ID.
func extensionsFor(lang string) []string {
	if lang == langPlaintext {
		return []string{".txt"}
	}
	return enry.GetLanguageExtensions(enryName(lang))
}

// normalize converts go-enry language names to marker-table IDs.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langShell
	case "Text":
		return langPlaintext
	default:
		return strings.ToLower(lang)
	}
}

// enryName maps a marker-table ID back to the go-enry language name.
func enryName(lang string) string {
	switch lang {
	case langShell:
		return "Shell"
	case langPlaintext:
		return "Text"
	default:
		if lang == "" {
			return ""
		}
		return strings.ToUpper(lang[:1]) + lang[1:]
	}
}
