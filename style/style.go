// Package style renders highlight groups into the acme-styles compositor
// wire format.
//
// PaletteEntry is the compositor's own palette type; FromTable
// resolves every named group of a highlight.Table into palette entries so
// that an acme window can pick up the editor's colorscheme by name.
package style

import (
	"fmt"
	"strings"
)

// PaletteEntry is a named visual style definition.
type PaletteEntry struct {
	Name      string // e.g. "Comment"
	FG        string // "#rrggbb", or ""
	BG        string // "#rrggbb", or ""
	Bold      bool
	Italic    bool
	Underline bool
}

// Equal reports whether e and b have identical visual properties (all fields
// except Name).
func (e PaletteEntry) Equal(b PaletteEntry) bool {
	return e.FG == b.FG &&
		e.BG == b.BG &&
		e.Bold == b.Bold &&
		e.Italic == b.Italic &&
		e.Underline == b.Underline
}

// SamePalette reports whether a and b define the same names, in order,
// with equal styles.
func SamePalette(a, b []PaletteEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Format serialises palette entries into the acme-styles wire format.
func Format(palette []PaletteEntry) string {
	var sb strings.Builder
	for _, e := range palette {
		writePaletteLine(&sb, e)
	}
	return sb.String()
}

func writePaletteLine(sb *strings.Builder, e PaletteEntry) {
	fmt.Fprintf(sb, ":%s", e.Name)
	if e.FG != "" {
		fmt.Fprintf(sb, " fg=%s", e.FG)
	}
	if e.BG != "" {
		fmt.Fprintf(sb, " bg=%s", e.BG)
	}
	if e.Bold {
		sb.WriteString(" bold")
	}
	if e.Italic {
		sb.WriteString(" italic")
	}
	if e.Underline {
		sb.WriteString(" underline")
	}
	sb.WriteByte('\n')
}
