package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned by ParseHex for strings that are not #rrggbb.
var ErrBadColor = errors.New("bad color")

// Hex formats c as "#rrggbb".  Unset colors format as "".
func Hex(c tcell.Color) string {
	if !c.Valid() || c.Hex() < 0 {
		return ""
	}
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// ParseHex parses "#rrggbb" or "#rgb" into an RGB color.
func ParseHex(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return tcell.ColorDefault, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("%w: %q: %v", ErrBadColor, s, err)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// FromHighlight resolves hl against t's defaults into a palette entry.
// Reverse is folded into FG and BG; undercurl is approximated by underline.
func FromHighlight(name string, t *highlight.Table, hl *highlight.Highlight) PaletteEntry {
	return PaletteEntry{
		Name:      name,
		FG:        Hex(t.ActualCellFg(hl)),
		BG:        Hex(t.ActualCellBg(hl)),
		Bold:      hl.Bold,
		Italic:    hl.Italic,
		Underline: hl.Underline || hl.Undercurl,
	}
}

// FromTable returns one palette entry per named group in t, sorted by name.
func FromTable(t *highlight.Table) []PaletteEntry {
	names := t.Names()
	out := make([]PaletteEntry, 0, len(names))
	for _, name := range names {
		hl, ok := t.Named(name)
		if !ok {
			continue
		}
		out = append(out, FromHighlight(name, t, hl))
	}
	return out
}
