// Package highlight holds the highlight groups an attached editor defines
// and resolves them into the colors a grid renderer paints.
//
// A Highlight is immutable once built.  The Table shares one pointer
// between its id map and any special-purpose slot that adopts it, so a
// redefinition always installs a new value and never edits an old one.
package highlight

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Built-in default colors, used until the editor announces its own.
var (
	DefaultForeground = tcell.NewHexColor(0xffffff)
	DefaultBackground = tcell.NewHexColor(0x000000)
	DefaultSpecial    = tcell.NewHexColor(0xff0000)
)

// Highlight is one named style.  A color left at tcell.ColorDefault is
// unset and inherits a table default when resolved.
type Highlight struct {
	Foreground tcell.Color
	Background tcell.Color
	Special    tcell.Color

	Bold      bool
	Italic    bool
	Underline bool
	Undercurl bool
	Reverse   bool
}

// New returns a Highlight with every color unset and every flag off.
func New() *Highlight {
	return &Highlight{}
}

// FromIndexed converts a color number sent by the editor into a color.
// The editor packs RGB as 0xRRGGBB; bits above 24 are dropped.
func FromIndexed(v uint64) tcell.Color {
	return tcell.NewHexColor(int32(v & 0xffffff))
}

// FromAttributes builds a Highlight from a sparse attribute map.
//
// Color keys take an integer color number; any other value leaves the
// color unset.  Flag keys turn their flag on by presence alone.  Unknown
// keys are logged and skipped.
func FromAttributes(attrs map[string]any) *Highlight {
	hl := New()
	for key, val := range attrs {
		switch key {
		case "foreground":
			if v, ok := AsUint64(val); ok {
				hl.Foreground = FromIndexed(v)
			}
		case "background":
			if v, ok := AsUint64(val); ok {
				hl.Background = FromIndexed(v)
			}
		case "special":
			if v, ok := AsUint64(val); ok {
				hl.Special = FromIndexed(v)
			}
		case "reverse":
			hl.Reverse = true
		case "bold":
			hl.Bold = true
		case "italic":
			hl.Italic = true
		case "underline":
			hl.Underline = true
		case "undercurl":
			hl.Undercurl = true
		default:
			zap.L().Warn("unknown highlight attribute", zap.String("key", key))
		}
	}
	return hl
}

// AsUint64 reports v as a non-negative integer.  It accepts every integer
// kind a msgpack decoder may produce for ids and color numbers.
func AsUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint32:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint:
		return uint64(n), true
	case int64:
		return nonNegative(n)
	case int32:
		return nonNegative(int64(n))
	case int16:
		return nonNegative(int64(n))
	case int8:
		return nonNegative(int64(n))
	case int:
		return nonNegative(int64(n))
	}
	return 0, false
}

func nonNegative(n int64) (uint64, bool) {
	if n < 0 {
		return 0, false
	}
	return uint64(n), true
}
