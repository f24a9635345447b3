// Package paint turns resolved highlights into tcell styles.
package paint

import (
	"github.com/cptaffe/gridhl/highlight"
	"github.com/gdamore/tcell/v2"
)

// CellStyle returns the tcell style for a cell painted with hl.  Reverse
// is already folded into the colors, so the style never sets it.
func CellStyle(t *highlight.Table, hl *highlight.Highlight) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(t.ActualCellFg(hl)).
		Background(t.ActualCellBg(hl)).
		Bold(hl.Bold).
		Italic(hl.Italic)
	switch {
	case hl.Undercurl:
		st = st.Underline(tcell.UnderlineStyleCurly, t.ActualCellSp(hl))
	case hl.Underline:
		st = st.Underline(true, t.ActualCellSp(hl))
	}
	return st
}

// PmenuStyle returns the popup-menu item style.
func PmenuStyle(t *highlight.Table, selected bool) tcell.Style {
	if selected {
		return tcell.StyleDefault.Foreground(t.PmenuFgSel()).Background(t.PmenuBgSel())
	}
	return tcell.StyleDefault.Foreground(t.PmenuFg()).Background(t.PmenuBg())
}

// CursorStyle returns the style of the block cursor.
func CursorStyle(t *highlight.Table) tcell.Style {
	return tcell.StyleDefault.Foreground(t.CursorFg()).Background(t.CursorBg())
}

// DrawGroups paints one line per named group: the name drawn in its own
// style, padded to the screen width.  The last line shows the popup menu
// and cursor colors.  Lines beyond the screen height are dropped.
func DrawGroups(s tcell.Screen, t *highlight.Table) {
	w, h := s.Size()
	base := CellStyle(t, t.Fallback())
	s.Fill(' ', base)

	y := 0
	for _, name := range t.Names() {
		if y >= h-1 {
			break
		}
		hl, ok := t.Named(name)
		if !ok {
			continue
		}
		drawLine(s, 0, y, w, name, CellStyle(t, hl))
		y++
	}
	if h > 0 {
		x := drawText(s, 0, h-1, w, " menu ", PmenuStyle(t, false))
		x = drawText(s, x, h-1, w, " selected ", PmenuStyle(t, true))
		drawText(s, x, h-1, w, " ", CursorStyle(t))
	}
}

func drawLine(s tcell.Screen, x, y, w int, text string, st tcell.Style) {
	x = drawText(s, x, y, w, text, st)
	for ; x < w; x++ {
		s.SetContent(x, y, ' ', nil, st)
	}
}

func drawText(s tcell.Screen, x, y, w int, text string, st tcell.Style) int {
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}
