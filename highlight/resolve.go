package highlight

import "github.com/gdamore/tcell/v2"

// Reverse video swaps the channel each query reads and also swaps the
// default that backs an unset channel.

// CellFg returns the foreground to paint for hl.  Without reverse it is
// the explicit foreground and may be tcell.ColorDefault, meaning "leave
// the surrounding default".  With reverse it is the explicit background,
// or the default background when that is unset.
func (t *Table) CellFg(hl *Highlight) tcell.Color {
	if !hl.Reverse {
		return hl.Foreground
	}
	return or(hl.Background, t.bg)
}

// CellBg mirrors CellFg for the background channel.
func (t *Table) CellBg(hl *Highlight) tcell.Color {
	if !hl.Reverse {
		return hl.Background
	}
	return or(hl.Foreground, t.fg)
}

// ActualCellFg returns the concrete foreground for hl; it is never unset.
func (t *Table) ActualCellFg(hl *Highlight) tcell.Color {
	if !hl.Reverse {
		return or(hl.Foreground, t.fg)
	}
	return or(hl.Background, t.bg)
}

// ActualCellBg returns the concrete background for hl; it is never unset.
func (t *Table) ActualCellBg(hl *Highlight) tcell.Color {
	if !hl.Reverse {
		return or(hl.Background, t.bg)
	}
	return or(hl.Foreground, t.fg)
}

// ActualCellSp returns the decoration color for hl.  Reverse does not
// apply to it.
func (t *Table) ActualCellSp(hl *Highlight) tcell.Color {
	return or(hl.Special, t.sp)
}

func (t *Table) PmenuFg() tcell.Color    { return t.ActualCellFg(t.pmenu) }
func (t *Table) PmenuBg() tcell.Color    { return t.ActualCellBg(t.pmenu) }
func (t *Table) PmenuFgSel() tcell.Color { return t.ActualCellFg(t.pmenuSel) }
func (t *Table) PmenuBgSel() tcell.Color { return t.ActualCellBg(t.pmenuSel) }
func (t *Table) CursorFg() tcell.Color   { return t.ActualCellFg(t.cursor) }
func (t *Table) CursorBg() tcell.Color   { return t.ActualCellBg(t.cursor) }

func or(c, def tcell.Color) tcell.Color {
	if c == tcell.ColorDefault {
		return def
	}
	return c
}
