package highlight

import (
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Group names that feed the special-purpose slots used outside the grid.
const (
	GroupPmenu    = "Pmenu"
	GroupPmenuSel = "PmenuSel"
	GroupCursor   = "Cursor"
)

// Table is the set of highlights an editor session has defined, indexed
// by the numeric id each grid cell carries.
//
// Table has no locking: it is owned by the goroutine that applies editor
// updates and renders, and every read in a render pass happens there.
type Table struct {
	entries map[uint64]*Highlight
	names   map[string]uint64
	tagged  map[uint64][]string // id -> names currently pointing at it
	empty   *Highlight

	fg, bg, sp tcell.Color

	pmenu    *Highlight
	pmenuSel *Highlight
	cursor   *Highlight
}

// NewTable returns an empty table with the built-in default colors.
func NewTable() *Table {
	empty := New()
	return &Table{
		entries:  make(map[uint64]*Highlight),
		names:    make(map[string]uint64),
		tagged:   make(map[uint64][]string),
		empty:    empty,
		fg:       DefaultForeground,
		bg:       DefaultBackground,
		sp:       DefaultSpecial,
		pmenu:    empty,
		pmenuSel: empty,
		cursor:   empty,
	}
}

// Empty returns the table's shared all-default Highlight.
func (t *Table) Empty() *Highlight {
	return t.empty
}

// SetDefaults replaces the colors that back unset highlight channels.
func (t *Table) SetDefaults(fg, bg, sp tcell.Color) {
	t.fg, t.bg, t.sp = fg, bg, sp
}

// Defaults returns the current default foreground, background and
// special colors.
func (t *Table) Defaults() (fg, bg, sp tcell.Color) {
	return t.fg, t.bg, t.sp
}

// Set builds a Highlight from attrs and stores it at id, replacing any
// previous definition.  Every info entry whose hi_name is Pmenu, PmenuSel
// or Cursor points that slot at the new Highlight.  Group names left
// over from an earlier definition of id are forgotten.
func (t *Table) Set(id uint64, attrs map[string]any, info []map[string]any) {
	hl := FromAttributes(attrs)

	for _, name := range t.tagged[id] {
		if t.names[name] == id {
			delete(t.names, name)
		}
	}
	delete(t.tagged, id)

	for _, item := range info {
		name, ok := item["hi_name"].(string)
		if !ok {
			continue
		}
		switch name {
		case GroupPmenu:
			t.pmenu = hl
		case GroupPmenuSel:
			t.pmenuSel = hl
		case GroupCursor:
			t.cursor = hl
		}
		if name != "" {
			t.names[name] = id
			t.tagged[id] = append(t.tagged[id], name)
		}
	}

	t.entries[id] = hl
}

// Get returns the Highlight stored at id, or Fallback when id is unknown.
func (t *Table) Get(id uint64) *Highlight {
	if hl, ok := t.entries[id]; ok {
		return hl
	}
	return t.Fallback()
}

// Fallback is what a cell without a highlight id resolves to: id 0 when
// the editor has defined it, otherwise the empty Highlight.
func (t *Table) Fallback() *Highlight {
	if hl, ok := t.entries[0]; ok {
		return hl
	}
	return t.empty
}

// Len returns the number of defined ids.
func (t *Table) Len() int {
	return len(t.entries)
}

// Named returns the Highlight most recently tagged with group name.
func (t *Table) Named(name string) (*Highlight, bool) {
	id, ok := t.names[name]
	if !ok {
		return nil, false
	}
	hl, ok := t.entries[id]
	return hl, ok
}

// Names returns every group name seen so far, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.names))
	for name := range t.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pmenu, PmenuSel and Cursor return the special-purpose slots.
func (t *Table) Pmenu() *Highlight    { return t.pmenu }
func (t *Table) PmenuSel() *Highlight { return t.pmenuSel }
func (t *Table) Cursor() *Highlight   { return t.cursor }
