package redraw

import (
	"errors"
	"testing"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"
)

func TestApplyHlAttrDefine(t *testing.T) {
	tbl := highlight.NewTable()
	batch := [][]any{
		{EventHlAttrDefine,
			[]any{int64(1), map[string]any{"foreground": int64(0x112233), "bold": true}, map[string]any{}, []any{}},
			[]any{uint64(2), map[any]any{"background": uint64(0x445566)}, map[string]any{},
				[]any{map[string]any{"kind": "ui", "ui_name": "Pmenu", "hi_name": "Pmenu", "id": int64(2)}}},
		},
	}

	flush, err := Apply(tbl, batch)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if flush {
		t.Error("flush reported without a flush event")
	}
	if got := tbl.Get(1); *got != (highlight.Highlight{Foreground: tcell.NewHexColor(0x112233), Bold: true}) {
		t.Errorf("id 1 = %+v", *got)
	}
	if tbl.Pmenu() != tbl.Get(2) {
		t.Error("Pmenu slot should point at id 2")
	}
	if got := tbl.PmenuBg(); got != tcell.NewHexColor(0x445566) {
		t.Errorf("PmenuBg = %v", got)
	}
}

func TestApplyMalformedIsolated(t *testing.T) {
	tbl := highlight.NewTable()
	batch := [][]any{
		{EventHlAttrDefine,
			[]any{int64(1), "not a map", map[string]any{}, []any{}},
			[]any{"x", map[string]any{}, map[string]any{}, []any{}},
			[]any{int64(3)},
			"not a list",
			[]any{int64(4), map[string]any{"italic": true}, map[string]any{}, []any{}},
		},
		{42},
		{EventFlush},
	}

	flush, err := Apply(tbl, batch)
	if !flush {
		t.Error("flush event not reported")
	}
	errs := multierr.Errors(err)
	if len(errs) != 5 {
		t.Fatalf("got %d errors, want 5: %v", len(errs), err)
	}
	for _, e := range errs {
		if !errors.Is(e, ErrMalformed) {
			t.Errorf("error %v is not ErrMalformed", e)
		}
	}
	if tbl.Len() != 1 || !tbl.Get(4).Italic {
		t.Errorf("only id 4 should be defined, Len = %d", tbl.Len())
	}
}

func TestApplyDefaultColors(t *testing.T) {
	tbl := highlight.NewTable()
	batch := [][]any{
		{EventDefaultColorsSet, []any{int64(0xc0c0c0), int64(0x202020), int64(-1), int64(7), int64(0)}},
	}
	if _, err := Apply(tbl, batch); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	fg, bg, sp := tbl.Defaults()
	if fg != tcell.NewHexColor(0xc0c0c0) || bg != tcell.NewHexColor(0x202020) {
		t.Errorf("defaults = %v %v", fg, bg)
	}
	if sp != highlight.DefaultSpecial {
		t.Errorf("unknown special should keep %v, got %v", highlight.DefaultSpecial, sp)
	}

	_, err := Apply(tbl, [][]any{{EventDefaultColorsSet, []any{int64(1), "bg", int64(2)}}})
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
	if fg2, _, _ := tbl.Defaults(); fg2 != fg {
		t.Error("malformed default_colors_set should not change defaults")
	}
}

func TestApplyIgnoresOtherEvents(t *testing.T) {
	tbl := highlight.NewTable()
	batch := [][]any{
		{"grid_line", []any{int64(1), int64(0), int64(0), []any{}}},
		{"mode_change", []any{"normal", int64(0)}},
		{},
	}
	flush, err := Apply(tbl, batch)
	if flush || err != nil || tbl.Len() != 0 {
		t.Errorf("Apply = %v, %v, Len %d", flush, err, tbl.Len())
	}
}
