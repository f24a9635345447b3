package style

import (
	"errors"
	"testing"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/gdamore/tcell/v2"
)

func TestFormat(t *testing.T) {
	palette := []PaletteEntry{
		{Name: "Comment", FG: "#808080", Italic: true},
		{Name: "Error", FG: "#ffffff", BG: "#ff0000", Bold: true, Underline: true},
	}

	want := ":Comment fg=#808080 italic\n" +
		":Error fg=#ffffff bg=#ff0000 bold underline\n"
	if got := Format(palette); got != want {
		t.Errorf("Format =\n%s\nwant\n%s", got, want)
	}
}

func TestEqualIgnoresName(t *testing.T) {
	a := PaletteEntry{Name: "a", FG: "#000000", Bold: true}
	b := PaletteEntry{Name: "b", FG: "#000000", Bold: true}
	if !a.Equal(b) {
		t.Error("entries differing only by name should be equal")
	}
	b.Italic = true
	if a.Equal(b) {
		t.Error("entries differing by italic should not be equal")
	}
}

func TestSamePalette(t *testing.T) {
	a := []PaletteEntry{{Name: "Comment", FG: "#808080"}, {Name: "Error", Bold: true}}
	tc := []struct {
		label string
		b     []PaletteEntry
		want  bool
	}{
		{"identical", []PaletteEntry{{Name: "Comment", FG: "#808080"}, {Name: "Error", Bold: true}}, true},
		{"renamed", []PaletteEntry{{Name: "String", FG: "#808080"}, {Name: "Error", Bold: true}}, false},
		{"restyled", []PaletteEntry{{Name: "Comment", FG: "#808080"}, {Name: "Error"}}, false},
		{"shorter", []PaletteEntry{{Name: "Comment", FG: "#808080"}}, false},
		{"empty", nil, false},
	}
	for _, v := range tc {
		if got := SamePalette(a, v.b); got != v.want {
			t.Errorf("#test %q SamePalette = %v, want %v", v.label, got, v.want)
		}
	}
	if !SamePalette(nil, []PaletteEntry{}) {
		t.Error("nil and empty palettes should match")
	}
}

func TestHex(t *testing.T) {
	tc := []struct {
		in   tcell.Color
		want string
	}{
		{tcell.ColorDefault, ""},
		{tcell.NewHexColor(0x000000), "#000000"},
		{tcell.NewHexColor(0x1a2b3c), "#1a2b3c"},
		{tcell.NewHexColor(0xffffff), "#ffffff"},
	}
	for _, v := range tc {
		if got := Hex(v.in); got != v.want {
			t.Errorf("Hex(%v) = %q, want %q", v.in, got, v.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	tc := []struct {
		in   string
		want tcell.Color
		err  bool
	}{
		{"#1a2b3c", tcell.NewHexColor(0x1a2b3c), false},
		{" #FFFFFF ", tcell.NewHexColor(0xffffff), false},
		{"#fff", tcell.NewHexColor(0xffffff), false},
		{"1a2b3c", tcell.ColorDefault, true},
		{"#zzzzzz", tcell.ColorDefault, true},
		{"", tcell.ColorDefault, true},
	}
	for _, v := range tc {
		got, err := ParseHex(v.in)
		if v.err {
			if !errors.Is(err, ErrBadColor) {
				t.Errorf("ParseHex(%q) err = %v, want ErrBadColor", v.in, err)
			}
			continue
		}
		if err != nil || got != v.want {
			t.Errorf("ParseHex(%q) = %v, %v, want %v", v.in, got, err, v.want)
		}
	}
}

func TestFromTable(t *testing.T) {
	tbl := highlight.NewTable()
	tbl.SetDefaults(tcell.NewHexColor(0xeeeeee), tcell.NewHexColor(0x101010), tcell.NewHexColor(0xff0000))
	tbl.Set(1, map[string]any{"foreground": 0x808080, "italic": true}, []map[string]any{{"hi_name": "Comment"}})
	tbl.Set(2, map[string]any{"foreground": 0x00ff00, "reverse": true, "undercurl": true}, []map[string]any{{"hi_name": "Visual"}})
	tbl.Set(3, map[string]any{"bold": true}, nil)

	want := []PaletteEntry{
		{Name: "Comment", FG: "#808080", BG: "#101010", Italic: true},
		{Name: "Visual", FG: "#101010", BG: "#00ff00", Underline: true},
	}
	got := FromTable(tbl)
	if len(got) != len(want) {
		t.Fatalf("FromTable = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFromTableRedefinedID(t *testing.T) {
	tbl := highlight.NewTable()
	tbl.Set(1, map[string]any{"bold": true}, []map[string]any{{"hi_name": "Comment"}})
	tbl.Set(1, map[string]any{"italic": true}, []map[string]any{{"hi_name": "String"}})

	got := FromTable(tbl)
	if len(got) != 1 || got[0].Name != "String" || !got[0].Italic || got[0].Bold {
		t.Errorf("FromTable = %+v, want only String", got)
	}
}
