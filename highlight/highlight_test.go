package highlight

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromAttributesEmpty(t *testing.T) {
	for _, attrs := range []map[string]any{nil, {}} {
		if got := FromAttributes(attrs); *got != *New() {
			t.Errorf("FromAttributes(%v) = %+v, want %+v", attrs, *got, *New())
		}
	}
}

func TestFromAttributesUnknownKey(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	got := FromAttributes(map[string]any{"bold": true, "unknownkey": 1})
	if *got != (Highlight{Bold: true}) {
		t.Errorf("got %+v, want only Bold", *got)
	}

	entries := logs.FilterMessage("unknown highlight attribute").All()
	if len(entries) != 1 {
		t.Fatalf("got %d warnings, want 1", len(entries))
	}
	if key := entries[0].ContextMap()["key"]; key != "unknownkey" {
		t.Errorf("warning key = %v, want unknownkey", key)
	}
}

func TestFromAttributes(t *testing.T) {
	tc := []struct {
		label string
		attrs map[string]any
		want  Highlight
	}{
		{"int64 colors", map[string]any{"foreground": int64(0x112233), "background": int64(1), "special": int64(0)},
			Highlight{Foreground: tcell.NewHexColor(0x112233), Background: tcell.NewHexColor(1), Special: tcell.NewHexColor(0)}},
		{"uint64 color", map[string]any{"foreground": uint64(0xabcdef)},
			Highlight{Foreground: tcell.NewHexColor(0xabcdef)}},
		{"plain int color", map[string]any{"background": 0x00ff00},
			Highlight{Background: tcell.NewHexColor(0x00ff00)}},
		{"string color is ignored", map[string]any{"foreground": "red"}, Highlight{}},
		{"float color is ignored", map[string]any{"background": 1.5}, Highlight{}},
		{"negative color is ignored", map[string]any{"special": int64(-1)}, Highlight{}},
		{"flags by presence", map[string]any{"reverse": true, "italic": false, "underline": nil, "undercurl": 0},
			Highlight{Reverse: true, Italic: true, Underline: true, Undercurl: true}},
		{"malformed color keeps siblings", map[string]any{"foreground": []any{1}, "bold": true},
			Highlight{Bold: true}},
	}

	for _, v := range tc {
		if got := FromAttributes(v.attrs); *got != v.want {
			t.Errorf("#test %q got %+v, want %+v", v.label, *got, v.want)
		}
	}
}

func TestFromIndexed(t *testing.T) {
	tc := []struct {
		in      uint64
		r, g, b int32
	}{
		{0x000000, 0, 0, 0},
		{0xff8000, 0xff, 0x80, 0},
		{0x1_00_12_34_56, 0x12, 0x34, 0x56},
	}
	for _, v := range tc {
		c := FromIndexed(v.in)
		if !c.Valid() {
			t.Errorf("FromIndexed(%#x) is not a valid color", v.in)
		}
		if r, g, b := c.RGB(); r != v.r || g != v.g || b != v.b {
			t.Errorf("FromIndexed(%#x) = %d,%d,%d, want %d,%d,%d", v.in, r, g, b, v.r, v.g, v.b)
		}
	}
}

func TestAsUint64(t *testing.T) {
	tc := []struct {
		in   any
		want uint64
		ok   bool
	}{
		{uint8(7), 7, true},
		{uint16(7), 7, true},
		{uint32(7), 7, true},
		{uint(7), 7, true},
		{int8(7), 7, true},
		{int16(7), 7, true},
		{int32(7), 7, true},
		{int8(-7), 0, false},
		{-1, 0, false},
		{"7", 0, false},
		{nil, 0, false},
	}
	for _, v := range tc {
		got, ok := AsUint64(v.in)
		if got != v.want || ok != v.ok {
			t.Errorf("AsUint64(%#v) = %d,%v, want %d,%v", v.in, got, ok, v.want, v.ok)
		}
	}
}
