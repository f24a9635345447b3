// Package redraw applies decoded editor UI events to a highlight table.
//
// A redraw notification is a batch of events, each shaped
// [name, args, args, ...] where every args element is one call's
// parameter list.  Only the highlight and default-color events are
// interpreted here; grid events belong to the grid owner.
package redraw

import (
	"errors"
	"fmt"
	"math"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"
)

// Event names consumed from a redraw batch.
const (
	EventHlAttrDefine     = "hl_attr_define"
	EventDefaultColorsSet = "default_colors_set"
	EventFlush            = "flush"
)

// ErrMalformed marks an event whose arguments could not be interpreted.
var ErrMalformed = errors.New("malformed event")

// Apply interprets batch against t.  Each call is applied independently:
// a malformed one contributes an error and leaves the table untouched for
// that call only.  flush reports whether the batch ended a screen update.
func Apply(t *highlight.Table, batch [][]any) (flush bool, err error) {
	for _, ev := range batch {
		if len(ev) == 0 {
			continue
		}
		name, ok := ev[0].(string)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: event name %T", ErrMalformed, ev[0]))
			continue
		}
		switch name {
		case EventHlAttrDefine:
			for _, args := range ev[1:] {
				err = multierr.Append(err, hlAttrDefine(t, args))
			}
		case EventDefaultColorsSet:
			for _, args := range ev[1:] {
				err = multierr.Append(err, defaultColorsSet(t, args))
			}
		case EventFlush:
			flush = true
		}
	}
	return flush, err
}

// hlAttrDefine handles [id, rgb_attrs, cterm_attrs, info].
func hlAttrDefine(t *highlight.Table, v any) error {
	args, ok := v.([]any)
	if !ok || len(args) < 2 {
		return fmt.Errorf("%w: %s args %v", ErrMalformed, EventHlAttrDefine, v)
	}
	id, ok := highlight.AsUint64(args[0])
	if !ok {
		return fmt.Errorf("%w: %s id %v", ErrMalformed, EventHlAttrDefine, args[0])
	}
	attrs, ok := asMap(args[1])
	if !ok {
		return fmt.Errorf("%w: %s %d attrs %T", ErrMalformed, EventHlAttrDefine, id, args[1])
	}
	var info []map[string]any
	if len(args) > 3 {
		if items, ok := args[3].([]any); ok {
			for _, item := range items {
				if m, ok := asMap(item); ok {
					info = append(info, m)
				}
			}
		}
	}
	t.Set(id, attrs, info)
	return nil
}

// defaultColorsSet handles [rgb_fg, rgb_bg, rgb_sp, cterm_fg, cterm_bg].
// A negative color means the editor does not know it; the current default
// stays in place.
func defaultColorsSet(t *highlight.Table, v any) error {
	args, ok := v.([]any)
	if !ok || len(args) < 3 {
		return fmt.Errorf("%w: %s args %v", ErrMalformed, EventDefaultColorsSet, v)
	}
	fg, bg, sp := t.Defaults()
	cur := [3]*tcell.Color{&fg, &bg, &sp}
	for i, c := range cur {
		n, ok := asInt64(args[i])
		if !ok {
			return fmt.Errorf("%w: %s color %d is %T", ErrMalformed, EventDefaultColorsSet, i, args[i])
		}
		if n >= 0 {
			*c = highlight.FromIndexed(uint64(n))
		}
	}
	t.SetDefaults(fg, bg, sp)
	return nil
}

// asMap accepts both map shapes a msgpack decoder produces.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	}
	if u, ok := highlight.AsUint64(v); ok && u <= math.MaxInt64 {
		return int64(u), true
	}
	return 0, false
}
