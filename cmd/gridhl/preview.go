package main

import (
	"context"
	"fmt"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/cptaffe/gridhl/internal/paint"
	"github.com/cptaffe/gridhl/internal/ui"
	"github.com/cptaffe/gridhl/logger"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// preview paints the named groups into the terminal on every flush.
type preview struct {
	screen tcell.Screen
}

// newPreview takes over the terminal.  Escape, q or Ctrl-C call stop;
// a resize repaints from the UI goroutine.
func newPreview(ctx context.Context, u *ui.UI, stop func()) (*preview, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	pv := &preview{screen: s}

	go func() {
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return // screen finalized
			case *tcell.EventResize:
				s.Sync()
				u.Do(func(t *highlight.Table) { pv.draw(t) })
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					logger.L(ctx).Debug("preview quit", zap.String("key", ev.Name()))
					stop()
					return
				}
			}
		}
	}()
	return pv, nil
}

// Flush satisfies ui.Flusher.
func (pv *preview) Flush(t *highlight.Table) error {
	pv.draw(t)
	return nil
}

func (pv *preview) draw(t *highlight.Table) {
	paint.DrawGroups(pv.screen, t)
	pv.screen.Show()
}

// Close restores the terminal.
func (pv *preview) Close() {
	pv.screen.Fini()
}
