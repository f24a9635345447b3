// Command gridhl embeds Neovim, tracks the highlight groups it defines and
// publishes them: to an acme window through acme-styles, to a terminal
// preview, or as acme-styles palette text on stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/cptaffe/gridhl/internal/acme"
	"github.com/cptaffe/gridhl/internal/plugins"
	"github.com/cptaffe/gridhl/internal/ui"
	"github.com/cptaffe/gridhl/logger"
	"github.com/cptaffe/gridhl/style"
	"github.com/neovim/go-client/nvim"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// shutdownSignals are the OS signals that trigger a clean exit.
var shutdownSignals = []os.Signal{os.Interrupt, unix.SIGTERM}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stderr))
}

// realMain runs gridhl and returns the process exit code.  Deferred
// cleanup runs before main exits.
func realMain(args []string, stderr io.Writer) int {
	cfg, err := parseConfig("gridhl", args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "gridhl: %v\n", err)
		return 2
	}

	var l *zap.Logger
	if cfg.Verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(stderr, "init logger: %v\n", err)
		return 1
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()
	ctx = logger.NewContext(ctx, l)

	u := ui.New(ctx)
	defer u.Close()
	u.Do(func(t *highlight.Table) { t.SetDefaults(cfg.FG, cfg.BG, cfg.SP) })

	if cfg.Search != "" {
		search(ctx, u, cfg.Search)
		return 0
	}

	if err := run(ctx, cfg, u, stop); err != nil {
		l.Error("gridhl", zap.Error(err))
		return 1
	}
	return 0
}

// run wires the flushers, attaches to the editor and blocks until ctx is
// done.
func run(ctx context.Context, cfg Config, u *ui.UI, stop func()) error {
	l := logger.L(ctx)

	switch {
	case cfg.AcmeWin > 0:
		p, err := acme.Open(cfg.AcmeWin, cfg.Layer)
		if err != nil {
			return fmt.Errorf("acme window %d: %w", cfg.AcmeWin, err)
		}
		defer p.Delete()
		u.AddFlusher(p)
		l.Info("publishing to acme", zap.Int("window", cfg.AcmeWin), zap.Int("layer", p.LayerID))
	case cfg.TUI:
		pv, err := newPreview(ctx, u, stop)
		if err != nil {
			return err
		}
		defer pv.Close()
		u.AddFlusher(pv)
	default:
		u.AddFlusher(ui.FlushFunc(func(t *highlight.Table) error {
			_, err := fmt.Fprint(os.Stdout, style.Format(style.FromTable(t)))
			return err
		}))
	}

	args := append([]string{"--embed"}, cfg.Args...)
	v, err := nvim.NewChildProcess(
		nvim.ChildProcessCommand(cfg.Nvim),
		nvim.ChildProcessArgs(args...),
		nvim.ChildProcessContext(ctx),
		nvim.ChildProcessLogf(l.Sugar().Debugf),
	)
	if err != nil {
		return fmt.Errorf("start %s: %w", cfg.Nvim, err)
	}
	defer v.Close()

	if err := v.RegisterHandler("redraw", func(updates ...[]interface{}) {
		u.Redraw(updates)
	}); err != nil {
		return fmt.Errorf("register redraw: %w", err)
	}

	opts := map[string]interface{}{
		"rgb":          true,
		"ext_linegrid": true,
		"ext_hlstate":  true,
	}
	if err := v.AttachUI(cfg.Width, cfg.Height, opts); err != nil {
		return fmt.Errorf("attach ui: %w", err)
	}
	l.Info("attached", zap.String("nvim", cfg.Nvim), zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))

	<-ctx.Done()
	l.Info("shutting down")
	return nil
}

// search queries the plugin catalogue on a background goroutine and prints
// the result once it has been handed back to the UI goroutine.
func search(ctx context.Context, u *ui.UI, query string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	done := make(chan struct{})
	c := &plugins.Client{}
	c.Call(ctx, query, u.Post, func(list plugins.DescriptionList, err error) {
		defer close(done)
		if err != nil {
			logger.L(ctx).Error("search", zap.String("query", query), zap.Error(err))
			return
		}
		for _, d := range list.Plugins {
			fmt.Fprintf(os.Stdout, "%s\t%s\n", d.Label(), d.GithubURL)
		}
	})

	select {
	case <-done:
	case <-ctx.Done():
	}
}
