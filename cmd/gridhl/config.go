package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/cptaffe/gridhl/highlight"
	"github.com/cptaffe/gridhl/style"
	"github.com/gdamore/tcell/v2"
)

// ErrUsage is returned for flag combinations that cannot run together.
var ErrUsage = errors.New("usage")

// Config holds all values parsed from the command line.
type Config struct {
	Nvim    string   // editor binary
	Args    []string // extra editor arguments, after --embed
	Width   int
	Height  int
	AcmeWin int    // acme window to publish to; 0 disables
	Layer   string // compositor layer name
	TUI     bool
	Search  string // plugin catalogue query; runs instead of the editor
	Verbose bool

	// Initial defaults until the editor announces its own.
	FG, BG, SP tcell.Color
}

func parseConfig(name string, args []string, out io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	cfg := Config{}
	fs.StringVar(&cfg.Nvim, "nvim", "nvim", "editor binary to embed")
	fs.IntVar(&cfg.Width, "width", 80, "grid width reported to the editor")
	fs.IntVar(&cfg.Height, "height", 24, "grid height reported to the editor")
	fs.IntVar(&cfg.AcmeWin, "acme", 0, "acme window id to publish named groups to (0: off)")
	fs.StringVar(&cfg.Layer, "layer", "nvim", "acme-styles layer name")
	fs.BoolVar(&cfg.TUI, "tui", false, "preview named groups in the terminal")
	fs.StringVar(&cfg.Search, "search", "", "search the vimawesome plugin catalogue and exit")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose logging")
	fg := fs.String("fg", style.Hex(highlight.DefaultForeground), "initial default foreground")
	bg := fs.String("bg", style.Hex(highlight.DefaultBackground), "initial default background")
	sp := fs.String("sp", style.Hex(highlight.DefaultSpecial), "initial default special color")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	var err error
	if cfg.FG, err = style.ParseHex(*fg); err != nil {
		return Config{}, fmt.Errorf("-fg: %w", err)
	}
	if cfg.BG, err = style.ParseHex(*bg); err != nil {
		return Config{}, fmt.Errorf("-bg: %w", err)
	}
	if cfg.SP, err = style.ParseHex(*sp); err != nil {
		return Config{}, fmt.Errorf("-sp: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("%w: grid size %dx%d", ErrUsage, cfg.Width, cfg.Height)
	}
	if cfg.AcmeWin < 0 {
		return Config{}, fmt.Errorf("%w: -acme %d", ErrUsage, cfg.AcmeWin)
	}
	return cfg, nil
}
