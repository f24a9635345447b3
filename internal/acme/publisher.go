// Package acme publishes the editor's named highlight groups to one acme
// window through the acme-styles compositor.
//
// The compositor is a 9P file server holding named layers of palette
// entries and style runs per window.  A Publisher owns one such layer and
// replaces its palette in full on every flush, so an acme window can style
// text with the same group names the editor uses:
//
//	p, err := acme.Open(winID, "nvim")
//	if err != nil { ... }
//	defer p.Delete()
//	u := ui.New(ctx, p)
package acme

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"github.com/cptaffe/gridhl/highlight"
	"github.com/cptaffe/gridhl/style"
)

// Service is the compositor's service name in the plan9port namespace.
const Service = "acme-styles"

// ErrNoLayer is returned when the compositor hands back an unusable layer id.
var ErrNoLayer = errors.New("no layer")

// File is an open compositor file.  *client.Fid satisfies it.
type File interface {
	io.Reader
	io.Writer
	Close() error
}

// Fsys opens compositor files by path relative to the service root.
type Fsys interface {
	Open(name string, mode uint8) (File, error)
}

// clientFsys adapts a 9P connection to Fsys.
type clientFsys struct {
	fs *client.Fsys
}

func (c clientFsys) Open(name string, mode uint8) (File, error) {
	fid, err := c.fs.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return fid, nil
}

// Publisher writes a highlight table's named groups into one compositor
// layer.  A single 9P connection is shared by every Publisher in the
// process and re-established on first use after any error.
type Publisher struct {
	WinID   int
	LayerID int
	name    string               // for re-allocation after compositor restart
	last    []style.PaletteEntry // last palette written, to skip redundant writes
	conn    Fsys                 // connection last written through
	written bool
}

var (
	connMu sync.Mutex
	fsys   Fsys
	mount  = func() (Fsys, error) {
		fs, err := client.MountService(Service)
		if err != nil {
			return nil, err
		}
		return clientFsys{fs}, nil
	}
)

// currentFsys returns the cached connection to the compositor, connecting
// on first use or after a previous connection error has been reset.
func currentFsys() (Fsys, error) {
	connMu.Lock()
	defer connMu.Unlock()
	if fsys != nil {
		return fsys, nil
	}
	fs, err := mount()
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", Service, err)
	}
	fsys = fs
	return fs, nil
}

// resetFsys clears the cached connection so the next call reconnects.
func resetFsys() {
	connMu.Lock()
	fsys = nil
	connMu.Unlock()
}

// Open returns a Publisher for the named layer on winID, creating and
// naming the layer if it does not already exist.
func Open(winID int, name string) (*Publisher, error) {
	fs, err := currentFsys()
	if err != nil {
		return nil, err
	}
	layID, err := FindOrCreate(fs, winID, name)
	if err != nil {
		resetFsys()
		return nil, err
	}
	return &Publisher{WinID: winID, LayerID: layID, name: name}, nil
}

// Flush publishes every named group of t.  It satisfies ui.Flusher.
func (p *Publisher) Flush(t *highlight.Table) error {
	return p.Publish(style.FromTable(t))
}

// Publish replaces the layer's palette.  A palette equal to the last one
// written is skipped while the layer is still listed on the same
// connection.  If the layer is gone (compositor restarted), it is
// re-allocated first.
func (p *Publisher) Publish(palette []style.PaletteEntry) error {
	if p == nil {
		return nil
	}
	fs, err := currentFsys()
	if err != nil {
		p.written = false
		return err
	}
	if p.written && fs == p.conn && style.SamePalette(palette, p.last) {
		if id, ok := Find(fs, p.WinID, p.name); ok && id == p.LayerID {
			return nil
		}
	}
	conn, err := p.write(style.Format(palette))
	if err != nil {
		p.written = false
		return err
	}
	p.last = append(p.last[:0], palette...)
	p.conn, p.written = conn, true
	return nil
}

// write sends text to the layer's style file and returns the connection
// it went through.
func (p *Publisher) write(text string) (Fsys, error) {
	fs, err := currentFsys()
	if err != nil {
		return nil, err
	}

	fid, err := fs.Open(p.path("style"), plan9.OWRITE)
	if err != nil {
		resetFsys()
		// Layer gone; re-allocate and retry once.
		fs, err = currentFsys()
		if err != nil {
			return nil, err
		}
		newID, err2 := FindOrCreate(fs, p.WinID, p.name)
		if err2 != nil {
			resetFsys()
			return nil, fmt.Errorf("re-alloc layer: %w", err2)
		}
		p.LayerID = newID
		fid, err = fs.Open(p.path("style"), plan9.OWRITE)
		if err != nil {
			resetFsys()
			return nil, err
		}
	}
	defer fid.Close()
	if _, err := fid.Write([]byte(text)); err != nil {
		resetFsys()
		return nil, fmt.Errorf("write style: %w", err)
	}
	return fs, nil
}

// Delete removes the layer from the compositor so the palette does not
// linger after exit.  Best-effort: errors are ignored.
func (p *Publisher) Delete() {
	if p == nil {
		return
	}
	fs, err := currentFsys()
	if err != nil {
		return
	}
	fid, err := fs.Open(p.path("ctl"), plan9.OWRITE)
	if err != nil {
		resetFsys()
		return
	}
	if _, err := fid.Write([]byte("delete\n")); err != nil {
		resetFsys()
	}
	fid.Close()
}

func (p *Publisher) path(file string) string {
	return fmt.Sprintf("%d/layers/%d/%s", p.WinID, p.LayerID, file)
}

// Find looks up a layer by name in the window's layers/index.
func Find(fs Fsys, winID int, name string) (int, bool) {
	fid, err := fs.Open(fmt.Sprintf("%d/layers/index", winID), plan9.OREAD)
	if err != nil {
		return 0, false
	}
	data, err := io.ReadAll(fid)
	fid.Close()
	if err != nil {
		return 0, false
	}
	return parseIndex(string(data), name)
}

// parseIndex scans "id name" lines for name.
func parseIndex(index, name string) (int, bool) {
	for _, line := range strings.Split(index, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == name {
			if id, err := strconv.Atoi(fields[0]); err == nil {
				return id, true
			}
		}
	}
	return 0, false
}

// FindOrCreate returns the ID of the named layer, creating and naming it
// if it does not already exist.
func FindOrCreate(fs Fsys, winID int, name string) (int, error) {
	if id, ok := Find(fs, winID, name); ok {
		return id, nil
	}

	newFid, err := fs.Open(fmt.Sprintf("%d/layers/new", winID), plan9.OREAD)
	if err != nil {
		return 0, fmt.Errorf("open layers/new: %w", err)
	}
	data, err := io.ReadAll(newFid)
	newFid.Close()
	if err != nil {
		return 0, fmt.Errorf("read layers/new: %w", err)
	}
	layID, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: parse layer id %q: %v", ErrNoLayer, string(data), err)
	}

	nameFid, err := fs.Open(fmt.Sprintf("%d/layers/%d/name", winID, layID), plan9.OWRITE)
	if err != nil {
		return 0, fmt.Errorf("open layer name: %w", err)
	}
	nameFid.Write([]byte(name)) //nolint:errcheck
	nameFid.Close()

	return layID, nil
}
