// Package asset loads model files into walkabout models.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/smasonuk/walkabout"
)

var ErrUnsupportedFormat = errors.New("unsupported asset format")

// Loader reads GLB, glTF, PLY and DXF files.
type Loader struct {
	// Progress, if set, is called as the file is read. total is -1 when the
	// size is unknown.
	Progress func(read, total int64)
	// FlipWinding reverses every face of PLY and DXF models.
	FlipWinding bool
}

// Result is the outcome of an asynchronous load.
type Result struct {
	Path  string
	Model *walkabout.Model
	Err   error
}

// Load reads the model at path. The format is picked from the extension.
func (l *Loader) Load(ctx context.Context, path string) (*walkabout.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var (
		m   *walkabout.Model
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		m, err = l.loadGLTF(ctx, path)
	case ".ply":
		m, err = l.loadWith(path, func(r io.Reader) (*walkabout.Model, error) {
			return walkabout.LoadObjectFromPLYReader(r, l.FlipWinding)
		})
	case ".dxf":
		m, err = l.loadWith(path, func(r io.Reader) (*walkabout.Model, error) {
			return walkabout.NewObjectFromDXF(r, l.FlipWinding)
		})
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	m.Name = filepath.Base(path)
	return m, nil
}

// LoadAsync loads path on a new goroutine. The returned channel receives
// exactly one Result and is then closed.
func (l *Loader) LoadAsync(ctx context.Context, path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		m, err := l.Load(ctx, path)
		ch <- Result{Path: path, Model: m, Err: err}
	}()
	return ch
}

func (l *Loader) loadWith(path string, parse func(io.Reader) (*walkabout.Model, error)) (*walkabout.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parse(l.progressReader(f))
}

func (l *Loader) progressReader(f *os.File) io.Reader {
	if l.Progress == nil {
		return f
	}
	total := int64(-1)
	if fi, err := f.Stat(); err == nil {
		total = fi.Size()
	}
	return &progressReader{r: f, total: total, fn: l.Progress}
}

type progressReader struct {
	r     io.Reader
	read  int64
	total int64
	fn    func(read, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.fn(p.read, p.total)
	}
	return n, err
}
