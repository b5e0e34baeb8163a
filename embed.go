// Package signup ships the acknowledgment shown after a registration is
// accepted, and lets an operator replace it without rebuilding.
package signup

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates/acknowledgment.txt.tmpl
var shipped embed.FS

// Templates holds the acknowledgment compiled into the binary, rooted so
// that "acknowledgment.txt.tmpl" opens directly.
var Templates = rooted(shipped, "templates")

func rooted(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS serves templates from the operator's templates directory when
// a file of that name exists there and from fallback otherwise. An empty
// templatesDir disables the override.
func OverlayFS(templatesDir string, fallback fs.FS) fs.FS {
	return overlayFS{dir: templatesDir, fallback: fallback}
}

type overlayFS struct {
	dir      string
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if o.dir != "" {
		if f, err := os.Open(filepath.Join(o.dir, filepath.FromSlash(name))); err == nil {
			return f, nil
		}
	}
	return o.fallback.Open(name)
}
