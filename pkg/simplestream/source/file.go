package source

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wuxler/simplestream/pkg/errdefs"
	"github.com/wuxler/simplestream/pkg/xlog"
)

var _ Source = (*File)(nil)

// NewFile returns a source reading the catalog document at path on the local
// filesystem. Image artifact paths resolve relative to the catalog's parent
// directory.
func NewFile(path string) *File {
	return NewFileFS(afero.NewOsFs(), path)
}

// NewFileFS is like NewFile but reads from the given filesystem.
func NewFileFS(fsys afero.Fs, path string) *File {
	return &File{
		fs:   fsys,
		path: path,
	}
}

// File reads catalog documents and image artifacts from a filesystem.
type File struct {
	fs   afero.Fs
	path string
}

// Path returns the catalog document path.
func (s *File) Path() string {
	return s.path
}

// FetchCatalog opens the catalog document.
func (s *File) FetchCatalog(ctx context.Context) (io.ReadCloser, error) {
	xlog.C(ctx).Debugf("reading catalog from %s", s.path)
	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, wrapFSError(err)
	}
	return f, nil
}

// OpenImage opens the image artifact stored under path, relative to the
// catalog's parent directory, and seeks to offset when positive.
func (s *File) OpenImage(ctx context.Context, path string, offset, _ int64) (io.ReadCloser, error) {
	target := filepath.Join(filepath.Dir(s.path), filepath.FromSlash(path))
	xlog.C(ctx).Debugf("reading image from %s", target)

	f, err := s.fs.Open(target)
	if err != nil {
		return nil, wrapFSError(err)
	}
	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

func wrapFSError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errdefs.NewE(errdefs.ErrNotFound, err)
	}
	return err
}
