package fs

import (
	"embed"
	iofs "io/fs"
	"path"
	"strings"
)

// ReadOnlyFileSystem serves views from any io/fs tree, such as an embedded
// directory or a testing/fstest.MapFS.
type ReadOnlyFileSystem struct {
	fs iofs.FS
}

func NewReadOnlyFileSystem(fsys iofs.FS) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fsys}
}

func NewEmbedFileSystem(fsys embed.FS) *ReadOnlyFileSystem {
	return NewReadOnlyFileSystem(fsys)
}

func (fs *ReadOnlyFileSystem) ReadFile(name string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, fsPath(name))
}

func (fs *ReadOnlyFileSystem) ReadDir(name string) ([]iofs.DirEntry, error) {
	return iofs.ReadDir(fs.fs, fsPath(name))
}

func (fs *ReadOnlyFileSystem) FileExists(name string) bool {
	_, err := iofs.Stat(fs.fs, fsPath(name))
	return err == nil
}

func (fs *ReadOnlyFileSystem) WriteFile(name string, data []byte, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *ReadOnlyFileSystem) MkdirAll(name string, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *ReadOnlyFileSystem) Remove(name string) error {
	return ErrReadOnly
}

// WalkDir walks root. Paths handed to fn keep the root prefix as given so
// callers can compute relative paths the same way they do on disk.
func (fs *ReadOnlyFileSystem) WalkDir(root string, fn iofs.WalkDirFunc) error {
	rooted := strings.HasPrefix(strings.ReplaceAll(root, "\\", "/"), "/")
	return iofs.WalkDir(fs.fs, fsPath(root), func(name string, d iofs.DirEntry, err error) error {
		if rooted {
			name = path.Join("/", name)
		}
		return fn(name, d, err)
	})
}

// fsPath converts an OS-looking path into an io/fs name.
func fsPath(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "/")
	name = path.Clean(name)
	if name == "" {
		return "."
	}
	return name
}
