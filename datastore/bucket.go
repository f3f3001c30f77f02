package datastore

import (
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Bucket is a flat directory of named blobs. Submitted sources should not
// live in the DB, only their metadata does.
type Bucket struct {
	RootPath string
	Name     string
}

func (b *Bucket) Init() error {
	return os.MkdirAll(path.Join(b.RootPath, b.Name), 0755)
}

func (b *Bucket) filePath(name string) string {
	// name is always generated server-side, but a path separator getting
	// through would escape the bucket
	return path.Join(b.RootPath, b.Name, strings.ReplaceAll(name, "/", "_"))
}

func (b *Bucket) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(b.filePath(name))
}

func (b *Bucket) Writer(name string, mode fs.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(b.filePath(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
}

func (b *Bucket) WriteFile(name string, r io.Reader, mode fs.FileMode) error {
	wr, err := b.Writer(name, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(wr, r); err != nil {
		wr.Close()
		return err
	}
	return wr.Close()
}

func (b *Bucket) Reader(name string) (io.ReadCloser, error) {
	return os.Open(b.filePath(name))
}

func (b *Bucket) ReadFile(name string) ([]byte, error) {
	f, err := b.Reader(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (b *Bucket) RemoveFile(name string) error {
	return os.Remove(b.filePath(name))
}
