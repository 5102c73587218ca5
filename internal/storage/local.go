package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalUploader writes under a directory served statically at urlPrefix.
type LocalUploader struct {
	root      string
	urlPrefix string
}

func NewLocalUploader(root, urlPrefix string) *LocalUploader {
	return &LocalUploader{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (u *LocalUploader) Upload(ctx context.Context, objectName string, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := path.Base(objectName)
	if err := os.MkdirAll(u.root, 0o755); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(u.root, ".upload-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, filepath.Join(u.root, name)); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return u.urlPrefix + "/" + name, nil
}
