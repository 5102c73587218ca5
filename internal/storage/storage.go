package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

type Uploader interface {
	// Upload stores r under objectName and returns the URL clients should use.
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ContentTypeFor maps an allowed upload extension to its MIME type.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
