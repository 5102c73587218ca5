package storage

import (
	"context"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSUploader stores profile documents in a bucket. Objects are made
// world-readable so the admin dashboard can link them directly.
type GCSUploader struct {
	client *gcs.Client
	bucket string
}

// NewGCSUploader uses credentialsFile when set, otherwise application default credentials.
func NewGCSUploader(ctx context.Context, bucket, credentialsFile string) (*GCSUploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	c, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSUploader{client: c, bucket: bucket}, nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }

func (u *GCSUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	obj := u.client.Bucket(u.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "private, max-age=0"
	w.PredefinedACL = "publicRead"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return PublicURL(u.bucket, objectName), nil
}

// PublicURL is the direct download link for an object, with each path
// segment escaped.
func PublicURL(bucket, objectName string) string {
	segs := strings.Split(objectName, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "https://storage.googleapis.com/" + bucket + "/" + strings.Join(segs, "/")
}
