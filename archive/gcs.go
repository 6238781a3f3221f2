package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"cloud.google.com/go/storage"
)

// uploadTimeout bounds a single object upload.
const uploadTimeout = 2 * time.Minute

// Uploader copies a local file into a bucket object.
type Uploader interface {
	UploadFile(ctx context.Context, bucketName, objectName, filePath string) error
}

// GCSArchiver uploads statements to gs://<Bucket>/<Prefix>/<name>. The local
// file is left in place.
type GCSArchiver struct {
	Bucket   string
	Prefix   string
	uploader Uploader
}

func NewGCSArchiver(bucket, prefix string) *GCSArchiver {
	return &GCSArchiver{Bucket: bucket, Prefix: prefix, uploader: storageUploader{}}
}

// WithUploader swaps the storage client, mainly for tests.
func (a *GCSArchiver) WithUploader(u Uploader) *GCSArchiver {
	a.uploader = u
	return a
}

func (a *GCSArchiver) objectName(name string) string {
	if a.Prefix == "" {
		return name
	}
	return path.Join(a.Prefix, name)
}

func (a *GCSArchiver) Archive(ctx context.Context, srcPath, name string) (string, error) {
	object := a.objectName(name)
	if err := a.uploader.UploadFile(ctx, a.Bucket, object, srcPath); err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", a.Bucket, object), nil
}

// storageUploader talks to Cloud Storage with Application Default
// Credentials.
type storageUploader struct{}

func (storageUploader) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/pdf"

	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("copy file to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}
