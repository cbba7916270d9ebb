// Package gcs uploads local audio to Google Cloud Storage so the speech
// service can read it by URI.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wilsoncelyCUC/google-speech-transcription-diarization/internal/progress"
)

const objectPrefix = "audio_uploads"

// Uploader places a local file in remote storage and returns its URI.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Client uploads to one GCS bucket.
type Client struct {
	api    *storage.Client
	bucket string
	log    *logrus.Logger
}

// NewClient dials GCS using application default credentials.
func NewClient(ctx context.Context, bucket string, log *logrus.Logger) (*Client, error) {
	api, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Client{api: api, bucket: bucket, log: log}, nil
}

// Close releases the storage connection.
func (c *Client) Close() error {
	return c.api.Close()
}

// Upload streams localPath into the bucket under a collision-proof object
// name and returns the gs:// URI. A throttled progress bar tracks bytes on
// stderr.
func (c *Client) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", localPath, err)
	}

	object := ObjectName(localPath)
	c.log.WithFields(logrus.Fields{
		"bucket": c.bucket,
		"object": object,
		"bytes":  fi.Size(),
	}).Info("uploading audio to GCS")

	bar := progress.NewBarReporter(os.Stderr, "Uploading")
	src := &countingReader{r: f, total: fi.Size(), report: bar.Update}

	w := c.api.Bucket(c.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		bar.Done()
		return "", fmt.Errorf("upload %s: %w", localPath, err)
	}
	if err := w.Close(); err != nil {
		bar.Done()
		return "", fmt.Errorf("finalize upload of %s: %w", localPath, err)
	}
	bar.Update(100)
	bar.Done()

	return fmt.Sprintf("gs://%s/%s", c.bucket, object), nil
}

// ObjectName derives a unique object key for a local file. The original
// basename is kept for traceability; the uuid suffix keeps repeated uploads
// of the same recording from overwriting each other.
func ObjectName(localPath string) string {
	return fmt.Sprintf("%s/%s_%s", objectPrefix, filepath.Base(localPath), uuid.NewString())
}

// countingReader reports cumulative progress as a percentage of total.
type countingReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(percent int)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.total > 0 && c.report != nil {
		c.report(int(c.read * 100 / c.total))
	}
	return n, err
}
