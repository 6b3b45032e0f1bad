package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore uploads voice-note attachments into a Cloud Storage bucket
// and hands back durable download URLs.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket, credentialsPath string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.New("creating storage client error: " + err.Error())
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
	}, nil
}

func (s *GCSStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", errors.New("writing object error: " + err.Error())
	}
	if err := w.Close(); err != nil {
		return "", errors.New("closing object writer error: " + err.Error())
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath), nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
