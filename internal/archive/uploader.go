// Package archive writes completed mentor session payloads to Cloud Storage
// for offline review. Archiving is best effort and never blocks a reply.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"github.com/shettydevesh/zenvestAi-backend/internal/mentor"
)

// Uploader archives session payloads as JSON objects under
// sessions/<user_id>/<session_id>.json in the configured bucket.
type Uploader struct {
	client *storage.Client
	bucket string
}

var _ mentor.Archiver = (*Uploader)(nil)

// NewUploader creates an uploader for the given bucket. It assumes
// Application Default Credentials are configured.
func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("NewUploader: bucket cannot be empty")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewUploader: create storage client: %w", err)
	}

	return &Uploader{client: client, bucket: bucket}, nil
}

// Close closes the storage client.
func (u *Uploader) Close() error {
	if u.client != nil {
		return u.client.Close()
	}
	return nil
}

// ArchiveSession implements mentor.Archiver.
func (u *Uploader) ArchiveSession(ctx context.Context, userID, sessionID string, payload interface{}) error {
	if sessionID == "" {
		return fmt.Errorf("ArchiveSession: session_id cannot be empty")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ArchiveSession: marshaling payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	objectName := fmt.Sprintf("sessions/%s/%s.json", userID, sessionID)
	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return fmt.Errorf("ArchiveSession: writing object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("ArchiveSession: finalize upload: %w", err)
	}

	return nil
}
