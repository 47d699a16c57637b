// Package gcs implements the cloud backup service on a Google Cloud Storage
// bucket. Each backup lands as a timestamped JSON object so older snapshots
// stay restorable.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"tally/internal/backup"
)

type Client struct {
	client *storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// New builds a client for the given bucket. With an empty credentialsFile it
// falls back to Application Default Credentials.
func New(ctx context.Context, bucket, prefix, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	cli, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Client{client: cli, bucket: bucket, prefix: prefix, now: time.Now}, nil
}

// Backup uploads one snapshot object. The ledger treats any error here as a
// surfaced, non-retried failure, so this method maps transport errors onto
// the backup error kinds and nothing else.
func (c *Client) Backup(ctx context.Context, snapshot []byte) error {
	name := path.Join(c.prefix, fmt.Sprintf("ledger-%s.json", c.now().UTC().Format("20060102T150405Z")))

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := c.client.Bucket(c.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(snapshot); err != nil {
		_ = w.Close()
		return backup.WrapError(classify(err), fmt.Errorf("write snapshot %s: %w", name, err))
	}
	if err := w.Close(); err != nil {
		return backup.WrapError(classify(err), fmt.Errorf("finalize snapshot %s: %w", name, err))
	}
	return nil
}

// Restore fetches the named snapshot object, for restore tooling.
func (c *Client) Restore(ctx context.Context, name string) ([]byte, error) {
	rc, err := c.client.Bucket(c.bucket).Object(path.Join(c.prefix, name)).NewReader(ctx)
	if err != nil {
		return nil, backup.WrapError(classify(err), fmt.Errorf("open snapshot %s: %w", name, err))
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, backup.WrapError(classify(err), fmt.Errorf("read snapshot %s: %w", name, err))
	}
	return data, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func classify(err error) backup.Kind {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return backup.KindAuth
		case http.StatusTooManyRequests:
			return backup.KindQuota
		}
		if gerr.Code >= http.StatusInternalServerError {
			return backup.KindNetwork
		}
		return backup.KindOther
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return backup.KindNetwork
	}
	return backup.KindOther
}
