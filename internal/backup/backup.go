// Package backup coordinates cloud backups of the ledger. The scheduler
// listens for committed mutations and ships JSON snapshots to a Service;
// failures surface to the caller and are never retried automatically; the
// next triggering event is the retry.
package backup

import (
	"context"
	"fmt"
)

// Kind classifies a backup failure for the UI layer.
type Kind string

const (
	KindNetwork Kind = "network"
	KindAuth    Kind = "auth_failure"
	KindQuota   Kind = "quota_exceeded"
	KindOther   Kind = "other"
)

// Error is an opaque pass-through from the backup service, tagged with a
// coarse failure kind. Non-fatal: the ledger itself is unaffected.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("backup %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WrapError tags err with a kind, preserving the chain.
func WrapError(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Service ships a serialized ledger snapshot to durable cloud storage.
type Service interface {
	Backup(ctx context.Context, snapshot []byte) error
}
