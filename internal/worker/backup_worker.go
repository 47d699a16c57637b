// Package worker runs ledger backups out of process. It consumes backup
// requests from AMQP and keeps a periodic sweep as a backstop for lost
// messages, reading state through its own store handle.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/amqp"
	"tally/internal/backup"
	"tally/internal/ledger"
)

type BackupWorker struct {
	store   ledger.Store
	service backup.Service
	now     func() time.Time
}

func NewBackupWorker(store ledger.Store, service backup.Service) *BackupWorker {
	return &BackupWorker{
		store:   store,
		service: service,
		now:     time.Now,
	}
}

// HandleBackupRequest processes one queued trigger. The message carries no
// data; whatever the ledger looks like now is what gets shipped.
func (w *BackupWorker) HandleBackupRequest(ctx context.Context, msg *amqp.BackupRequestMessage) error {
	slog.InfoContext(ctx, "Processing backup request",
		"reason", msg.Reason,
		"requested_at", msg.RequestedAt)
	return w.backupOnce(ctx)
}

// SweepIfStale takes a backup when auto-backup is on and the last successful
// one is older than maxAge. Backstop for dropped queue messages.
func (w *BackupWorker) SweepIfStale(ctx context.Context, maxAge time.Duration) error {
	st, err := w.store.LoadAppState(ctx)
	if err != nil {
		return fmt.Errorf("load app state: %w", err)
	}
	if !st.AutoBackupEnabled {
		return nil
	}
	if st.LastBackupAt != nil && w.now().Sub(*st.LastBackupAt) < maxAge {
		return nil
	}

	slog.InfoContext(ctx, "Backup sweep triggered",
		"last_backup_at", st.LastBackupAt,
		"max_age", maxAge)
	return w.backupOnce(ctx)
}

func (w *BackupWorker) backupOnce(ctx context.Context) error {
	expenses, err := w.store.LoadExpenses(ctx)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	incomes, err := w.store.LoadIncomes(ctx)
	if err != nil {
		return fmt.Errorf("load incomes: %w", err)
	}
	closed, err := w.store.LoadClosedPeriods(ctx)
	if err != nil {
		return fmt.Errorf("load closed periods: %w", err)
	}

	snap := backup.NewSnapshot(expenses, incomes, closed, w.now())
	data, err := snap.Marshal()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := w.service.Backup(ctx, data); err != nil {
		return fmt.Errorf("ship snapshot: %w", err)
	}

	st, err := w.store.LoadAppState(ctx)
	if err != nil {
		return fmt.Errorf("load app state: %w", err)
	}
	done := w.now()
	st.LastBackupAt = &done
	if err := w.store.SaveAppState(ctx, st); err != nil {
		return fmt.Errorf("save app state: %w", err)
	}

	slog.InfoContext(ctx, "Backup completed",
		"expenses", len(snap.Expenses),
		"incomes", len(snap.Incomes),
		"closed_periods", len(snap.ClosedPeriods))
	return nil
}
