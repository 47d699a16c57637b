package backup

import (
	"context"
	"log/slog"
	"time"

	"tally/internal/ledger"
)

// Result reports the outcome of one backup attempt to whoever is watching
// (settings UI, worker logs). A nil Err is a success.
type Result struct {
	At  time.Time
	Err error
}

// Scheduler drives backups off the engine's mutation events. It runs outside
// the engine's critical section: events arrive on a buffered channel and each
// attempt works on a snapshot copy, so a hung backup can never block a
// mutation.
type Scheduler struct {
	engine  *ledger.Engine
	service Service
	results chan Result
	now     func() time.Time
}

func NewScheduler(engine *ledger.Engine, service Service) *Scheduler {
	return &Scheduler{
		engine:  engine,
		service: service,
		results: make(chan Result, 16),
		now:     time.Now,
	}
}

// Results exposes backup outcomes. Receivers that lag lose old results.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Run consumes mutation events until ctx is done. One attempt at a time: a
// failed attempt is not retried until the next triggering event.
func (s *Scheduler) Run(ctx context.Context) {
	events := s.engine.Subscribe(64)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !triggers(ev.Kind) {
				continue
			}
			if !s.engine.AppState().AutoBackupEnabled {
				continue
			}
			s.BackupNow(ctx)
		}
	}
}

// BackupNow performs a single attempt immediately, regardless of the toggle.
// Used by Run and by the settings surface ("back up now").
func (s *Scheduler) BackupNow(ctx context.Context) {
	expenses, incomes := s.engine.Snapshot()
	snap := NewSnapshot(expenses, incomes, s.engine.ClosedPeriods(), s.now())

	data, err := snap.Marshal()
	if err != nil {
		s.report(Result{At: s.now(), Err: WrapError(KindOther, err)})
		return
	}

	if err := s.service.Backup(ctx, data); err != nil {
		slog.WarnContext(ctx, "Backup attempt failed", "error", err)
		s.report(Result{At: s.now(), Err: err})
		return
	}

	done := s.now()
	if err := s.engine.MarkBackupDone(ctx, done); err != nil {
		slog.ErrorContext(ctx, "Backup succeeded but stamping app state failed", "error", err)
		s.report(Result{At: done, Err: err})
		return
	}
	slog.InfoContext(ctx, "Backup completed",
		"expenses", len(snap.Expenses),
		"incomes", len(snap.Incomes))
	s.report(Result{At: done})
}

func (s *Scheduler) report(r Result) {
	select {
	case s.results <- r:
	default:
	}
}

func triggers(k ledger.EventKind) bool {
	switch k {
	case ledger.EventExpenseAdded, ledger.EventExpenseUpdated, ledger.EventExpenseDeleted,
		ledger.EventIncomeAdded, ledger.EventIncomeUpdated, ledger.EventIncomeDeleted,
		ledger.EventMonthClosed, ledger.EventBackupEnabled:
		return true
	}
	return false
}
