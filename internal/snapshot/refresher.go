package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/splitmate/splitmate/internal"
	"github.com/splitmate/splitmate/internal/core/events"
	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/pkg/logger"
)

// Notification describes an expense that arrived since the previous
// snapshot and involves the viewer.
type Notification struct {
	Expense ledger.Expense
	Message string
}

type NotifyFunc func(Notification)

// Refresher keeps a viewer's snapshot fresh: it polls on an interval,
// refreshes immediately when an expense.created event lands on the bus, and
// emits notifications for expenses added by someone else.
type Refresher struct {
	fetcher  *Fetcher
	viewerID string
	interval time.Duration
	notify   NotifyFunc
	logger   *slog.Logger

	mu       sync.RWMutex
	current  Snapshot
	knownIDs map[string]struct{}
	primed   bool
}

func NewRefresher(fetcher *Fetcher, viewerID string, interval time.Duration, notify NotifyFunc, logger *slog.Logger) *Refresher {
	return &Refresher{
		fetcher:  fetcher,
		viewerID: viewerID,
		interval: interval,
		notify:   notify,
		logger:   logger,
	}
}

// Current returns the latest snapshot.
func (r *Refresher) Current() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Refresh fetches a new snapshot, diffs it against the previous one and
// fires notifications for arrivals. The first refresh only primes the known
// set so a cold start does not replay history as notifications.
func (r *Refresher) Refresh(ctx context.Context) (Snapshot, error) {
	ctx = internal.ContextWithUserID(ctx, r.viewerID)
	snap, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.logger.Error("snapshot fetch failed", "error", err, "viewer_id", r.viewerID)
		return Snapshot{}, err
	}

	r.mu.Lock()
	wasPrimed := r.primed
	previous := r.knownIDs
	r.current = snap
	r.knownIDs = ledger.ExpenseIDSet(snap.Expenses)
	r.primed = true
	r.mu.Unlock()

	if wasPrimed {
		r.announce(ledger.DiffSnapshots(previous, snap.Expenses))
	}

	r.logger.Debug("snapshot refreshed",
		"viewer_id", r.viewerID,
		"expenses", len(snap.Expenses),
		"settlements", len(snap.Settlements))
	return snap, nil
}

// announce notifies about new expenses, skipping the viewer's own: you do
// not need a push for money you just spent yourself.
func (r *Refresher) announce(added []ledger.Expense) {
	if r.notify == nil {
		return
	}
	for _, e := range added {
		if e.PaidBy == r.viewerID {
			continue
		}
		if !ledger.IsParticipant(e, r.viewerID) {
			continue
		}
		r.notify(Notification{
			Expense: e,
			Message: fmt.Sprintf("New expense %q of %s, your share is %s",
				e.Title, e.Amount, ledger.ShareOf(e, r.viewerID)),
		})
	}
}

// Start runs the poll loop until the context is cancelled. The first
// refresh happens immediately unless a snapshot was already loaded, so a
// caller that refreshed for its startup banner does not trigger a second
// fetch.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.RLock()
	primed := r.primed
	r.mu.RUnlock()

	if !primed {
		if _, err := r.Refresh(ctx); err != nil {
			r.logger.Error("initial snapshot refresh failed", "error", err)
		}
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("snapshot refresher stopped", "viewer_id", r.viewerID)
			return
		case <-ticker.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.logger.Error("scheduled snapshot refresh failed", "error", err)
			}
		}
	}
}

// HandleExpenseCreated is the event bus hook: any created expense triggers
// an immediate refresh instead of waiting out the poll interval.
func (r *Refresher) HandleExpenseCreated(ctx context.Context, event events.Event) error {
	logger.From(ctx).Debug("refresh triggered by event",
		"event_type", event.EventType(),
		"event_id", event.EventID())
	_, err := r.Refresh(ctx)
	return err
}

// Register subscribes the refresher to the events that should short-circuit
// the poll interval.
func (r *Refresher) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeExpenseCreated, r.HandleExpenseCreated)
	bus.Subscribe(events.EventTypeSettlementRecorded, r.HandleExpenseCreated)
}
