package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/splitmate/splitmate/internal"
	"github.com/splitmate/splitmate/internal/expense"
	"github.com/splitmate/splitmate/internal/group"
	"github.com/splitmate/splitmate/internal/ledger"
	"github.com/splitmate/splitmate/internal/settlement"
	"github.com/splitmate/splitmate/internal/user"
)

// Snapshot is one consistent read of everything the balance views consume.
// All derived numbers are recomputed from scratch on every snapshot; nothing
// is incrementally patched.
type Snapshot struct {
	Expenses    []ledger.Expense
	Settlements []ledger.Settlement
	Groups      []ledger.Group
	Users       []ledger.User
	Summary     ledger.Summary
	FetchedAt   time.Time
}

// ExpenseSource is the slice of the expense service the fetcher needs.
type ExpenseSource interface {
	ListExpenses(filter expense.ListExpensesDTO) ([]*expense.Expense, error)
}

type SettlementSource interface {
	ListSettlements(filter settlement.ListSettlementsDTO) ([]*settlement.Settlement, error)
}

type GroupSource interface {
	ListGroups() ([]*group.Group, error)
}

type UserSource interface {
	ListUsers() ([]*user.User, error)
}

// Fetcher pulls the four record sets concurrently and assembles a snapshot
// for one viewer.
type Fetcher struct {
	expenses    ExpenseSource
	settlements SettlementSource
	groups      GroupSource
	users       UserSource
	timeout     time.Duration
}

func NewFetcher(expenses ExpenseSource, settlements SettlementSource, groups GroupSource, users UserSource, timeout time.Duration) *Fetcher {
	return &Fetcher{
		expenses:    expenses,
		settlements: settlements,
		groups:      groups,
		users:       users,
		timeout:     timeout,
	}
}

// Fetch loads all record sets and computes the summary for the viewer
// carried in the context (internal.ContextWithUserID). The first source
// error wins; a cancelled context aborts before assembly.
func (f *Fetcher) Fetch(ctx context.Context) (Snapshot, error) {
	viewerID := internal.UserIDFromContext(ctx)

	ctx, cancel := internal.WithTimeout(ctx, f.timeout)
	defer cancel()

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		firstErr    error
		expenses    []*expense.Expense
		settlements []*settlement.Settlement
		groups      []*group.Group
		users       []*user.User
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if expenses, err = f.expenses.ListExpenses(expense.ListExpensesDTO{}); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if settlements, err = f.settlements.ListSettlements(settlement.ListSettlementsDTO{}); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if groups, err = f.groups.ListGroups(); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if users, err = f.users.ListUsers(); err != nil {
			fail(err)
		}
	}()
	wg.Wait()

	if firstErr != nil {
		return Snapshot{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Expenses:    expense.ToLedgerSlice(expenses),
		Settlements: settlement.ToLedgerSlice(settlements),
		Groups:      group.ToLedgerSlice(groups),
		Users:       user.ToLedgerSlice(users),
		FetchedAt:   time.Now(),
	}
	snap.Summary = ledger.GlobalSummary(snap.Expenses, viewerID)
	return snap, nil
}
