package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType determines how an expense's cost is divided among participants.
type SplitType string

const (
	SplitTypeEqual   SplitType = "EQUAL"
	SplitTypeUnequal SplitType = "UNEQUAL"
)

// SplitDetail is one explicit share of an UNEQUAL expense.
type SplitDetail struct {
	UserID string
	Amount decimal.Decimal
}

// Expense carries the minimal information the ledger needs from an expense
// record. Domain packages convert their richer models into this shape before
// invoking the engine.
type Expense struct {
	ID       string
	Title    string
	Amount   decimal.Decimal
	Date     time.Time
	Category string
	PaidBy   string

	// GroupID is empty for personal (non-group) expenses.
	GroupID string

	SplitType SplitType

	// SplitBetween is the authoritative participant set for EQUAL splits.
	SplitBetween []string

	// SplitDetails is the authoritative share list for UNEQUAL splits. The
	// amounts are trusted as given: they need not include the payer and need
	// not sum to Amount.
	SplitDetails []SplitDetail
}

// Settlement records a real-world payment that pays down an outstanding
// balance between two users, outside the split math.
type Settlement struct {
	ID         string
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal

	// GroupID is empty for personal settlements.
	GroupID string

	SettledAt time.Time
	Note      string
}

// Group is reference data for group-scoped aggregation.
type Group struct {
	ID      string
	Name    string
	Members []string
}

// User is reference data for display labels.
type User struct {
	ID     string
	Name   string
	Mobile string
	Avatar string
}

// Impact is what a single expense (or a set of them) does to one viewer's
// position: Pay is what the viewer owes others, Get is what others owe the
// viewer. Both are non-negative.
type Impact struct {
	Pay decimal.Decimal
	Get decimal.Decimal
}

// Add returns the component-wise sum of two impacts.
func (i Impact) Add(other Impact) Impact {
	return Impact{
		Pay: i.Pay.Add(other.Pay),
		Get: i.Get.Add(other.Get),
	}
}

// Net returns Get - Pay: positive means others owe the viewer on balance.
func (i Impact) Net() decimal.Decimal {
	return i.Get.Sub(i.Pay)
}

// Summary is the account-wide position shown on the home screen.
type Summary struct {
	YouOwe           decimal.Decimal
	OwesYou          decimal.Decimal
	TotalSpent       decimal.Decimal
	TransactionCount int
}

// EventKind discriminates entries of a pairwise ledger.
type EventKind string

const (
	EventKindExpense    EventKind = "expense"
	EventKindSettlement EventKind = "settlement"
)

// LedgerEvent is one chronological entry in a pairwise ledger between the
// viewer and one counterparty. Amount is signed from the viewer's
// perspective: positive moves the balance toward "others owe the viewer".
type LedgerEvent struct {
	ID             string
	Kind           EventKind
	Title          string
	Date           time.Time
	Amount         decimal.Decimal
	RunningBalance decimal.Decimal
	ExpenseID      string
	FromUserID     string
	Note           string
}

// GroupBalance is the viewer's position within one group. Pay and Get are
// gross sums over the group's expenses; SettledNet is the net effect of
// group-scoped settlements involving the viewer (positive when the viewer
// paid down debt); Net is Get - Pay + SettledNet.
type GroupBalance struct {
	Pay        decimal.Decimal
	Get        decimal.Decimal
	SettledNet decimal.Decimal
	Net        decimal.Decimal
}
