package expense

import (
	"time"

	"github.com/shopspring/decimal"

	expenseDatamodel "github.com/splitmate/splitmate/internal/core/datamodel/expense"
	"github.com/splitmate/splitmate/internal/ledger"
)

type Expense struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Amount       decimal.Decimal      `json:"amount"`
	Date         *time.Time           `json:"date,omitempty"`
	Category     string               `json:"category,omitempty"`
	PaidBy       string               `json:"paid_by"`
	GroupID      string               `json:"group_id,omitempty"`
	SplitType    ledger.SplitType     `json:"split_type"`
	SplitBetween []string             `json:"split_between,omitempty"`
	SplitDetails []ledger.SplitDetail `json:"split_details,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToLedger projects the expense into the computation shape the balance
// engine consumes. A missing date becomes the zero time, which the engine
// and aggregator treat as the unknown-date bucket.
func (e *Expense) ToLedger() ledger.Expense {
	var date time.Time
	if e.Date != nil {
		date = *e.Date
	}
	return ledger.Expense{
		ID:           e.ID,
		Title:        e.Title,
		Amount:       e.Amount,
		Date:         date,
		Category:     e.Category,
		PaidBy:       e.PaidBy,
		GroupID:      e.GroupID,
		SplitType:    e.SplitType,
		SplitBetween: e.SplitBetween,
		SplitDetails: e.SplitDetails,
	}
}

func ToLedgerSlice(expenses []*Expense) []ledger.Expense {
	result := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		result[i] = e.ToLedger()
	}
	return result
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	dm := &expenseDatamodel.Expense{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		ExpenseDate: e.Date,
		Category:    e.Category,
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.GroupID != "" {
		groupID := e.GroupID
		dm.GroupID = &groupID
	}
	for _, userID := range e.SplitBetween {
		dm.Participants = append(dm.Participants, expenseDatamodel.ExpenseParticipant{
			ExpenseID: e.ID,
			UserID:    userID,
		})
	}
	for _, d := range e.SplitDetails {
		dm.Splits = append(dm.Splits, expenseDatamodel.ExpenseSplit{
			ExpenseID: e.ID,
			UserID:    d.UserID,
			Amount:    d.Amount,
		})
	}
	return dm
}

func FromDataModel(dm *expenseDatamodel.Expense) *Expense {
	e := &Expense{
		ID:        dm.ID,
		Title:     dm.Title,
		Amount:    dm.Amount,
		Date:      dm.ExpenseDate,
		Category:  dm.Category,
		PaidBy:    dm.PaidBy,
		SplitType: ledger.SplitType(dm.SplitType),
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
	if dm.GroupID != nil {
		e.GroupID = *dm.GroupID
	}
	for _, p := range dm.Participants {
		e.SplitBetween = append(e.SplitBetween, p.UserID)
	}
	for _, s := range dm.Splits {
		e.SplitDetails = append(e.SplitDetails, ledger.SplitDetail{
			UserID: s.UserID,
			Amount: s.Amount,
		})
	}
	return e
}

func FromDataModelSlice(models []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(models))
	for i, dm := range models {
		result[i] = FromDataModel(dm)
	}
	return result
}
