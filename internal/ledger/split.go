package ledger

import "github.com/shopspring/decimal"

// Participants returns the set of users sharing an expense's cost:
// SplitBetween for EQUAL splits, the split-detail user IDs for UNEQUAL
// splits. A user absent from the authoritative set owes nothing regardless
// of what the other field says.
func Participants(e Expense) []string {
	if e.SplitType == SplitTypeUnequal {
		ids := make([]string, 0, len(e.SplitDetails))
		for _, d := range e.SplitDetails {
			ids = append(ids, d.UserID)
		}
		return ids
	}
	return e.SplitBetween
}

// IsParticipant reports whether userID shares the expense's cost.
func IsParticipant(e Expense, userID string) bool {
	if e.SplitType == SplitTypeUnequal {
		for _, d := range e.SplitDetails {
			if d.UserID == userID {
				return true
			}
		}
		return false
	}
	for _, id := range e.SplitBetween {
		if id == userID {
			return true
		}
	}
	return false
}

// ShareOf computes what a single participant owes for one expense.
//
// EQUAL: amount divided by the number of members in SplitBetween; an empty
// set contributes zero (never a division by zero). UNEQUAL: the matching
// split-detail amount, taken as given without normalizing against the
// expense total. A user outside the participant set owes zero.
//
// For the payer this is their own notional share, not what they are owed;
// what the payer gets back is ImpactOf's job.
func ShareOf(e Expense, userID string) decimal.Decimal {
	if e.SplitType == SplitTypeUnequal {
		for _, d := range e.SplitDetails {
			if d.UserID == userID {
				return d.Amount
			}
		}
		return decimal.Zero
	}

	n := len(e.SplitBetween)
	if n == 0 {
		return decimal.Zero
	}
	for _, id := range e.SplitBetween {
		if id == userID {
			return e.Amount.Div(decimal.NewFromInt(int64(n)))
		}
	}
	return decimal.Zero
}
