package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ImpactOf computes what a single expense does to one viewer's position.
//
// The payer is owed everyone else's share: for an EQUAL split that is
// (amount/n)*(n-1) when the payer is also a participant, or the full amount
// when the payer fronted money for a split they are not part of. A
// non-payer participant owes exactly their share. A user who neither paid
// nor participates is unaffected.
func ImpactOf(e Expense, viewerID string) Impact {
	impact := Impact{Pay: decimal.Zero, Get: decimal.Zero}

	if e.PaidBy == viewerID {
		if e.SplitType == SplitTypeUnequal {
			for _, d := range e.SplitDetails {
				if d.UserID != viewerID {
					impact.Get = impact.Get.Add(d.Amount)
				}
			}
			return impact
		}

		n := len(e.SplitBetween)
		if n == 0 {
			return impact
		}
		if IsParticipant(e, viewerID) {
			share := e.Amount.Div(decimal.NewFromInt(int64(n)))
			impact.Get = share.Mul(decimal.NewFromInt(int64(n - 1)))
		} else {
			impact.Get = e.Amount
		}
		return impact
	}

	if IsParticipant(e, viewerID) {
		impact.Pay = ShareOf(e, viewerID)
	}
	return impact
}

// GlobalSummary aggregates ImpactOf over every expense in scope. TotalSpent
// is the viewer's gross outlay (sum of amounts they fronted), not their net
// position.
func GlobalSummary(expenses []Expense, viewerID string) Summary {
	summary := Summary{
		YouOwe:           decimal.Zero,
		OwesYou:          decimal.Zero,
		TotalSpent:       decimal.Zero,
		TransactionCount: len(expenses),
	}

	for _, e := range expenses {
		impact := ImpactOf(e, viewerID)
		summary.YouOwe = summary.YouOwe.Add(impact.Pay)
		summary.OwesYou = summary.OwesYou.Add(impact.Get)
		if e.PaidBy == viewerID {
			summary.TotalSpent = summary.TotalSpent.Add(e.Amount)
		}
	}
	return summary
}

// pairwiseDelta is the signed effect of one expense on the viewer-vs-other
// balance. Positive means other owes viewer.
func pairwiseDelta(e Expense, viewerID, otherID string) decimal.Decimal {
	if e.PaidBy == viewerID && IsParticipant(e, otherID) {
		return ShareOf(e, otherID)
	}
	if e.PaidBy == otherID && IsParticipant(e, viewerID) {
		return ShareOf(e, viewerID).Neg()
	}
	return decimal.Zero
}

// settlementDelta is the signed effect of one settlement on the
// viewer-vs-other balance. A settlement always moves the payer's side of the
// balance toward "others owe the payer" by exactly its amount, so a payment
// by the viewer adds and a payment by the other subtracts.
func settlementDelta(s Settlement, viewerID, otherID string) (decimal.Decimal, bool) {
	if s.FromUserID == viewerID && s.ToUserID == otherID {
		return s.Amount, true
	}
	if s.FromUserID == otherID && s.ToUserID == viewerID {
		return s.Amount.Neg(), true
	}
	return decimal.Zero, false
}

// PairwiseBalance nets all shared expenses and settlements between the
// viewer and one counterparty. Positive means the counterparty owes the
// viewer. The total is a sum, so it is independent of event order.
func PairwiseBalance(expenses []Expense, settlements []Settlement, viewerID, otherID string) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range expenses {
		balance = balance.Add(pairwiseDelta(e, viewerID, otherID))
	}
	for _, s := range settlements {
		if delta, ok := settlementDelta(s, viewerID, otherID); ok {
			balance = balance.Add(delta)
		}
	}
	return balance
}

// PairwiseLedger builds the chronological running ledger between the viewer
// and one counterparty: every shared expense and every settlement between
// the pair, with a running balance accumulated oldest to newest. The result
// is returned newest-first, the order the detail screen renders it in.
func PairwiseLedger(expenses []Expense, settlements []Settlement, viewerID, otherID string) []LedgerEvent {
	var events []LedgerEvent

	for _, e := range expenses {
		related := (e.PaidBy == viewerID && IsParticipant(e, otherID)) ||
			(e.PaidBy == otherID && IsParticipant(e, viewerID)) ||
			(IsParticipant(e, viewerID) && IsParticipant(e, otherID))
		if !related {
			continue
		}
		events = append(events, LedgerEvent{
			ID:        "expense-" + e.ID,
			Kind:      EventKindExpense,
			Title:     e.Title,
			Date:      e.Date,
			Amount:    pairwiseDelta(e, viewerID, otherID),
			ExpenseID: e.ID,
			Note:      e.Category,
		})
	}

	for _, s := range settlements {
		delta, ok := settlementDelta(s, viewerID, otherID)
		if !ok {
			continue
		}
		events = append(events, LedgerEvent{
			ID:         "settlement-" + s.ID,
			Kind:       EventKindSettlement,
			Date:       s.SettledAt,
			Amount:     delta,
			FromUserID: s.FromUserID,
			Note:       s.Note,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	running := decimal.Zero
	for i := range events {
		running = running.Add(events[i].Amount)
		events[i].RunningBalance = running
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events
}

// GroupBalances computes the viewer's position per group: gross pay/get over
// the group's expenses, plus the net of group-scoped settlements involving
// the viewer. Settlements without a group ID stay out of group balances;
// they only affect pairwise and global views.
func GroupBalances(expenses []Expense, settlements []Settlement, groupIDs []string, viewerID string) map[string]GroupBalance {
	balances := make(map[string]GroupBalance, len(groupIDs))
	for _, id := range groupIDs {
		balances[id] = GroupBalance{
			Pay:        decimal.Zero,
			Get:        decimal.Zero,
			SettledNet: decimal.Zero,
		}
	}

	for _, e := range expenses {
		bal, ok := balances[e.GroupID]
		if !ok {
			continue
		}
		impact := ImpactOf(e, viewerID)
		bal.Pay = bal.Pay.Add(impact.Pay)
		bal.Get = bal.Get.Add(impact.Get)
		balances[e.GroupID] = bal
	}

	for _, s := range settlements {
		bal, ok := balances[s.GroupID]
		if !ok {
			continue
		}
		switch viewerID {
		case s.FromUserID:
			bal.SettledNet = bal.SettledNet.Add(s.Amount)
		case s.ToUserID:
			bal.SettledNet = bal.SettledNet.Sub(s.Amount)
		default:
			continue
		}
		balances[s.GroupID] = bal
	}

	for id, bal := range balances {
		bal.Net = bal.Get.Sub(bal.Pay).Add(bal.SettledNet)
		balances[id] = bal
	}
	return balances
}

// ExpenseIDSet collects the IDs of a snapshot's expenses, the state a caller
// keeps between refresh cycles to detect arrivals.
func ExpenseIDSet(expenses []Expense) map[string]struct{} {
	ids := make(map[string]struct{}, len(expenses))
	for _, e := range expenses {
		ids[e.ID] = struct{}{}
	}
	return ids
}

// DiffSnapshots returns the expenses of the current snapshot whose IDs were
// not present in the previous one, preserving input order. A nil previous
// set means everything is new.
func DiffSnapshots(previousIDs map[string]struct{}, current []Expense) []Expense {
	var added []Expense
	for _, e := range current {
		if _, seen := previousIDs[e.ID]; !seen {
			added = append(added, e)
		}
	}
	return added
}
