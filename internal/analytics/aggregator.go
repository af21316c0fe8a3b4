package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitmate/splitmate/internal/ledger"
)

// TimeRange selects the trailing window of expenses to aggregate.
type TimeRange string

const (
	TimeRange30D TimeRange = "30D"
	TimeRange90D TimeRange = "90D"
	TimeRangeAll TimeRange = "ALL"
)

// Scope narrows aggregation to all expenses, personal (non-group) expenses,
// or a single group's expenses.
const (
	ScopeAll      = "all"
	ScopePersonal = "personal"
)

// UnknownBucket is the sentinel date key for expenses whose date could not
// be parsed. They stay in the money totals but are excluded from
// time-bucketed chart series.
const UnknownBucket = "Unknown"

// Filter is the analytics screen's filter state.
type Filter struct {
	TimeRange TimeRange

	// Scope is ScopeAll, ScopePersonal, or a group ID.
	Scope string

	// Now anchors the trailing window; the zero value means time.Now().
	Now time.Time
}

// SettlementTotals summarizes settled cash for the viewer within the filter
// scope. Net is positive when the viewer paid out more than they received.
type SettlementTotals struct {
	Paid     decimal.Decimal
	Received decimal.Decimal
	Net      decimal.Decimal
}

// RankedEntry is one row of a top-K ranking.
type RankedEntry struct {
	Label      string
	Value      decimal.Decimal
	Percentage float64
}

// State is everything the analytics screen renders, computed in one pass
// over a filtered snapshot.
type State struct {
	YouOwe           decimal.Decimal
	OwesYou          decimal.Decimal
	TotalSpent       decimal.Decimal
	TransactionCount int

	CategoryTotals map[string]decimal.Decimal
	CategoryCounts map[string]int
	GroupTotals    map[string]decimal.Decimal
	GroupCounts    map[string]int
	PayerTotals    map[string]decimal.Decimal
	PayerCounts    map[string]int

	DailyTotals   map[string]decimal.Decimal
	MonthlyTotals map[string]decimal.Decimal

	SettlementTotals SettlementTotals

	TopCategory    *RankedEntry
	TopPayer       *RankedEntry
	TopDate        *RankedEntry
	HighestExpense decimal.Decimal

	AveragePerMember             decimal.Decimal
	AverageSharePerParticipation decimal.Decimal
}

// Compute aggregates a snapshot under the given filter for one viewer.
// You-pay/you-get figures go through ledger.ImpactOf so this screen can
// never disagree with the home summary over the same records.
func Compute(expenses []ledger.Expense, settlements []ledger.Settlement, groups []ledger.Group, users []ledger.User, viewerID string, filter Filter) State {
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	groupNameByID := make(map[string]string, len(groups))
	groupMembersByID := make(map[string][]string, len(groups))
	for _, g := range groups {
		groupNameByID[g.ID] = g.Name
		groupMembersByID[g.ID] = g.Members
	}
	userNameByID := make(map[string]string, len(users))
	for _, u := range users {
		userNameByID[u.ID] = u.Name
	}

	state := State{
		YouOwe:         decimal.Zero,
		OwesYou:        decimal.Zero,
		TotalSpent:     decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal),
		CategoryCounts: make(map[string]int),
		GroupTotals:    make(map[string]decimal.Decimal),
		GroupCounts:    make(map[string]int),
		PayerTotals:    make(map[string]decimal.Decimal),
		PayerCounts:    make(map[string]int),
		DailyTotals:    make(map[string]decimal.Decimal),
		MonthlyTotals:  make(map[string]decimal.Decimal),
		SettlementTotals: SettlementTotals{
			Paid:     decimal.Zero,
			Received: decimal.Zero,
			Net:      decimal.Zero,
		},
		HighestExpense:               decimal.Zero,
		AveragePerMember:             decimal.Zero,
		AverageSharePerParticipation: decimal.Zero,
	}

	knownMembers := scopeMembers(filter.Scope, groupMembersByID, users)

	totalSpend := decimal.Zero
	participationCount := 0

	for _, e := range expenses {
		if !inScope(e.GroupID, filter.Scope) {
			continue
		}
		if !inWindow(e.Date, filter.TimeRange, now) {
			continue
		}

		state.TransactionCount++
		totalSpend = totalSpend.Add(e.Amount)
		if e.Amount.GreaterThan(state.HighestExpense) {
			state.HighestExpense = e.Amount
		}

		impact := ledger.ImpactOf(e, viewerID)
		state.YouOwe = state.YouOwe.Add(impact.Pay)
		state.OwesYou = state.OwesYou.Add(impact.Get)
		if e.PaidBy == viewerID {
			state.TotalSpent = state.TotalSpent.Add(e.Amount)
		}

		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = "Others"
		}
		addTo(state.CategoryTotals, state.CategoryCounts, category, e.Amount)

		addTo(state.GroupTotals, state.GroupCounts, groupLabel(e.GroupID, groupNameByID), e.Amount)
		addTo(state.PayerTotals, state.PayerCounts, payerLabel(e.PaidBy, userNameByID), e.Amount)

		dayKey, monthKey := bucketKeys(e.Date)
		state.DailyTotals[dayKey] = total(state.DailyTotals, dayKey).Add(e.Amount)
		state.MonthlyTotals[monthKey] = total(state.MonthlyTotals, monthKey).Add(e.Amount)

		if e.SplitType == ledger.SplitTypeUnequal {
			for _, d := range e.SplitDetails {
				if _, known := knownMembers[d.UserID]; known {
					participationCount++
				}
			}
		} else {
			participationCount += len(e.SplitBetween)
		}
	}

	for _, s := range settlements {
		if !inScope(s.GroupID, filter.Scope) {
			continue
		}
		if !inWindow(s.SettledAt, filter.TimeRange, now) {
			continue
		}
		switch viewerID {
		case s.FromUserID:
			state.SettlementTotals.Paid = state.SettlementTotals.Paid.Add(s.Amount)
		case s.ToUserID:
			state.SettlementTotals.Received = state.SettlementTotals.Received.Add(s.Amount)
		}
	}
	state.SettlementTotals.Net = state.SettlementTotals.Paid.Sub(state.SettlementTotals.Received)

	state.TopCategory = topEntry(state.CategoryTotals)
	state.TopPayer = topEntry(state.PayerTotals)
	state.TopDate = topDateEntry(state.DailyTotals)

	memberBase := int64(len(knownMembers))
	if memberBase < 1 {
		memberBase = 1
	}
	state.AveragePerMember = totalSpend.Div(decimal.NewFromInt(memberBase))
	if participationCount > 0 {
		state.AverageSharePerParticipation = totalSpend.Div(decimal.NewFromInt(int64(participationCount)))
	}

	return state
}

// TopK ranks a totals mapping by value descending and keeps the first k
// entries. Ties order by label so output is deterministic.
func TopK(totals map[string]decimal.Decimal, k int) []RankedEntry {
	entries := rankAll(totals)
	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// TopKWithOthers ranks like TopK but rolls the excess into a final "Others"
// entry, the shape pie views want.
func TopKWithOthers(totals map[string]decimal.Decimal, k int) []RankedEntry {
	entries := rankAll(totals)
	if len(entries) <= k {
		return entries
	}

	kept := make([]RankedEntry, k, k+1)
	copy(kept, entries[:k])

	rest := decimal.Zero
	restPct := 0.0
	for _, e := range entries[k:] {
		rest = rest.Add(e.Value)
		restPct += e.Percentage
	}
	return append(kept, RankedEntry{Label: "Others", Value: rest, Percentage: restPct})
}

func rankAll(totals map[string]decimal.Decimal) []RankedEntry {
	sum := decimal.Zero
	for _, v := range totals {
		sum = sum.Add(v)
	}

	entries := make([]RankedEntry, 0, len(totals))
	for label, value := range totals {
		pct := 0.0
		if sum.IsPositive() {
			pct, _ = value.Div(sum).Mul(decimal.NewFromInt(100)).Float64()
		}
		entries = append(entries, RankedEntry{Label: label, Value: value, Percentage: pct})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Value.Equal(entries[j].Value) {
			return entries[i].Value.GreaterThan(entries[j].Value)
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

func topEntry(totals map[string]decimal.Decimal) *RankedEntry {
	ranked := TopK(totals, 1)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

func topDateEntry(daily map[string]decimal.Decimal) *RankedEntry {
	filtered := make(map[string]decimal.Decimal, len(daily))
	for key, value := range daily {
		if key == UnknownBucket {
			continue
		}
		filtered[key] = value
	}
	return topEntry(filtered)
}

func inScope(groupID, scope string) bool {
	switch scope {
	case "", ScopeAll:
		return true
	case ScopePersonal:
		return groupID == ""
	default:
		return groupID == scope
	}
}

// inWindow applies the trailing time window. A zero date means the record's
// date could not be parsed; such records cannot be excluded by a window we
// cannot evaluate, so they stay in scope and land in the Unknown bucket.
func inWindow(date time.Time, timeRange TimeRange, now time.Time) bool {
	if date.IsZero() {
		return true
	}
	var days int
	switch timeRange {
	case TimeRange30D:
		days = 30
	case TimeRange90D:
		days = 90
	default:
		return true
	}
	return !date.Before(now.AddDate(0, 0, -days))
}

func bucketKeys(date time.Time) (string, string) {
	if date.IsZero() {
		return UnknownBucket, UnknownBucket
	}
	return date.Format("2006-01-02"), date.Format("2006-01")
}

func groupLabel(groupID string, names map[string]string) string {
	if groupID == "" {
		return "Personal"
	}
	if name, ok := names[groupID]; ok && name != "" {
		return name
	}
	return "Unnamed Group"
}

func payerLabel(userID string, names map[string]string) string {
	if userID == "" {
		return "Unknown user"
	}
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	// reference data may not have loaded; fall back to a truncated id
	if len(userID) > 4 {
		return "User " + userID[:4]
	}
	return "User " + userID
}

// scopeMembers is the participant universe used for per-member averages:
// the group's member list when scoped to one group, otherwise every known
// user.
func scopeMembers(scope string, groupMembers map[string][]string, users []ledger.User) map[string]struct{} {
	members := make(map[string]struct{})
	switch scope {
	case "", ScopeAll, ScopePersonal:
		for _, u := range users {
			members[u.ID] = struct{}{}
		}
	default:
		for _, id := range groupMembers[scope] {
			members[id] = struct{}{}
		}
	}
	return members
}

func addTo(totals map[string]decimal.Decimal, counts map[string]int, label string, amount decimal.Decimal) {
	totals[label] = total(totals, label).Add(amount)
	counts[label]++
}

func total(totals map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := totals[key]; ok {
		return v
	}
	return decimal.Zero
}
