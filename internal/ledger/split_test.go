package ledger_test

import (
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/splitmate/splitmate/internal/ledger"
)

func dec(value int64) decimal.Decimal {
	return decimal.NewFromInt(value)
}

var _ = Describe("ShareOf", func() {
	Describe("EQUAL splits", func() {
		It("divides the amount evenly among members", func() {
			e := ledger.Expense{
				Amount:       dec(300),
				PaidBy:       "alice",
				SplitType:    ledger.SplitTypeEqual,
				SplitBetween: []string{"alice", "bob", "carol"},
			}

			Expect(ledger.ShareOf(e, "bob").Equal(dec(100))).To(BeTrue())
			Expect(ledger.ShareOf(e, "alice").Equal(dec(100))).To(BeTrue())
		})

		It("returns zero for a user outside the split", func() {
			e := ledger.Expense{
				Amount:       dec(100),
				PaidBy:       "alice",
				SplitType:    ledger.SplitTypeEqual,
				SplitBetween: []string{"bob", "carol"},
			}

			Expect(ledger.ShareOf(e, "alice").IsZero()).To(BeTrue())
			Expect(ledger.ShareOf(e, "dave").IsZero()).To(BeTrue())
		})

		It("returns zero for an empty participant set instead of dividing by zero", func() {
			e := ledger.Expense{
				Amount:       dec(100),
				PaidBy:       "alice",
				SplitType:    ledger.SplitTypeEqual,
				SplitBetween: []string{},
			}

			Expect(ledger.ShareOf(e, "alice").IsZero()).To(BeTrue())
			Expect(ledger.ShareOf(e, "bob").IsZero()).To(BeTrue())
		})

		It("reconstructs the amount when summing all member shares", func() {
			e := ledger.Expense{
				Amount:       dec(100),
				PaidBy:       "alice",
				SplitType:    ledger.SplitTypeEqual,
				SplitBetween: []string{"alice", "bob", "carol"},
			}

			sum := decimal.Zero
			for _, id := range e.SplitBetween {
				sum = sum.Add(ledger.ShareOf(e, id))
			}
			diff := sum.Sub(e.Amount).Abs()
			Expect(diff.LessThan(decimal.New(1, -10))).To(BeTrue())
		})
	})

	Describe("UNEQUAL splits", func() {
		e := ledger.Expense{
			Amount:    dec(150),
			PaidBy:    "alice",
			SplitType: ledger.SplitTypeUnequal,
			SplitDetails: []ledger.SplitDetail{
				{UserID: "bob", Amount: dec(90)},
				{UserID: "carol", Amount: dec(60)},
			},
		}

		It("returns the explicit share for a listed user", func() {
			Expect(ledger.ShareOf(e, "bob").Equal(dec(90))).To(BeTrue())
			Expect(ledger.ShareOf(e, "carol").Equal(dec(60))).To(BeTrue())
		})

		It("returns zero for a user with no split detail, even a SplitBetween member", func() {
			withStale := e
			withStale.SplitBetween = []string{"alice", "bob", "carol", "dave"}
			Expect(ledger.ShareOf(withStale, "dave").IsZero()).To(BeTrue())
			Expect(ledger.ShareOf(withStale, "alice").IsZero()).To(BeTrue())
		})

		It("does not normalize shares against the expense total", func() {
			mismatched := ledger.Expense{
				Amount:    dec(500),
				PaidBy:    "alice",
				SplitType: ledger.SplitTypeUnequal,
				SplitDetails: []ledger.SplitDetail{
					{UserID: "bob", Amount: dec(10)},
				},
			}
			Expect(ledger.ShareOf(mismatched, "bob").Equal(dec(10))).To(BeTrue())
		})
	})
})

var _ = Describe("Participants", func() {
	It("uses SplitBetween for EQUAL expenses", func() {
		e := ledger.Expense{
			SplitType:    ledger.SplitTypeEqual,
			SplitBetween: []string{"alice", "bob"},
			SplitDetails: []ledger.SplitDetail{{UserID: "carol", Amount: dec(5)}},
		}
		Expect(ledger.Participants(e)).To(ConsistOf("alice", "bob"))
		Expect(ledger.IsParticipant(e, "carol")).To(BeFalse())
	})

	It("uses SplitDetails for UNEQUAL expenses", func() {
		e := ledger.Expense{
			SplitType:    ledger.SplitTypeUnequal,
			SplitBetween: []string{"alice", "bob"},
			SplitDetails: []ledger.SplitDetail{{UserID: "carol", Amount: dec(5)}},
		}
		Expect(ledger.Participants(e)).To(ConsistOf("carol"))
		Expect(ledger.IsParticipant(e, "alice")).To(BeFalse())
		Expect(ledger.IsParticipant(e, "carol")).To(BeTrue())
	})
})
