package ledger_test

import (
	"time"

	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/splitmate/splitmate/internal/ledger"
)

func day(offset int) time.Time {
	return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

var _ = Describe("ImpactOf", func() {
	Context("equal split with the payer included", func() {
		e := ledger.Expense{
			ID:           "e1",
			Amount:       dec(300),
			PaidBy:       "A",
			SplitType:    ledger.SplitTypeEqual,
			SplitBetween: []string{"A", "B", "C"},
		}

		It("credits the payer with everyone else's share", func() {
			impact := ledger.ImpactOf(e, "A")
			Expect(impact.Pay.IsZero()).To(BeTrue())
			Expect(impact.Get.Equal(dec(200))).To(BeTrue())
		})

		It("charges each non-payer participant their share", func() {
			for _, viewer := range []string{"B", "C"} {
				impact := ledger.ImpactOf(e, viewer)
				Expect(impact.Pay.Equal(dec(100))).To(BeTrue())
				Expect(impact.Get.IsZero()).To(BeTrue())
			}
		})

		It("leaves an unrelated viewer untouched", func() {
			impact := ledger.ImpactOf(e, "D")
			Expect(impact.Pay.IsZero()).To(BeTrue())
			Expect(impact.Get.IsZero()).To(BeTrue())
		})
	})

	Context("equal split with the payer excluded", func() {
		e := ledger.Expense{
			ID:           "e2",
			Amount:       dec(100),
			PaidBy:       "A",
			SplitType:    ledger.SplitTypeEqual,
			SplitBetween: []string{"B", "C"},
		}

		It("credits the payer with the full amount", func() {
			impact := ledger.ImpactOf(e, "A")
			Expect(impact.Get.Equal(dec(100))).To(BeTrue())
			Expect(impact.Pay.IsZero()).To(BeTrue())
		})

		It("charges each participant half", func() {
			impact := ledger.ImpactOf(e, "B")
			Expect(impact.Pay.Equal(dec(50))).To(BeTrue())
			Expect(impact.Get.IsZero()).To(BeTrue())
		})
	})

	Context("unequal split", func() {
		e := ledger.Expense{
			ID:        "e3",
			Amount:    dec(150),
			PaidBy:    "A",
			SplitType: ledger.SplitTypeUnequal,
			SplitDetails: []ledger.SplitDetail{
				{UserID: "B", Amount: dec(90)},
				{UserID: "C", Amount: dec(60)},
			},
		}

		It("credits the payer with the sum of others' explicit shares", func() {
			Expect(ledger.ImpactOf(e, "A").Get.Equal(dec(150))).To(BeTrue())
		})

		It("charges listed users exactly their detail amount", func() {
			Expect(ledger.ImpactOf(e, "B").Pay.Equal(dec(90))).To(BeTrue())
			Expect(ledger.ImpactOf(e, "C").Pay.Equal(dec(60))).To(BeTrue())
		})

		It("excludes the payer's own detail entry from what they get", func() {
			withOwn := e
			withOwn.SplitDetails = append([]ledger.SplitDetail{
				{UserID: "A", Amount: dec(50)},
			}, e.SplitDetails...)
			Expect(ledger.ImpactOf(withOwn, "A").Get.Equal(dec(150))).To(BeTrue())
		})
	})

	Context("degenerate records", func() {
		It("contributes nothing for an EQUAL expense with no participants", func() {
			e := ledger.Expense{
				ID:           "e4",
				Amount:       dec(80),
				PaidBy:       "A",
				SplitType:    ledger.SplitTypeEqual,
				SplitBetween: []string{},
			}
			for _, viewer := range []string{"A", "B"} {
				impact := ledger.ImpactOf(e, viewer)
				Expect(impact.Pay.IsZero()).To(BeTrue())
				Expect(impact.Get.IsZero()).To(BeTrue())
			}
		})

		It("treats a missing amount as zero", func() {
			e := ledger.Expense{
				ID:           "e5",
				PaidBy:       "A",
				SplitType:    ledger.SplitTypeEqual,
				SplitBetween: []string{"A", "B"},
			}
			Expect(ledger.ImpactOf(e, "B").Pay.IsZero()).To(BeTrue())
		})
	})

	It("matches pay and get across the two sides of a single edge", func() {
		e := ledger.Expense{
			ID:           "e6",
			Amount:       dec(120),
			PaidBy:       "A",
			SplitType:    ledger.SplitTypeEqual,
			SplitBetween: []string{"A", "B"},
		}
		Expect(ledger.ImpactOf(e, "A").Get.Equal(ledger.ImpactOf(e, "B").Pay)).To(BeTrue())
	})
})

var _ = Describe("GlobalSummary", func() {
	expenses := []ledger.Expense{
		{
			ID: "e1", Amount: dec(300), PaidBy: "A", Date: day(0),
			SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B", "C"},
		},
		{
			ID: "e2", Amount: dec(90), PaidBy: "B", Date: day(1),
			SplitType: ledger.SplitTypeUnequal,
			SplitDetails: []ledger.SplitDetail{
				{UserID: "A", Amount: dec(40)},
				{UserID: "C", Amount: dec(50)},
			},
		},
		{
			ID: "e3", Amount: dec(60), PaidBy: "A", Date: day(2),
			SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"B"},
		},
	}

	It("aggregates pay, get, gross outlay and count for the viewer", func() {
		summary := ledger.GlobalSummary(expenses, "A")
		Expect(summary.OwesYou.Equal(dec(260))).To(BeTrue())
		Expect(summary.YouOwe.Equal(dec(40))).To(BeTrue())
		Expect(summary.TotalSpent.Equal(dec(360))).To(BeTrue())
		Expect(summary.TransactionCount).To(Equal(3))
	})

	It("conserves money across every participant of a closed set", func() {
		total := decimal.Zero
		for _, viewer := range []string{"A", "B", "C"} {
			summary := ledger.GlobalSummary(expenses, viewer)
			total = total.Add(summary.OwesYou).Sub(summary.YouOwe)
		}
		Expect(total.Abs().LessThan(decimal.New(1, -10))).To(BeTrue())
	})
})

var _ = Describe("PairwiseBalance", func() {
	It("nets shared expenses between the pair", func() {
		expenses := []ledger.Expense{
			{
				ID: "e1", Amount: dec(300), PaidBy: "A", Date: day(0),
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B", "C"},
			},
			{
				ID: "e2", Amount: dec(40), PaidBy: "B", Date: day(1),
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
			},
		}

		balance := ledger.PairwiseBalance(expenses, nil, "A", "B")
		Expect(balance.Equal(dec(80))).To(BeTrue())

		mirrored := ledger.PairwiseBalance(expenses, nil, "B", "A")
		Expect(mirrored.Equal(dec(-80))).To(BeTrue())
	})

	It("zeroes out after an exact settlement", func() {
		expenses := []ledger.Expense{
			{
				ID: "e1", Amount: dec(400), PaidBy: "A", Date: day(0),
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
			},
		}
		settlements := []ledger.Settlement{
			{ID: "s1", FromUserID: "B", ToUserID: "A", Amount: dec(200), SettledAt: day(1)},
		}

		Expect(ledger.PairwiseBalance(expenses, settlements, "A", "B").IsZero()).To(BeTrue())
		Expect(ledger.PairwiseBalance(expenses, settlements, "B", "A").IsZero()).To(BeTrue())
	})

	It("reduces the balance magnitude by exactly the settled amount", func() {
		expenses := []ledger.Expense{
			{
				ID: "e1", Amount: dec(400), PaidBy: "A", Date: day(0),
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
			},
		}
		settlements := []ledger.Settlement{
			{ID: "s1", FromUserID: "B", ToUserID: "A", Amount: dec(150), SettledAt: day(1)},
		}

		balance := ledger.PairwiseBalance(expenses, settlements, "A", "B")
		Expect(balance.Equal(dec(50))).To(BeTrue())
	})

	It("flips the sign when the settlement exceeds the outstanding balance", func() {
		expenses := []ledger.Expense{
			{
				ID: "e1", Amount: dec(400), PaidBy: "A", Date: day(0),
				SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
			},
		}
		settlements := []ledger.Settlement{
			{ID: "s1", FromUserID: "B", ToUserID: "A", Amount: dec(300), SettledAt: day(1)},
		}

		balance := ledger.PairwiseBalance(expenses, settlements, "A", "B")
		Expect(balance.Equal(dec(-100))).To(BeTrue())
	})

	It("counts settlements between users who share no expense", func() {
		settlements := []ledger.Settlement{
			{ID: "s1", FromUserID: "A", ToUserID: "B", Amount: dec(75), SettledAt: day(0)},
		}
		Expect(ledger.PairwiseBalance(nil, settlements, "A", "B").Equal(dec(75))).To(BeTrue())
	})
})

var _ = Describe("PairwiseLedger", func() {
	expenses := []ledger.Expense{
		{
			ID: "e1", Title: "Dinner", Amount: dec(200), PaidBy: "A", Date: day(0),
			Category: "Food", SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
		},
		{
			ID: "e2", Title: "Cab", Amount: dec(60), PaidBy: "B", Date: day(2),
			Category: "Travel", SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
		},
		{
			ID: "unrelated", Title: "Solo", Amount: dec(10), PaidBy: "C", Date: day(3),
			SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"C"},
		},
	}
	settlements := []ledger.Settlement{
		{ID: "s1", FromUserID: "B", ToUserID: "A", Amount: dec(70), SettledAt: day(4), Note: "upi"},
		{ID: "ignored", FromUserID: "C", ToUserID: "A", Amount: dec(10), SettledAt: day(5)},
	}

	It("orders events newest-first with a running balance accumulated oldest-first", func() {
		events := ledger.PairwiseLedger(expenses, settlements, "A", "B")
		Expect(events).To(HaveLen(3))

		Expect(events[0].Kind).To(Equal(ledger.EventKindSettlement))
		Expect(events[0].Amount.Equal(dec(-70))).To(BeTrue())
		Expect(events[0].RunningBalance.IsZero()).To(BeTrue())

		Expect(events[1].Title).To(Equal("Cab"))
		Expect(events[1].Amount.Equal(dec(-30))).To(BeTrue())
		Expect(events[1].RunningBalance.Equal(dec(70))).To(BeTrue())

		Expect(events[2].Title).To(Equal("Dinner"))
		Expect(events[2].Amount.Equal(dec(100))).To(BeTrue())
		Expect(events[2].RunningBalance.Equal(dec(100))).To(BeTrue())
	})

	It("agrees with PairwiseBalance on the newest running balance", func() {
		events := ledger.PairwiseLedger(expenses, settlements, "A", "B")
		balance := ledger.PairwiseBalance(expenses, settlements, "A", "B")
		Expect(events[0].RunningBalance.Equal(balance)).To(BeTrue())
	})

	It("excludes expenses and settlements not involving the pair", func() {
		events := ledger.PairwiseLedger(expenses, settlements, "A", "B")
		for _, event := range events {
			Expect(event.ID).NotTo(ContainSubstring("unrelated"))
			Expect(event.ID).NotTo(ContainSubstring("ignored"))
		}
	})
})

var _ = Describe("GroupBalances", func() {
	expenses := []ledger.Expense{
		{
			ID: "e1", Amount: dec(300), PaidBy: "A", GroupID: "trip", Date: day(0),
			SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B", "C"},
		},
		{
			ID: "e2", Amount: dec(90), PaidBy: "B", GroupID: "trip", Date: day(1),
			SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B", "C"},
		},
		{
			ID: "e3", Amount: dec(50), PaidBy: "B", GroupID: "flat", Date: day(2),
			SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
		},
		{
			ID: "e4", Amount: dec(40), PaidBy: "A", Date: day(3),
			SplitType: ledger.SplitTypeEqual, SplitBetween: []string{"A", "B"},
		},
	}

	It("restricts aggregation to each group's expenses", func() {
		balances := ledger.GroupBalances(expenses, nil, []string{"trip", "flat"}, "A")

		trip := balances["trip"]
		Expect(trip.Get.Equal(dec(200))).To(BeTrue())
		Expect(trip.Pay.Equal(dec(30))).To(BeTrue())
		Expect(trip.Net.Equal(dec(170))).To(BeTrue())

		flat := balances["flat"]
		Expect(flat.Get.IsZero()).To(BeTrue())
		Expect(flat.Pay.Equal(dec(25))).To(BeTrue())
	})

	It("nets group-scoped settlements only", func() {
		settlements := []ledger.Settlement{
			{ID: "s1", FromUserID: "B", ToUserID: "A", Amount: dec(100), GroupID: "trip", SettledAt: day(4)},
			{ID: "s2", FromUserID: "B", ToUserID: "A", Amount: dec(25), SettledAt: day(5)},
		}
		balances := ledger.GroupBalances(expenses, settlements, []string{"trip"}, "A")

		trip := balances["trip"]
		Expect(trip.SettledNet.Equal(dec(-100))).To(BeTrue())
		Expect(trip.Net.Equal(dec(70))).To(BeTrue())
	})
})

var _ = Describe("DiffSnapshots", func() {
	It("returns expenses absent from the previous snapshot", func() {
		previous := ledger.ExpenseIDSet([]ledger.Expense{{ID: "e1"}, {ID: "e2"}})
		current := []ledger.Expense{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}, {ID: "e4"}}

		added := ledger.DiffSnapshots(previous, current)
		Expect(added).To(HaveLen(2))
		Expect(added[0].ID).To(Equal("e3"))
		Expect(added[1].ID).To(Equal("e4"))
	})

	It("treats a nil previous set as everything new", func() {
		added := ledger.DiffSnapshots(nil, []ledger.Expense{{ID: "e1"}})
		Expect(added).To(HaveLen(1))
	})

	It("returns nothing when snapshots match", func() {
		current := []ledger.Expense{{ID: "e1"}}
		Expect(ledger.DiffSnapshots(ledger.ExpenseIDSet(current), current)).To(BeEmpty())
	})
})
