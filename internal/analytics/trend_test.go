package analytics_test

import (
	"strings"

	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/splitmate/splitmate/internal/analytics"
)

func series(values ...float64) []analytics.TrendPoint {
	points := make([]analytics.TrendPoint, len(values))
	for i, v := range values {
		points[i] = analytics.TrendPoint{Value: v}
	}
	return points
}

var _ = Describe("TrendSeries", func() {
	state := analytics.State{
		DailyTotals: map[string]decimal.Decimal{
			"2024-01-03":             decimal.NewFromInt(30),
			"2024-01-01":             decimal.NewFromInt(10),
			"2024-01-02":             decimal.NewFromInt(20),
			analytics.UnknownBucket:  decimal.NewFromInt(99),
		},
		MonthlyTotals: map[string]decimal.Decimal{
			"2023-12": decimal.NewFromInt(100),
			"2024-01": decimal.NewFromInt(60),
		},
	}

	It("sorts keys ascending and drops the Unknown bucket", func() {
		points := state.TrendSeries(analytics.TrendBucketDaily, 0)

		Expect(points).To(HaveLen(3))
		Expect(points[0].Key).To(Equal("2024-01-01"))
		Expect(points[2].Key).To(Equal("2024-01-03"))
		Expect(points[0].Label).To(Equal("Jan 1"))
	})

	It("keeps only the trailing limit points", func() {
		points := state.TrendSeries(analytics.TrendBucketDaily, 2)

		Expect(points).To(HaveLen(2))
		Expect(points[0].Key).To(Equal("2024-01-02"))
	})

	It("labels monthly buckets by month name", func() {
		points := state.TrendSeries(analytics.TrendBucketMonthly, 0)

		Expect(points).To(HaveLen(2))
		Expect(points[0].Label).To(Equal("Dec"))
		Expect(points[1].Label).To(Equal("Jan"))
	})
})

var _ = Describe("Smooth", func() {
	It("averages each point with its neighbors", func() {
		smoothed := analytics.Smooth(series(0, 30, 0, 30))

		Expect(smoothed[1].Value).To(BeNumerically("~", 10.0, 1e-9))
		Expect(smoothed[2].Value).To(BeNumerically("~", 20.0, 1e-9))
	})

	It("clamps the edges to themselves", func() {
		smoothed := analytics.Smooth(series(30, 0, 0, 30))

		// first point averages itself twice with its single neighbor
		Expect(smoothed[0].Value).To(BeNumerically("~", 20.0, 1e-9))
		Expect(smoothed[3].Value).To(BeNumerically("~", 20.0, 1e-9))
	})

	It("keeps the series length", func() {
		Expect(analytics.Smooth(series(1, 2, 3, 4, 5))).To(HaveLen(5))
	})

	It("clamps a two-point series with the same formula", func() {
		smoothed := analytics.Smooth(series(6, 12))

		Expect(smoothed[0].Value).To(BeNumerically("~", 8.0, 1e-9))
		Expect(smoothed[1].Value).To(BeNumerically("~", 10.0, 1e-9))
	})

	It("returns empty and single-point series untouched", func() {
		Expect(analytics.Smooth(nil)).To(BeEmpty())

		smoothed := analytics.Smooth(series(5))
		Expect(smoothed[0].Value).To(Equal(5.0))
	})
})

var _ = Describe("LinePoints", func() {
	It("spaces x linearly and inverts y", func() {
		points := analytics.LinePoints(series(0, 50, 100), 200, 100)

		Expect(points).To(HaveLen(3))
		Expect(points[0].X).To(Equal(0.0))
		Expect(points[1].X).To(Equal(100.0))
		Expect(points[2].X).To(Equal(200.0))
		Expect(points[0].Y).To(Equal(100.0))
		Expect(points[1].Y).To(Equal(50.0))
		Expect(points[2].Y).To(Equal(0.0))
	})

	It("draws an all-zero series as a flat floor instead of dividing by zero", func() {
		points := analytics.LinePoints(series(0, 0, 0), 200, 100)

		for _, p := range points {
			Expect(p.Y).To(Equal(100.0))
		}
	})

	It("handles a single point without spreading x", func() {
		points := analytics.LinePoints(series(10), 200, 100)

		Expect(points).To(HaveLen(1))
		Expect(points[0].X).To(Equal(0.0))
	})
})

var _ = Describe("SmoothPath", func() {
	It("starts with a move to the first point", func() {
		path := analytics.SmoothPath([]analytics.LinePoint{{X: 0, Y: 80}, {X: 100, Y: 20}})

		Expect(strings.HasPrefix(path, "M 0.00 80.00")).To(BeTrue())
		Expect(path).To(ContainSubstring("C 50.00 80.00, 50.00 20.00, 100.00 20.00"))
	})

	It("returns an empty path for no points", func() {
		Expect(analytics.SmoothPath(nil)).To(Equal(""))
	})
})

var _ = Describe("PieSlices", func() {
	entry := func(label string, value int64) analytics.RankedEntry {
		return analytics.RankedEntry{Label: label, Value: decimal.NewFromInt(value)}
	}

	It("starts at twelve o'clock and sweeps clockwise", func() {
		slices := analytics.PieSlices([]analytics.RankedEntry{
			entry("Food", 75),
			entry("Travel", 25),
		})

		Expect(slices).To(HaveLen(2))
		Expect(slices[0].StartAngle).To(Equal(-90.0))
		Expect(slices[0].EndAngle).To(BeNumerically("~", 180.0, 1e-9))
		Expect(slices[1].EndAngle).To(BeNumerically("~", 270.0, 1e-9))
		Expect(slices[0].Percentage).To(BeNumerically("~", 75.0, 1e-9))
	})

	It("gives a lone entry the full circle", func() {
		slices := analytics.PieSlices([]analytics.RankedEntry{entry("Food", 10)})

		Expect(slices).To(HaveLen(1))
		Expect(slices[0].EndAngle - slices[0].StartAngle).To(BeNumerically("~", 360.0, 1e-9))
	})

	It("drops zero-value entries and empty input", func() {
		Expect(analytics.PieSlices(nil)).To(BeNil())
		slices := analytics.PieSlices([]analytics.RankedEntry{entry("Food", 10), entry("Empty", 0)})
		Expect(slices).To(HaveLen(1))
	})
})
