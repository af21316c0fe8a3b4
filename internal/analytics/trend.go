package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// TrendPoint is one bucket of a chart series. Value is a float because this
// is the presentation boundary; ledger math stays decimal.
type TrendPoint struct {
	Key   string
	Label string
	Value float64
}

// LinePoint is a chart-space coordinate for one trend point.
type LinePoint struct {
	X float64
	Y float64
}

// PieSlice is one wedge of a pie chart, angles in degrees with 0 at the
// twelve o'clock position and sweep running clockwise.
type PieSlice struct {
	Label      string
	Value      float64
	Percentage float64
	StartAngle float64
	EndAngle   float64
}

// TrendBucket selects which bucketed series feeds the trend chart.
type TrendBucket string

const (
	TrendBucketDaily   TrendBucket = "daily"
	TrendBucketMonthly TrendBucket = "monthly"
)

// TrendSeries turns the state's bucketed totals into a chart series: keys
// sorted ascending, the Unknown bucket dropped, trimmed to the last limit
// points. Bucket keys sort lexicographically because they are ISO shaped.
func (s State) TrendSeries(bucket TrendBucket, limit int) []TrendPoint {
	totals := s.DailyTotals
	if bucket == TrendBucketMonthly {
		totals = s.MonthlyTotals
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		if key == UnknownBucket {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if limit > 0 && len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		value, _ := totals[key].Float64()
		points = append(points, TrendPoint{Key: key, Label: bucketLabel(bucket, key), Value: value})
	}
	return points
}

func bucketLabel(bucket TrendBucket, key string) string {
	layout := "2006-01-02"
	format := "Jan 2"
	if bucket == TrendBucketMonthly {
		layout = "2006-01"
		format = "Jan"
	}
	if t, err := time.Parse(layout, key); err == nil {
		return t.Format(format)
	}
	return key
}

// Smooth applies a 3-point moving average with edges clamped to themselves,
// so the series keeps its length and endpoints barely move. Only zero- and
// one-point series have nothing to average.
func Smooth(points []TrendPoint) []TrendPoint {
	if len(points) < 2 {
		out := make([]TrendPoint, len(points))
		copy(out, points)
		return out
	}

	out := make([]TrendPoint, len(points))
	for i, p := range points {
		prev := points[maxInt(i-1, 0)].Value
		next := points[minInt(i+1, len(points)-1)].Value
		p.Value = (prev + p.Value + next) / 3
		out[i] = p
	}
	return out
}

// LinePoints maps a series into a width-by-height chart box: x spaced
// linearly, y inverted so larger values sit higher. The scale denominator is
// clamped to one so an all-zero series draws a flat floor instead of
// dividing by zero.
func LinePoints(points []TrendPoint, width, height float64) []LinePoint {
	if len(points) == 0 {
		return nil
	}

	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	scale := math.Max(maxValue, 1)

	step := 0.0
	if len(points) > 1 {
		step = width / float64(len(points)-1)
	}

	out := make([]LinePoint, len(points))
	for i, p := range points {
		out[i] = LinePoint{
			X: float64(i) * step,
			Y: height - (p.Value/scale)*height,
		}
	}
	return out
}

// SmoothPath renders chart points as an SVG path using cubic segments whose
// control points sit at the horizontal midpoint of each pair, which gives
// the gentle S-curve look without overshooting the data.
func SmoothPath(points []LinePoint) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %.2f %.2f", points[0].X, points[0].Y)
	for i := 1; i < len(points); i++ {
		prev := points[i-1]
		curr := points[i]
		controlX := (prev.X + curr.X) / 2
		fmt.Fprintf(&b, " C %.2f %.2f, %.2f %.2f, %.2f %.2f",
			controlX, prev.Y, controlX, curr.Y, curr.X, curr.Y)
	}
	return b.String()
}

// PieSlices converts ranked entries into wedge angles. The first wedge
// starts at twelve o'clock and slices proceed clockwise; a lone entry gets
// the full circle. Entries with no value are dropped.
func PieSlices(entries []RankedEntry) []PieSlice {
	total := 0.0
	values := make([]float64, len(entries))
	for i, e := range entries {
		v, _ := e.Value.Float64()
		values[i] = v
		total += v
	}
	if total <= 0 {
		return nil
	}

	slices := make([]PieSlice, 0, len(entries))
	angle := -90.0
	for i, e := range entries {
		if values[i] <= 0 {
			continue
		}
		sweep := values[i] / total * 360
		slices = append(slices, PieSlice{
			Label:      e.Label,
			Value:      values[i],
			Percentage: values[i] / total * 100,
			StartAngle: angle,
			EndAngle:   angle + sweep,
		})
		angle += sweep
	}
	return slices
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
