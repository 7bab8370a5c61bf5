package dashboard

import (
	"sort"

	"linklens/internal/model"
)

// OthersLabel is the reserved label of the synthetic overflow slice. It is
// excluded from drill-down interactions by the presentation layer.
const OthersLabel = "Others"

// DefaultTopK is the number of named slices kept before folding the
// remainder into Others.
const DefaultTopK = 10

// Palette is the fixed chart color sequence. Colors are assigned by cycling
// this palette by slice position, not by hashing content, so re-renders of
// the same ordered category set stay visually stable.
var Palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ColorAt returns the palette color for a slice position.
func ColorAt(i int) string {
	return Palette[i%len(Palette)]
}

// BuildDestinationDistribution totals aggregate counts per destination,
// keeps the topK largest, folds the rest into one Others slice, and computes
// each slice's share of the grand total as a percentage.
//
// Each record contributes its full count to every destination it lists: a
// source that sent 150 hits across /a and /b adds 150 to both. When a source
// lists several destinations the slice totals therefore exceed the sum of
// source counts. That mirrors the collector's "influenced" attribution and
// is preserved deliberately; do not normalize it here without a product
// decision.
//
// Ordering is descending by count with ties broken by label ascending. A
// zero grand total (or no destinations at all) yields an empty result, never
// slices with NaN percentages.
func BuildDestinationDistribution(aggregates []model.AggregateRecord, topK int) []CategorySlice {
	totals := make(map[string]int64)
	for _, rec := range aggregates {
		for _, dest := range rec.Destinations {
			totals[dest] += rec.Count
		}
	}
	return BuildCountDistribution(totals, topK)
}

// BuildSourceSeries orders the aggregate records themselves descending by
// count, ties broken by source label ascending, with no overflow bucket: all
// sources are shown. The unique-client counts ride along in the same order
// as a companion series.
func BuildSourceSeries(aggregates []model.AggregateRecord) []BarPoint {
	points := make([]BarPoint, 0, len(aggregates))
	for _, rec := range aggregates {
		points = append(points, BarPoint{
			Label:         rec.DisplaySource(),
			Count:         rec.Count,
			UniqueClients: rec.UniqueClientCount,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Count != points[j].Count {
			return points[i].Count > points[j].Count
		}
		return points[i].Label < points[j].Label
	})
	return points
}

// BuildCountDistribution builds a top-K distribution from summed label
// counts: descending by count (label-ascending ties), topK named slices,
// remainder folded into Others, shares of the grand total. It also backs the
// views (per-country events) that are counted rather than fanned out.
func BuildCountDistribution(totals map[string]int64, topK int) []CategorySlice {
	if topK < 1 {
		topK = DefaultTopK
	}

	var grandTotal int64
	labels := make([]string, 0, len(totals))
	for label, count := range totals {
		labels = append(labels, label)
		grandTotal += count
	}
	if grandTotal == 0 {
		return []CategorySlice{}
	}

	sort.Slice(labels, func(i, j int) bool {
		if totals[labels[i]] != totals[labels[j]] {
			return totals[labels[i]] > totals[labels[j]]
		}
		return labels[i] < labels[j]
	})

	slices := make([]CategorySlice, 0, topK+1)
	for i, label := range labels {
		if i < topK {
			slices = append(slices, CategorySlice{Label: label, RawCount: totals[label]})
			continue
		}
		if i == topK {
			slices = append(slices, CategorySlice{Label: OthersLabel, IsOverflow: true})
		}
		slices[topK].RawCount += totals[label]
	}

	for i := range slices {
		slices[i].SharePercent = 100 * float64(slices[i].RawCount) / float64(grandTotal)
	}
	return slices
}
