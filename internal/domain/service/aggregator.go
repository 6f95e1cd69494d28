// Package service provides implementations of domain services that
// implement core business logic. This package depends only on domain
// models and the sampler (not on handlers or infrastructure).
package service

import (
	"sort"

	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
)

// Wealth histogram upper bounds, inclusive. The last bucket is
// open-ended: a record with WealthLost of exactly 10_000 lands in
// "0-10K", 10_001 in "10K-100K".
var wealthBounds = [...]int64{10_000, 100_000, 1_000_000, 10_000_000}

// WealthRangeLabels names the five wealth histogram buckets in order.
var WealthRangeLabels = [...]string{"0-10K", "10K-100K", "100K-1M", "1M-10M", "10M+"}

// topHotspotLimit caps the ranked hotspot list shown on the dashboard.
const topHotspotLimit = 5

// Aggregate recomputes the full statistics object from the record
// collection. It is a pure function: accumulation is sequential in
// input order, so equal inputs always produce equal output. An empty
// input yields zeroed counts and distributions with averages of 0,
// never NaN. Field values outside their documented ranges are a
// caller precondition violation.
func Aggregate(records []model.DeathRecord) *model.AggregateStats {
	stats := &model.AggregateStats{
		TopHotspots:  []model.LabelCount{},
		WealthRanges: make([]model.WealthBucket, len(WealthRangeLabels)),
	}
	for i, label := range WealthRangeLabels {
		stats.WealthRanges[i].Label = label
	}

	labelCounts := make(map[string]int)
	firstSeen := make(map[string]int)
	var playerLevelSum, combatLevelSum int64

	for _, rec := range records {
		stats.TotalDeaths++
		stats.TotalWealthLost += rec.WealthLost
		playerLevelSum += int64(rec.PlayerLevel)
		combatLevelSum += int64(rec.CombatLevel)

		stats.HourDistribution[rec.HourOfDay]++
		stats.DayDistribution[rec.DayOfWeek]++
		stats.MonthDistribution[int(rec.Timestamp.Month())-1]++
		stats.WealthRanges[wealthBucketIndex(rec.WealthLost)].Count++

		if _, seen := labelCounts[rec.Hotspot]; !seen {
			firstSeen[rec.Hotspot] = len(firstSeen)
		}
		labelCounts[rec.Hotspot]++
	}

	if stats.TotalDeaths > 0 {
		n := float64(stats.TotalDeaths)
		stats.AvgWealthLost = float64(stats.TotalWealthLost) / n
		stats.AvgPlayerLevel = float64(playerLevelSum) / n
		stats.AvgCombatLevel = float64(combatLevelSum) / n
	}

	stats.TopHotspots = rankHotspots(labelCounts, firstSeen)
	return stats
}

// rankHotspots orders labels by descending count, truncated to the
// top five. Ties keep the order in which each label was first seen
// while scanning the records.
func rankHotspots(counts map[string]int, firstSeen map[string]int) []model.LabelCount {
	ranked := make([]model.LabelCount, len(counts))
	for label, idx := range firstSeen {
		ranked[idx] = model.LabelCount{Label: label, Count: counts[label]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topHotspotLimit {
		ranked = ranked[:topHotspotLimit]
	}
	return ranked
}

func wealthBucketIndex(wealth int64) int {
	for i, bound := range wealthBounds {
		if wealth <= bound {
			return i
		}
	}
	return len(wealthBounds)
}
