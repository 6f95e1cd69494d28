package model

import "time"

// PlaneSize is the side length of the square reference plane. All
// positions and hotspot geometry are expressed in this coordinate
// space regardless of how large the dashboard actually renders.
const PlaneSize = 800.0

// UnassignedLabel marks records placed uniformly on the plane instead
// of inside a hotspot disc.
const UnassignedLabel = "Random"

// HotspotRegion is a named circular danger zone on the reference
// plane. Density is kept from the source data for display but is not
// used to bias hotspot selection; see the sampler package.
type HotspotRegion struct {
	Name    string
	X       float64
	Y       float64
	Radius  float64
	Density float64
}

// DeathRecord is one synthetic player death. Immutable once created.
// HourOfDay and DayOfWeek are independent draws, not derived from
// Timestamp.
type DeathRecord struct {
	ID          string
	X           float64
	Y           float64
	Timestamp   time.Time
	PlayerLevel int
	CombatLevel int
	WealthLost  int64
	HourOfDay   int
	DayOfWeek   int
	Hotspot     string
}

// LabelCount pairs a hotspot label with its death count.
type LabelCount struct {
	Label string
	Count int
}

// WealthBucket is one bar of the fixed wealth-lost histogram.
type WealthBucket struct {
	Label string
	Count int
}

// AggregateStats holds every derived number the dashboard displays.
// Recomputed wholesale from the full record collection, never patched
// incrementally. Averages are 0 when TotalDeaths is 0.
type AggregateStats struct {
	TotalDeaths     int
	TotalWealthLost int64
	AvgWealthLost   float64
	AvgPlayerLevel  float64
	AvgCombatLevel  float64

	HourDistribution  [24]int
	DayDistribution   [7]int
	MonthDistribution [12]int

	TopHotspots  []LabelCount
	WealthRanges []WealthBucket
}

// Dataset is one complete generation result: the records, their
// aggregate statistics and the hotspot table they were sampled from.
// A Dataset is immutable after construction; regeneration produces a
// new Dataset rather than mutating the current one.
type Dataset struct {
	Seed        int64
	GeneratedAt time.Time
	Hotspots    []HotspotRegion
	Records     []DeathRecord
	Stats       *AggregateStats
}
