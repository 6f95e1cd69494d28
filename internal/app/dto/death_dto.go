package dto

import (
	"time"

	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
)

// RecordDTO is the wire form of a death record.
type RecordDTO struct {
	ID          string    `json:"id"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Timestamp   time.Time `json:"timestamp"`
	PlayerLevel int       `json:"player_level"`
	CombatLevel int       `json:"combat_level"`
	WealthLost  int64     `json:"wealth_lost"`
	HourOfDay   int       `json:"hour_of_day"`
	DayOfWeek   int       `json:"day_of_week"`
	Hotspot     string    `json:"hotspot"`
}

// FromRecord creates a RecordDTO from a domain record.
func FromRecord(rec model.DeathRecord) RecordDTO {
	return RecordDTO{
		ID:          rec.ID,
		X:           rec.X,
		Y:           rec.Y,
		Timestamp:   rec.Timestamp,
		PlayerLevel: rec.PlayerLevel,
		CombatLevel: rec.CombatLevel,
		WealthLost:  rec.WealthLost,
		HourOfDay:   rec.HourOfDay,
		DayOfWeek:   rec.DayOfWeek,
		Hotspot:     rec.Hotspot,
	}
}

// FromRecords converts a record slice preserving order.
func FromRecords(records []model.DeathRecord) []RecordDTO {
	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = FromRecord(rec)
	}
	return dtos
}

// HotspotDTO is the wire form of a hotspot region.
type HotspotDTO struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Density float64 `json:"density"`
}

func FromHotspots(hotspots []model.HotspotRegion) []HotspotDTO {
	dtos := make([]HotspotDTO, len(hotspots))
	for i, h := range hotspots {
		dtos[i] = HotspotDTO{Name: h.Name, X: h.X, Y: h.Y, Radius: h.Radius, Density: h.Density}
	}
	return dtos
}

// LabelCountDTO is one entry of the ranked hotspot list.
type LabelCountDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WealthBucketDTO is one bar of the wealth histogram.
type WealthBucketDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatsDTO is the wire form of the aggregate statistics.
type StatsDTO struct {
	TotalDeaths       int               `json:"total_deaths"`
	TotalWealthLost   int64             `json:"total_wealth_lost"`
	AvgWealthLost     float64           `json:"avg_wealth_lost"`
	AvgPlayerLevel    float64           `json:"avg_player_level"`
	AvgCombatLevel    float64           `json:"avg_combat_level"`
	HourDistribution  []int             `json:"hour_distribution"`
	DayDistribution   []int             `json:"day_distribution"`
	MonthDistribution []int             `json:"month_distribution"`
	TopHotspots       []LabelCountDTO   `json:"top_hotspots"`
	WealthRanges      []WealthBucketDTO `json:"wealth_ranges"`
}

// FromStats creates a StatsDTO from the domain statistics.
func FromStats(stats *model.AggregateStats) *StatsDTO {
	out := &StatsDTO{
		TotalDeaths:       stats.TotalDeaths,
		TotalWealthLost:   stats.TotalWealthLost,
		AvgWealthLost:     stats.AvgWealthLost,
		AvgPlayerLevel:    stats.AvgPlayerLevel,
		AvgCombatLevel:    stats.AvgCombatLevel,
		HourDistribution:  append([]int(nil), stats.HourDistribution[:]...),
		DayDistribution:   append([]int(nil), stats.DayDistribution[:]...),
		MonthDistribution: append([]int(nil), stats.MonthDistribution[:]...),
		TopHotspots:       make([]LabelCountDTO, len(stats.TopHotspots)),
		WealthRanges:      make([]WealthBucketDTO, len(stats.WealthRanges)),
	}
	for i, lc := range stats.TopHotspots {
		out.TopHotspots[i] = LabelCountDTO{Label: lc.Label, Count: lc.Count}
	}
	for i, wb := range stats.WealthRanges {
		out.WealthRanges[i] = WealthBucketDTO{Label: wb.Label, Count: wb.Count}
	}
	return out
}

// DatasetDTO is the wire form of a full dataset for point plotting.
type DatasetDTO struct {
	Seed        int64       `json:"seed"`
	GeneratedAt time.Time   `json:"generated_at"`
	PlaneSize   float64     `json:"plane_size"`
	Records     []RecordDTO `json:"records"`
}

func FromDataset(dataset *model.Dataset) *DatasetDTO {
	return &DatasetDTO{
		Seed:        dataset.Seed,
		GeneratedAt: dataset.GeneratedAt,
		PlaneSize:   model.PlaneSize,
		Records:     FromRecords(dataset.Records),
	}
}

// RebuildRequest asks the rebuild processor for a fresh dataset.
// Reply, when non-nil, receives exactly one result.
type RebuildRequest struct {
	Seed  int64
	Count int
	Reply chan RebuildResult
}

// RebuildResult carries the outcome of a rebuild back to the caller.
type RebuildResult struct {
	Dataset *model.Dataset
	Err     error
}
