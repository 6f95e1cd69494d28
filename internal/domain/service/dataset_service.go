package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/sampler"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/useCases"
)

// SnapshotService owns the current dataset for the session. Rebuild
// constructs a complete new dataset (sample, then aggregate) and swaps
// it in atomically; readers only ever observe a finished snapshot.
// Returned snapshots are shared and must be treated as read-only.
type SnapshotService struct {
	mu       sync.RWMutex
	current  *model.Dataset
	hotspots []model.HotspotRegion
}

// NewSnapshotService creates a service over the given hotspot table.
// No dataset exists until the first Rebuild.
func NewSnapshotService(hotspots []model.HotspotRegion) *SnapshotService {
	return &SnapshotService{hotspots: hotspots}
}

// Rebuild generates count records from seed, aggregates them and
// swaps the result in as the current dataset. Seed 0 means a
// time-derived seed; the effective seed is recorded on the dataset.
func (s *SnapshotService) Rebuild(ctx context.Context, seed int64, count int) (*model.Dataset, error) {
	if count < 0 {
		return nil, fmt.Errorf("record count must be non-negative, got %d", count)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	smp := sampler.New(seed, s.hotspots)
	records := smp.Generate(count)
	stats := Aggregate(records)

	dataset := &model.Dataset{
		Seed:        smp.Seed(),
		GeneratedAt: time.Now().UTC(),
		Hotspots:    s.hotspots,
		Records:     records,
		Stats:       stats,
	}

	s.mu.Lock()
	s.current = dataset
	s.mu.Unlock()

	return dataset, nil
}

// GetDataset returns the current snapshot, or an error before the
// first Rebuild has completed.
func (s *SnapshotService) GetDataset(ctx context.Context) (*model.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, fmt.Errorf("no dataset generated yet")
	}
	return s.current, nil
}

func (s *SnapshotService) GetStatistics(ctx context.Context) (*model.AggregateStats, error) {
	dataset, err := s.GetDataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Stats, nil
}

func (s *SnapshotService) GetRecords(ctx context.Context) ([]model.DeathRecord, error) {
	dataset, err := s.GetDataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Records, nil
}

// GetHotspots returns the static hotspot table. Available before the
// first Rebuild since the table is fixed at construction.
func (s *SnapshotService) GetHotspots(ctx context.Context) ([]model.HotspotRegion, error) {
	return s.hotspots, nil
}

// Ensure interface compliance
var _ useCases.DeathStatsService = (*SnapshotService)(nil)
