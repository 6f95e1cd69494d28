package useCases

import (
	"context"
	"net/http"

	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
)

// DeathStatsService defines the read and rebuild surface the handlers
// consume. Everything returned is an immutable snapshot.
type DeathStatsService interface {
	GetDataset(ctx context.Context) (*model.Dataset, error)
	GetStatistics(ctx context.Context) (*model.AggregateStats, error)
	GetRecords(ctx context.Context) ([]model.DeathRecord, error)
	GetHotspots(ctx context.Context) ([]model.HotspotRegion, error)
	Rebuild(ctx context.Context, seed int64, count int) (*model.Dataset, error)
}

// Broadcaster defines an interface for pushing statistics updates to
// WebSocket/API layers.
type Broadcaster interface {
	BroadcastStatistics(stats *model.AggregateStats)
	Handler() func(http.ResponseWriter, *http.Request)
}
