package app

import (
	"context"
	"log/slog"

	"github.com/hadefuwa/osrs-wilderness/config"
	"github.com/hadefuwa/osrs-wilderness/internal/app/dto"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/sampler"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/service"
	ws "github.com/hadefuwa/osrs-wilderness/internal/handlers/websocket"
)

// Processor defines the common interface for background processors.
type Processor interface {
	Run(ctx context.Context) error
}

// AppContext holds all app dependencies
type AppContext struct {
	Config           *config.Config
	Log              *slog.Logger
	StatsService     *service.SnapshotService
	Broadcaster      *ws.WebSocketBroadcaster
	RebuildProcessor Processor
	RebuildCh        chan *dto.RebuildRequest
}

// NewApp initializes the app context with all dependencies and builds
// the session dataset once up front. After this returns, every reader
// sees the same immutable records and statistics until an explicit
// rebuild is requested.
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*AppContext, error) {
	app := &AppContext{Config: cfg, Log: log}

	app.StatsService = service.NewSnapshotService(sampler.DefaultHotspots())

	dataset, err := app.StatsService.Rebuild(ctx, cfg.Seed, cfg.RecordCount)
	if err != nil {
		return nil, err
	}
	log.Info("dataset generated",
		slog.Int("records", len(dataset.Records)),
		slog.Int64("seed", dataset.Seed),
		slog.Int("hotspots", len(dataset.Hotspots)),
	)

	// New WebSocket clients get the current stats immediately on
	// connect; rebuilds push updates afterwards.
	app.Broadcaster = ws.NewWebSocketBroadcaster(func() *model.AggregateStats {
		stats, err := app.StatsService.GetStatistics(context.Background())
		if err != nil {
			return nil
		}
		return stats
	})

	app.RebuildCh = make(chan *dto.RebuildRequest, cfg.RebuildBufferSize)
	app.RebuildProcessor = NewRebuildProcessor(app.RebuildCh, app.StatsService, app.Broadcaster)
	log.Info("rebuild processor initialized")

	return app, nil
}

// Cleanup performs graceful shutdown of all components
func (a *AppContext) Cleanup(ctx context.Context) {
	if a.RebuildCh != nil {
		a.Log.Info("closing rebuild channel")
		close(a.RebuildCh)
	}
	a.Log.Info("all resources cleaned up")
}
