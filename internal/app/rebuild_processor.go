package app

import (
	"context"
	"errors"
	"log"

	"github.com/hadefuwa/osrs-wilderness/internal/app/dto"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/useCases"
)

// ErrContextCancelled is returned when the context is cancelled during processing
var ErrContextCancelled = errors.New("context cancelled during processing")

// RebuildProcessor consumes dataset rebuild requests from a channel,
// regenerates the snapshot, and broadcasts the fresh statistics.
// Running rebuilds through a single goroutine serializes them, so two
// concurrent regenerate calls can never interleave a half-built
// dataset.
type RebuildProcessor struct {
	RebuildCh    chan *dto.RebuildRequest
	StatsService useCases.DeathStatsService
	Broadcaster  useCases.Broadcaster
}

func NewRebuildProcessor(rebuildCh chan *dto.RebuildRequest, statsService useCases.DeathStatsService, broadcaster useCases.Broadcaster) *RebuildProcessor {
	return &RebuildProcessor{
		RebuildCh:    rebuildCh,
		StatsService: statsService,
		Broadcaster:  broadcaster,
	}
}

func (p *RebuildProcessor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-p.RebuildCh:
			if !ok {
				return nil
			}
			if err := p.processRebuild(ctx, req); err != nil {
				if errors.Is(err, ErrContextCancelled) {
					log.Println("Context cancelled, stopping rebuild processor")
					return ctx.Err()
				}
				// Other errors are just logged but processing continues
				log.Printf("Error rebuilding dataset: %v", err)
			}
		}
	}
}

// processRebuild handles a single rebuild request with proper context
// cancellation checks.
func (p *RebuildProcessor) processRebuild(ctx context.Context, req *dto.RebuildRequest) error {
	if ctx.Err() != nil {
		return ErrContextCancelled
	}

	if req == nil {
		return nil
	}

	dataset, err := p.StatsService.Rebuild(ctx, req.Seed, req.Count)

	if req.Reply != nil {
		select {
		case req.Reply <- dto.RebuildResult{Dataset: dataset, Err: err}:
		default:
			// Caller went away; drop the reply rather than block.
		}
	}

	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		return ErrContextCancelled
	}

	// Push the fresh stats so every open dashboard redraws.
	p.Broadcaster.BroadcastStatistics(dataset.Stats)

	return nil
}
