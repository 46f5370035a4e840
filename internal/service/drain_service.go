package service

import (
	"context"
	"time"

	"adaptive-assessment-be/internal/dto"
	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/events"
	pktNats "adaptive-assessment-be/pkg/nats"
	"adaptive-assessment-be/pkg/persistence"
)

type IDrainService interface {
	// Run blocks, replaying the retry queue on every tick until ctx ends.
	Run(ctx context.Context) error
	// DrainNow replays the queue once on demand.
	DrainNow(ctx context.Context) *dto.DrainQueueResponse
}

type drainService struct {
	writer         *persistence.Writer
	interval       time.Duration
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewDrainService(writer *persistence.Writer, interval time.Duration, eventPublisher *pktNats.Publisher, log logger.ILogger) IDrainService {
	return &drainService{
		writer:         writer,
		interval:       interval,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (ds *drainService) Run(ctx context.Context) error {
	if ds.interval <= 0 {
		ds.logger.Info("Drain", "Periodic drain disabled", nil)
		return nil
	}

	ticker := time.NewTicker(ds.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ds.writer.Queue().Len() > 0 {
				ds.DrainNow(ctx)
			}
		}
	}
}

func (ds *drainService) DrainNow(ctx context.Context) *dto.DrainQueueResponse {
	result := ds.writer.DrainOnce(ctx)

	if result.Replayed > 0 && ds.eventPublisher != nil {
		evt := events.NewRetryQueueDrained(result.Replayed, result.Succeeded, result.Remaining)
		if err := ds.eventPublisher.Publish(ctx, evt); err != nil {
			ds.logger.Warn("Drain", "Failed to publish drain event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.DrainQueueResponse{
		Replayed:  result.Replayed,
		Succeeded: result.Succeeded,
		Remaining: result.Remaining,
	}
}
