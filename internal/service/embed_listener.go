package service

import (
	"context"
	"encoding/json"

	"adaptive-assessment-be/internal/dto"
	"adaptive-assessment-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// EmbedListener forwards a persisted question onto the embedding topic.
// Publishing is best effort; a lost message only delays template freshness.
type EmbedListener struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewEmbedListener(publisher IPublisherService, log logger.ILogger) *EmbedListener {
	return &EmbedListener{
		publisher: publisher,
		logger:    log,
	}
}

func (l *EmbedListener) QuestionPersisted(ctx context.Context, questionId uuid.UUID) {
	payload, err := json.Marshal(dto.PublishEmbedQuestionMessage{QuestionId: questionId})
	if err != nil {
		return
	}
	if err := l.publisher.Publish(ctx, payload); err != nil {
		l.logger.Warn("EmbedListener", "Failed to enqueue question for embedding", map[string]interface{}{
			"question_id": questionId,
			"error":       err.Error(),
		})
	}
}
