package service

import (
	"context"
	"encoding/json"
	"strings"

	"adaptive-assessment-be/internal/dto"
	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/internal/repository/specification"
	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds persisted questions asynchronously so the template
// search index catches up without blocking the generation loop.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedQuestionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal embed message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages never become valid; ack to stop redelivery
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: payload.QuestionId})
	if err != nil {
		cs.logger.Error("Consumer", "Failed to load question for embedding", map[string]interface{}{
			"question_id": payload.QuestionId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if question == nil {
		cs.logger.Warn("Consumer", "Question vanished before embedding", map[string]interface{}{
			"question_id": payload.QuestionId,
		})
		msg.Ack()
		return
	}

	document := buildEmbeddingDocument(question)

	resp, err := cs.embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
	if err != nil {
		cs.logger.Error("Consumer", "Embedding generation failed", map[string]interface{}{
			"question_id": payload.QuestionId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	// Replace any stale embedding before inserting the fresh one.
	if err := uow.QuestionEmbeddingRepository().DeleteByQuestionId(ctx, question.Id); err != nil {
		cs.logger.Warn("Consumer", "Failed to clear stale embedding", map[string]interface{}{
			"question_id": question.Id,
			"error":       err.Error(),
		})
	}

	embeddingEntity := entity.QuestionEmbedding{
		Id:             uuid.New(),
		Document:       document,
		EmbeddingValue: resp.Embedding.Values,
		QuestionId:     question.Id,
	}
	if err := uow.QuestionEmbeddingRepository().Create(ctx, &embeddingEntity); err != nil {
		cs.logger.Error("Consumer", "Failed to store question embedding", map[string]interface{}{
			"question_id": question.Id,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Debug("Consumer", "Question embedded", map[string]interface{}{
		"question_id": question.Id,
	})
	msg.Ack()
}

// buildEmbeddingDocument flattens the searchable parts of a question into one
// retrieval document.
func buildEmbeddingDocument(q *entity.Question) string {
	var sb strings.Builder
	sb.WriteString(q.Stem)
	if len(q.Choices) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(q.Choices, "\n"))
	}
	sb.WriteString("\ncategory: ")
	sb.WriteString(q.Category)
	return sb.String()
}
