package events

import "time"

// Event type codes published on the bus.
const (
	TypeRoundGenerated    = "ROUND_GENERATED"
	TypeAnswerScored      = "ANSWER_SCORED"
	TypeRetryQueueDrained = "RETRY_QUEUE_DRAINED"
)

func NewRoundGenerated(sessionId, roundId string, itemCount, attempt int) Event {
	return BaseEvent{
		Type: TypeRoundGenerated,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"round_id":   roundId,
			"item_count": itemCount,
			"attempt":    attempt,
		},
		OccurredAt: time.Now(),
	}
}

func NewAnswerScored(sessionId, questionId string, score float64, isCorrect bool) Event {
	return BaseEvent{
		Type: TypeAnswerScored,
		Data: map[string]interface{}{
			"session_id":  sessionId,
			"question_id": questionId,
			"score":       score,
			"is_correct":  isCorrect,
		},
		OccurredAt: time.Now(),
	}
}

func NewRetryQueueDrained(replayed, succeeded, remaining int) Event {
	return BaseEvent{
		Type: TypeRetryQueueDrained,
		Data: map[string]interface{}{
			"replayed":  replayed,
			"succeeded": succeeded,
			"remaining": remaining,
		},
		OccurredAt: time.Now(),
	}
}
