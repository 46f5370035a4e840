package service

import (
	"context"
	"fmt"
	"time"

	"adaptive-assessment-be/internal/dto"
	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/internal/repository/memory"
	"adaptive-assessment-be/internal/repository/specification"
	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/pkg/agent"
	"adaptive-assessment-be/pkg/events"
	"adaptive-assessment-be/pkg/grading"
	pktNats "adaptive-assessment-be/pkg/nats"
	"adaptive-assessment-be/pkg/orchestrator"
	"adaptive-assessment-be/pkg/persistence"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

// Starting difficulty per self-assessed level.
const (
	beginnerDifficulty     = 3.0
	intermediateDifficulty = 5.0
	advancedDifficulty     = 7.0
)

// Difficulty adaptation bounds: strong rounds step up, weak rounds step down.
const (
	stepUpScore    = 80.0
	stepDownScore  = 50.0
	difficultyStep = 1.0
)

type IAssessmentService interface {
	StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	GenerateRound(ctx context.Context, sessionId string, req *dto.GenerateRoundRequest) (*dto.GenerateRoundResponse, error)
	ScoreAnswer(ctx context.Context, req *dto.ScoreAnswerRequest) (*dto.ScoreAnswerResponse, error)
	ScoreBatch(ctx context.Context, req *dto.BatchScoreRequest) (*dto.BatchScoreResponse, error)
}

type assessmentService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         *memory.SessionRepository
	generator        *orchestrator.Orchestrator
	grader           *grading.Grader
	batchScorer      *grading.BatchScorer
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
	itemsPerRound    int
	timeLimitSeconds int
}

func NewAssessmentService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	generator *orchestrator.Orchestrator,
	grader *grading.Grader,
	batchScorer *grading.BatchScorer,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	itemsPerRound int,
	timeLimitSeconds int,
) IAssessmentService {
	return &assessmentService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		generator:        generator,
		grader:           grader,
		batchScorer:      batchScorer,
		eventPublisher:   eventPublisher,
		logger:           log,
		itemsPerRound:    itemsPerRound,
		timeLimitSeconds: timeLimitSeconds,
	}
}

func (s *assessmentService) StartSession(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	difficulty := beginnerDifficulty

	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.LearnerProfileRepository().FindByLearnerId(ctx, req.LearnerId)
	if err != nil {
		s.logger.Warn("Assessment", "Profile lookup failed while starting session", map[string]interface{}{
			"learner_id": req.LearnerId,
			"error":      err.Error(),
		})
	}
	if profile != nil {
		switch profile.Level {
		case "intermediate":
			difficulty = intermediateDifficulty
		case "advanced":
			difficulty = advancedDifficulty
		}
	}

	session := &store.AssessmentSession{
		Id:                uuid.NewString(),
		LearnerId:         req.LearnerId,
		CurrentRound:      1,
		CurrentDifficulty: difficulty,
		TimeLimitSeconds:  s.timeLimitSeconds,
		StartedAt:         time.Now(),
	}
	s.sessions.Save(session)

	return &dto.StartSessionResponse{
		SessionId:        session.Id,
		CurrentRound:     session.CurrentRound,
		Difficulty:       session.CurrentDifficulty,
		TimeLimitSeconds: session.TimeLimitSeconds,
		StartedAt:        session.StartedAt,
	}, nil
}

func (s *assessmentService) GenerateRound(ctx context.Context, sessionId string, req *dto.GenerateRoundRequest) (*dto.GenerateRoundResponse, error) {
	session, found := s.sessions.Get(sessionId)
	if !found {
		return nil, fmt.Errorf("session not found: %s", sessionId)
	}

	itemCount := req.ItemCount
	if itemCount <= 0 {
		itemCount = s.itemsPerRound
	}

	roundId := persistence.FormatRoundId(session.Id, session.CurrentRound, time.Now())

	result, err := s.generator.GenerateRound(ctx, agent.GenerateRequest{
		LearnerId: req.LearnerId.String(),
		SessionId: session.Id,
		RoundId:   roundId,
		ItemCount: itemCount,
	})
	if err != nil {
		return nil, err
	}

	round := session.CurrentRound
	s.advanceSession(ctx, session)

	if s.eventPublisher != nil {
		evt := events.NewRoundGenerated(session.Id, roundId, len(result.Items), result.Attempt)
		if pubErr := s.eventPublisher.Publish(ctx, evt); pubErr != nil {
			s.logger.Warn("Assessment", "Failed to publish round event", map[string]interface{}{
				"round_id": roundId,
				"error":    pubErr.Error(),
			})
		}
	}

	return &dto.GenerateRoundResponse{
		SessionId:        session.Id,
		RoundId:          roundId,
		Round:            round,
		Attempt:          result.Attempt,
		Items:            result.Items,
		TimeLimitSeconds: session.TimeLimitSeconds,
	}, nil
}

// advanceSession bumps the round counter and adapts difficulty from the
// session's running average: strong sessions climb, weak ones descend.
func (s *assessmentService) advanceSession(ctx context.Context, session *store.AssessmentSession) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	avg, ok, err := uow.ScoringAttemptRepository().AverageScoreBySession(ctx, session.Id)
	if err != nil {
		s.logger.Warn("Assessment", "Average score lookup failed, keeping difficulty", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	} else if ok {
		switch {
		case avg >= stepUpScore:
			session.CurrentDifficulty += difficultyStep
		case avg < stepDownScore:
			session.CurrentDifficulty -= difficultyStep
		}
		if session.CurrentDifficulty > store.DifficultyMax {
			session.CurrentDifficulty = store.DifficultyMax
		}
		if session.CurrentDifficulty < store.DifficultyMin {
			session.CurrentDifficulty = store.DifficultyMin
		}
	}

	session.CurrentRound++
	s.sessions.Save(session)
}

func (s *assessmentService) ScoreAnswer(ctx context.Context, req *dto.ScoreAnswerRequest) (*dto.ScoreAnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: req.QuestionId})
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("question not found: %s", req.QuestionId)
	}

	gradeReq := grading.Request{
		SessionId:       req.SessionId,
		QuestionId:      question.Id,
		UserAnswer:      req.UserAnswer,
		QuestionType:    question.Type,
		CorrectAnswer:   question.AnswerSchema.CorrectAnswer,
		CorrectKeywords: question.AnswerSchema.CorrectKeywords,
	}

	attempt, err := s.grader.Grade(ctx, gradeReq)
	if err != nil {
		return nil, err
	}

	record := toAttemptEntity(attempt, req.UserAnswer, req.ResponseTimeMs)
	if err := uow.ScoringAttemptRepository().Create(ctx, record); err != nil {
		s.logger.Error("Assessment", "Failed to persist scoring attempt", map[string]interface{}{
			"question_id": req.QuestionId,
			"error":       err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewAnswerScored(req.SessionId, req.QuestionId.String(), attempt.Score, attempt.IsCorrect)
		if pubErr := s.eventPublisher.Publish(ctx, evt); pubErr != nil {
			s.logger.Warn("Assessment", "Failed to publish score event", map[string]interface{}{
				"question_id": req.QuestionId,
				"error":       pubErr.Error(),
			})
		}
	}

	return toScoreResponse(attempt), nil
}

func (s *assessmentService) ScoreBatch(ctx context.Context, req *dto.BatchScoreRequest) (*dto.BatchScoreResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	items := make([]grading.BatchItem, 0, len(req.Answers))
	for _, answer := range req.Answers {
		question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: answer.QuestionId})
		if err != nil {
			return nil, err
		}

		gradeReq := grading.Request{
			SessionId:    req.SessionId,
			QuestionId:   answer.QuestionId,
			UserAnswer:   answer.UserAnswer,
			QuestionType: store.TypeShortAnswer,
		}
		if question != nil {
			gradeReq.QuestionType = question.Type
			gradeReq.CorrectAnswer = question.AnswerSchema.CorrectAnswer
			gradeReq.CorrectKeywords = question.AnswerSchema.CorrectKeywords
		}

		items = append(items, grading.BatchItem{
			Request:        gradeReq,
			ResponseTimeMs: float64(answer.ResponseTimeMs),
		})
	}

	result := s.batchScorer.GradeAll(ctx, items)

	records := make([]*entity.ScoringAttempt, len(result.Attempts))
	responses := make([]dto.ScoreAnswerResponse, len(result.Attempts))
	for i, attempt := range result.Attempts {
		records[i] = toAttemptEntity(attempt, req.Answers[i].UserAnswer, req.Answers[i].ResponseTimeMs)
		responses[i] = *toScoreResponse(attempt)
	}
	if err := uow.ScoringAttemptRepository().CreateBulk(ctx, records); err != nil {
		s.logger.Error("Assessment", "Failed to persist batch attempts", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
	}

	return &dto.BatchScoreResponse{
		SessionId: req.SessionId,
		Results:   responses,
		Summary: dto.BatchScoreSummary{
			AverageScore:          result.AverageScore,
			CorrectCount:          result.CorrectCount,
			TotalCount:            len(result.Attempts),
			AverageResponseTimeMs: int64(result.AverageResponseMs),
		},
	}, nil
}

func toAttemptEntity(attempt store.ScoringAttempt, userAnswer string, responseTimeMs int64) *entity.ScoringAttempt {
	return &entity.ScoringAttempt{
		Id:             uuid.New(),
		SessionId:      attempt.SessionId,
		QuestionId:     attempt.QuestionId,
		UserAnswer:     userAnswer,
		IsCorrect:      attempt.IsCorrect,
		Score:          attempt.Score,
		Explanation:    attempt.Explanation,
		KeywordMatches: attempt.KeywordMatches,
		Feedback:       attempt.Feedback,
		ResponseTimeMs: responseTimeMs,
		GradedAt:       attempt.GradedAt,
		CreatedAt:      time.Now(),
	}
}

func toScoreResponse(attempt store.ScoringAttempt) *dto.ScoreAnswerResponse {
	return &dto.ScoreAnswerResponse{
		QuestionId:     attempt.QuestionId,
		IsCorrect:      attempt.IsCorrect,
		Score:          attempt.Score,
		Explanation:    attempt.Explanation,
		KeywordMatches: attempt.KeywordMatches,
		Feedback:       attempt.Feedback,
		GradedAt:       attempt.GradedAt,
	}
}
