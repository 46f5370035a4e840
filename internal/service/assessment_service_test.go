package service

import (
	"context"
	"testing"
	"time"

	"adaptive-assessment-be/internal/dto"
	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/internal/repository/contract"
	"adaptive-assessment-be/internal/repository/memory"
	"adaptive-assessment-be/internal/repository/specification"
	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/pkg/agent"
	"adaptive-assessment-be/pkg/orchestrator"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfileRepo struct {
	profile *entity.LearnerProfile
}

func (r *stubProfileRepo) Create(context.Context, *entity.LearnerProfile) error { return nil }
func (r *stubProfileRepo) Update(context.Context, *entity.LearnerProfile) error { return nil }
func (r *stubProfileRepo) FindByLearnerId(context.Context, uuid.UUID) (*entity.LearnerProfile, error) {
	return r.profile, nil
}
func (r *stubProfileRepo) FindOne(context.Context, ...specification.Specification) (*entity.LearnerProfile, error) {
	return r.profile, nil
}

type stubAttemptRepo struct {
	average    float64
	hasAverage bool
}

func (r *stubAttemptRepo) Create(context.Context, *entity.ScoringAttempt) error       { return nil }
func (r *stubAttemptRepo) CreateBulk(context.Context, []*entity.ScoringAttempt) error { return nil }
func (r *stubAttemptRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ScoringAttempt, error) {
	return nil, nil
}
func (r *stubAttemptRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *stubAttemptRepo) AverageScoreBySession(context.Context, string) (float64, bool, error) {
	return r.average, r.hasAverage, nil
}

type stubUnitOfWork struct {
	profiles *stubProfileRepo
	attempts *stubAttemptRepo
}

func (u *stubUnitOfWork) Begin(context.Context) error { return nil }
func (u *stubUnitOfWork) Commit() error               { return nil }
func (u *stubUnitOfWork) Rollback() error             { return nil }
func (u *stubUnitOfWork) QuestionRepository() contract.QuestionRepository {
	return nil
}
func (u *stubUnitOfWork) QuestionEmbeddingRepository() contract.QuestionEmbeddingRepository {
	return nil
}
func (u *stubUnitOfWork) LearnerProfileRepository() contract.LearnerProfileRepository {
	return u.profiles
}
func (u *stubUnitOfWork) ScoringAttemptRepository() contract.ScoringAttemptRepository {
	return u.attempts
}

type stubFactory struct {
	uow *stubUnitOfWork
}

func (f *stubFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type fixedRunner struct {
	items []store.GeneratedItem
}

func (r *fixedRunner) Generate(context.Context, agent.GenerateRequest) (*agent.GenerateOutcome, error) {
	return &agent.GenerateOutcome{
		Outcome: agent.Outcome{Termination: agent.ReasonFinalAnswer, Iterations: 1},
		Items:   r.items,
	}, nil
}

func newTestAssessmentService(attempts *stubAttemptRepo, items []store.GeneratedItem) (IAssessmentService, *memory.SessionRepository) {
	uow := &stubUnitOfWork{profiles: &stubProfileRepo{}, attempts: attempts}
	sessions := memory.NewSessionRepository()
	generator := orchestrator.NewOrchestrator(&fixedRunner{items: items}, logger.NewNopLogger(), 1, time.Millisecond)

	svc := NewAssessmentService(
		&stubFactory{uow: uow},
		sessions,
		generator,
		nil, nil, nil,
		logger.NewNopLogger(),
		5,
		600,
	)
	return svc, sessions
}

func TestGenerateRoundCarriesSessionTimeLimit(t *testing.T) {
	item := store.GeneratedItem{
		Type: store.TypeTrueFalse,
		Stem: "A mutex guarantees mutual exclusion.",
		AnswerSchema: store.AnswerSchema{
			CorrectAnswer: "true",
		},
	}
	svc, _ := newTestAssessmentService(&stubAttemptRepo{}, []store.GeneratedItem{item})

	started, err := svc.StartSession(context.Background(), &dto.StartSessionRequest{LearnerId: uuid.New()})
	require.NoError(t, err)
	require.Equal(t, 600, started.TimeLimitSeconds)

	res, err := svc.GenerateRound(context.Background(), started.SessionId, &dto.GenerateRoundRequest{
		LearnerId: uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, 600, res.TimeLimitSeconds)
	assert.Equal(t, started.SessionId, res.SessionId)
	assert.Equal(t, 1, res.Round)
	require.Len(t, res.Items, 1)
}

func TestGenerateRoundAdaptsDifficultyFromSessionAverage(t *testing.T) {
	cases := []struct {
		name    string
		average float64
		want    float64
	}{
		{"strong session steps up", 85, 4.0},
		{"middling session holds", 65, 3.0},
		{"weak session steps down", 40, 2.0},
	}
	item := store.GeneratedItem{
		Type: store.TypeTrueFalse,
		Stem: "A mutex guarantees mutual exclusion.",
		AnswerSchema: store.AnswerSchema{
			CorrectAnswer: "true",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, sessions := newTestAssessmentService(
				&stubAttemptRepo{average: tc.average, hasAverage: true},
				[]store.GeneratedItem{item})

			started, err := svc.StartSession(context.Background(), &dto.StartSessionRequest{LearnerId: uuid.New()})
			require.NoError(t, err)
			require.Equal(t, 3.0, started.Difficulty)

			_, err = svc.GenerateRound(context.Background(), started.SessionId, &dto.GenerateRoundRequest{
				LearnerId: uuid.New(),
			})
			require.NoError(t, err)

			session, found := sessions.Get(started.SessionId)
			require.True(t, found)
			assert.Equal(t, tc.want, session.CurrentDifficulty)
			assert.Equal(t, 2, session.CurrentRound)
		})
	}
}
