package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"adaptive-assessment-be/internal/entity"
	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/pkg/database"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.QuestionRepository())
	assert.NotNil(t, uow.LearnerProfileRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Question Repository", func(t *testing.T) {
		count, err := uow.QuestionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Question count: %d", count)
	})

	t.Run("Check Question Embedding Repository", func(t *testing.T) {
		// Count implies the table and vector column exist
		count, err := uow.QuestionEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("QuestionEmbedding count: %d", count)
	})

	t.Run("Check Transactional Question Scoring", func(t *testing.T) {
		sessionId := "integration-" + uuid.New().String()

		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		questionId := uuid.New()
		question := &entity.Question{
			Id:        questionId,
			SessionId: sessionId,
			Round:     1,
			RoundId:   sessionId + "_1_2025-01-01T00:00:00Z",
			Type:      store.TypeTrueFalse,
			Stem:      "A transaction either commits fully or not at all.",
			AnswerSchema: store.AnswerSchema{
				Type:          store.TypeTrueFalse,
				CorrectAnswer: "true",
			},
			Difficulty:      3,
			Category:        store.CategoryTechnical,
			ValidationScore: 0.9,
		}

		err = uow.QuestionRepository().Create(ctx, question)
		assert.NoError(t, err)

		attempt := &entity.ScoringAttempt{
			Id:         uuid.New(),
			SessionId:  sessionId,
			QuestionId: questionId,
			UserAnswer: "true",
			IsCorrect:  true,
			Score:      100,
		}

		err = uow.ScoringAttemptRepository().Create(ctx, attempt)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Question with ScoringAttempt in Transaction")
	})
}
