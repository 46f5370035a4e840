package grading

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/llm"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
)

// Score thresholds.
const (
	CorrectThreshold       = 80.0
	PartialCreditThreshold = 70.0
	NeutralScore           = 50.0
)

// Short-answer scoring weights presented to the model.
const (
	keywordPoints  = 40
	semanticPoints = 40
	clarityPoints  = 20
)

// ErrUnsupportedQuestionType is the one grading failure that propagates as a
// hard error; everything else degrades to a neutral attempt.
type ErrUnsupportedQuestionType struct {
	Type string
}

func (e ErrUnsupportedQuestionType) Error() string {
	return fmt.Sprintf("unsupported question type: %q", e.Type)
}

// Request carries one answer to grade.
type Request struct {
	SessionId       string
	QuestionId      uuid.UUID
	UserAnswer      string
	QuestionType    string
	CorrectAnswer   string
	CorrectKeywords []string
}

// Grader produces ScoringAttempts for all three question types.
type Grader struct {
	client      *llm.Client
	explanation *ExplanationGenerator
	logger      logger.ILogger
	now         func() time.Time
}

func NewGrader(client *llm.Client, log logger.ILogger) *Grader {
	return &Grader{
		client:      client,
		explanation: NewExplanationGenerator(client),
		logger:      log,
		now:         time.Now,
	}
}

// Grade scores one answer. MC/TF answers are matched exactly (case-insensitive);
// short answers go through the model with independent keyword auditing.
func (g *Grader) Grade(ctx context.Context, req Request) (store.ScoringAttempt, error) {
	switch req.QuestionType {
	case store.TypeMultipleChoice, store.TypeTrueFalse:
		return g.gradeExact(ctx, req), nil
	case store.TypeShortAnswer:
		return g.gradeShortAnswer(ctx, req), nil
	default:
		return store.ScoringAttempt{}, ErrUnsupportedQuestionType{Type: req.QuestionType}
	}
}

// NeutralAttempt is the substitute when an individual grading fails inside a
// batch; the batch itself never fails.
func (g *Grader) NeutralAttempt(req Request) store.ScoringAttempt {
	return store.ScoringAttempt{
		SessionId:   req.SessionId,
		QuestionId:  req.QuestionId,
		IsCorrect:   false,
		Score:       NeutralScore,
		Explanation: genericExplanation(),
		Feedback:    "We could not grade this answer automatically. A neutral score was recorded.",
		GradedAt:    g.now(),
	}
}

func (g *Grader) gradeExact(ctx context.Context, req Request) store.ScoringAttempt {
	given := strings.ToLower(strings.TrimSpace(req.UserAnswer))
	expected := strings.ToLower(strings.TrimSpace(req.CorrectAnswer))
	correct := expected != "" && given == expected

	score := 0.0
	if correct {
		score = 100.0
	}

	explanation := g.explanation.Generate(ctx, ExplanationInput{
		QuestionType:  req.QuestionType,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
		IsCorrect:     correct,
	})

	return store.ScoringAttempt{
		SessionId:   req.SessionId,
		QuestionId:  req.QuestionId,
		IsCorrect:   correct,
		Score:       score,
		Explanation: explanation,
		GradedAt:    g.now(),
	}
}

func (g *Grader) gradeShortAnswer(ctx context.Context, req Request) store.ScoringAttempt {
	matches := MatchKeywords(req.UserAnswer, req.CorrectKeywords)

	score, err := g.modelScore(ctx, req, matches)
	if err != nil {
		g.logger.Warn("Grading", "Model scoring failed, applying neutral score", map[string]interface{}{
			"question_id": req.QuestionId,
			"error":       err.Error(),
		})
		score = NeutralScore
	}

	correct := score >= CorrectThreshold
	partial := !correct && score >= PartialCreditThreshold

	explanation := g.explanation.Generate(ctx, ExplanationInput{
		QuestionType:    req.QuestionType,
		UserAnswer:      req.UserAnswer,
		CorrectKeywords: req.CorrectKeywords,
		KeywordMatches:  matches,
		IsCorrect:       correct,
	})

	feedback := ""
	if partial {
		feedback = fmt.Sprintf(
			"Close! You covered %d of %d key concepts. Review the missing ones and you'll have it.",
			len(matches), len(req.CorrectKeywords),
		)
	}

	return store.ScoringAttempt{
		SessionId:      req.SessionId,
		QuestionId:     req.QuestionId,
		IsCorrect:      correct,
		Score:          score,
		Explanation:    explanation,
		KeywordMatches: matches,
		Feedback:       feedback,
		GradedAt:       g.now(),
	}
}

// modelScore asks the model for a 0-100 score over the documented rubric.
func (g *Grader) modelScore(ctx context.Context, req Request, matches []string) (float64, error) {
	prompt := composeScoringPrompt(req, matches)

	response, err := g.client.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return 0, fmt.Errorf("scoring call failed: %w", err)
	}

	score, err := parseNumericScore(response)
	if err != nil {
		return 0, fmt.Errorf("score parse failed: %w", err)
	}
	return score, nil
}

func composeScoringPrompt(req Request, matches []string) string {
	var prompt strings.Builder

	prompt.WriteString("You are grading a free-text answer to a test question.\n\n")

	prompt.WriteString("<answer>\n")
	prompt.WriteString(req.UserAnswer)
	prompt.WriteString("\n</answer>\n\n")

	prompt.WriteString("<expected_keywords>\n")
	prompt.WriteString(strings.Join(req.CorrectKeywords, ", "))
	prompt.WriteString("\n</expected_keywords>\n\n")

	prompt.WriteString(fmt.Sprintf("Keyword matches already detected: %s\n\n", strings.Join(matches, ", ")))

	prompt.WriteString("<rubric>\n")
	prompt.WriteString(fmt.Sprintf("- Keyword presence: up to %d points\n", keywordPoints))
	prompt.WriteString(fmt.Sprintf("- Semantic correctness: up to %d points\n", semanticPoints))
	prompt.WriteString(fmt.Sprintf("- Clarity: up to %d points\n", clarityPoints))
	prompt.WriteString("</rubric>\n\n")

	prompt.WriteString("Respond with ONLY the total score as an integer between 0 and 100.\n")

	return prompt.String()
}

func parseNumericScore(response string) (float64, error) {
	for _, field := range strings.Fields(strings.TrimSpace(response)) {
		field = strings.Trim(field, ".,;:%")
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			if v < 0 {
				v = 0
			}
			if v > 100 {
				v = 100
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("no numeric score in response")
}
