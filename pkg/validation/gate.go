package validation

import (
	"context"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/store"
)

// Recommendation thresholds on the combined score.
const (
	PassThreshold   = 0.85
	ReviseThreshold = 0.70
)

// MaxRegenerationAttempts bounds how often a rejected draft may be revised
// before the pipeline surfaces the degraded outcome.
const MaxRegenerationAttempts = 2

// Reviser produces a revised draft from a rejected one and its issues.
// Backed by the LLM in production, mocked in tests.
type Reviser interface {
	Revise(ctx context.Context, item store.DraftItem, issues []string) (store.DraftItem, error)
}

// Gate combines the deterministic rule pass with the model-based semantic pass.
type Gate struct {
	scorer  *SemanticScorer
	reviser Reviser
	logger  logger.ILogger
}

func NewGate(scorer *SemanticScorer, reviser Reviser, log logger.ILogger) *Gate {
	return &Gate{
		scorer:  scorer,
		reviser: reviser,
		logger:  log,
	}
}

// Recommend maps a combined score onto the fixed recommendation bands.
func Recommend(combined float64) string {
	switch {
	case combined >= PassThreshold:
		return store.RecommendationPass
	case combined >= ReviseThreshold:
		return store.RecommendationRevise
	default:
		return store.RecommendationReject
	}
}

// Evaluate runs both validation stages on a single draft.
// combined = min(rule, semantic), always.
func (g *Gate) Evaluate(ctx context.Context, item store.DraftItem) store.ValidationOutcome {
	ruleScore, issues := RuleCheck(item)

	semanticScore, err := g.scorer.Score(ctx, item)
	if err != nil {
		g.logger.Warn("ValidationGate", "Semantic pass degraded to neutral score", map[string]interface{}{
			"error": err.Error(),
		})
		issues = append(issues, "semantic scoring unavailable, neutral score applied")
	}

	combined := ruleScore
	if semanticScore < combined {
		combined = semanticScore
	}

	return store.ValidationOutcome{
		SemanticScore:  semanticScore,
		RuleScore:      ruleScore,
		CombinedScore:  combined,
		Recommendation: Recommend(combined),
		Issues:         issues,
	}
}

// EvaluateBatch validates drafts independently; one outcome per draft.
// A mixed batch never fails as a whole.
func (g *Gate) EvaluateBatch(ctx context.Context, items []store.DraftItem) []store.ValidationOutcome {
	outcomes := make([]store.ValidationOutcome, len(items))
	for i, item := range items {
		outcomes[i] = g.Evaluate(ctx, item)
	}
	return outcomes
}

// EvaluateWithRepair evaluates the draft and, while it is rejected and
// attempts remain, asks the reviser for a replacement. The recursion is
// explicit: attemptsRemaining is the injected bound, so the two-regeneration
// rule is independently testable. Returns the last draft with its outcome,
// degraded or not.
func (g *Gate) EvaluateWithRepair(ctx context.Context, item store.DraftItem, attemptsRemaining int) (store.DraftItem, store.ValidationOutcome) {
	outcome := g.Evaluate(ctx, item)
	if outcome.Recommendation != store.RecommendationReject {
		return item, outcome
	}
	if attemptsRemaining <= 0 || g.reviser == nil {
		return item, outcome
	}

	revised, err := g.reviser.Revise(ctx, item, outcome.Issues)
	if err != nil {
		g.logger.Warn("ValidationGate", "Revision failed, surfacing rejected draft", map[string]interface{}{
			"error": err.Error(),
		})
		return item, outcome
	}

	return g.EvaluateWithRepair(ctx, revised, attemptsRemaining-1)
}
