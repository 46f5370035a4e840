package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/embedding"
	"adaptive-assessment-be/pkg/store"
)

const (
	templateToolName = "search_templates"
	templateTimeout  = 5 * time.Second
	templateLimit    = 10
)

// TemplateSource ranks prior persisted items against an interest embedding,
// filtered to a difficulty band and category.
type TemplateSource interface {
	SearchSimilar(ctx context.Context, vector []float32, minDifficulty, maxDifficulty float64, category string, limit int) ([]store.TemplateItem, error)
}

// TemplateTool surfaces up to ten prior items as few-shot drafting examples.
// Any failure is non-fatal: the loop proceeds without examples.
type TemplateTool struct {
	source   TemplateSource
	embedder embedding.EmbeddingProvider
	logger   logger.ILogger
}

func NewTemplateTool(source TemplateSource, embedder embedding.EmbeddingProvider, log logger.ILogger) *TemplateTool {
	return &TemplateTool{
		source:   source,
		embedder: embedder,
		logger:   log,
	}
}

type templateArgs struct {
	Interests  []string `json:"interests"`
	Difficulty float64  `json:"difficulty"`
	Category   string   `json:"category"`
}

func (t *TemplateTool) Name() string { return templateToolName }

func (t *TemplateTool) Description() string {
	return "Search previously generated questions matching the learner's interests for use as drafting examples."
}

func (t *TemplateTool) InputSchema() string {
	return `{"interests": ["..."], "difficulty": 1-10, "category": "technical|conceptual|applied"}`
}

func (t *TemplateTool) Timeout() time.Duration { return templateTimeout }

func (t *TemplateTool) Validate(args json.RawMessage) error {
	var a templateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if a.Difficulty < store.DifficultyMin || a.Difficulty > store.DifficultyMax {
		return fmt.Errorf("difficulty %.1f outside [%.0f, %.0f]", a.Difficulty, store.DifficultyMin, store.DifficultyMax)
	}
	if !store.ValidCategory(a.Category) {
		return fmt.Errorf("unknown category %q", a.Category)
	}
	return nil
}

func (t *TemplateTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var a templateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	items := t.Search(ctx, a.Interests, a.Difficulty, a.Category)

	out, err := json.Marshal(map[string]interface{}{
		"templates": items,
		"count":     len(items),
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Search embeds the interests and ranks prior items by vector similarity
// inside the widened difficulty band. Returns an empty list on any failure.
func (t *TemplateTool) Search(ctx context.Context, interests []string, difficulty float64, category string) []store.TemplateItem {
	query := strings.Join(interests, ", ")
	if strings.TrimSpace(query) == "" {
		query = category
	}

	res, err := t.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		t.logger.Warn("TemplateTool", "Interest embedding failed, proceeding without examples", map[string]interface{}{
			"error": err.Error(),
		})
		return []store.TemplateItem{}
	}

	minD := difficulty - store.TemplateSearchWidening
	maxD := difficulty + store.TemplateSearchWidening

	items, err := t.source.SearchSimilar(ctx, res.Embedding.Values, minD, maxD, category, templateLimit)
	if err != nil {
		t.logger.Warn("TemplateTool", "Template search failed, proceeding without examples", map[string]interface{}{
			"error": err.Error(),
		})
		return []store.TemplateItem{}
	}
	if items == nil {
		items = []store.TemplateItem{}
	}
	return items
}
