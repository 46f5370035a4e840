package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/store"

	gocache "github.com/patrickmn/go-cache"
)

const (
	keywordToolName = "lookup_keywords"
	keywordTimeout  = 2 * time.Second
	keywordCacheTTL = time.Hour
)

// KeywordSource builds a fresh bundle for a difficulty/category pair.
// The default implementation composes from the built-in concept tables.
type KeywordSource interface {
	Build(ctx context.Context, difficulty float64, category string) (*store.KeywordBundle, error)
}

// KeywordTool serves difficulty- and category-scoped keyword bundles.
// Bundles are cached by (difficulty band, category) and invalidated only by
// expiry; the cache is read-mostly, go-cache handles concurrent readers with
// a single-writer refresh on miss.
type KeywordTool struct {
	source KeywordSource
	cache  *gocache.Cache
	logger logger.ILogger
}

func NewKeywordTool(source KeywordSource, log logger.ILogger) *KeywordTool {
	if source == nil {
		source = StaticKeywordSource{}
	}
	return &KeywordTool{
		source: source,
		cache:  gocache.New(keywordCacheTTL, 10*time.Minute),
		logger: log,
	}
}

type keywordArgs struct {
	Difficulty float64 `json:"difficulty"`
	Category   string  `json:"category"`
}

func (t *KeywordTool) Name() string { return keywordToolName }

func (t *KeywordTool) Description() string {
	return "Fetch keywords, concepts and example topics scoped to a difficulty and category."
}

func (t *KeywordTool) InputSchema() string {
	return `{"difficulty": 1-10, "category": "technical|conceptual|applied"}`
}

func (t *KeywordTool) Timeout() time.Duration { return keywordTimeout }

func (t *KeywordTool) Validate(args json.RawMessage) error {
	var a keywordArgs
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

func (t *KeywordTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var a keywordArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	bundle := t.Bundle(ctx, a.Difficulty, a.Category)

	out, err := json.Marshal(bundle)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Bundle returns the cached bundle, building it on miss. A build failure
// falls back to the hard-coded default bundle for the category.
func (t *KeywordTool) Bundle(ctx context.Context, difficulty float64, category string) *store.KeywordBundle {
	key := cacheKey(difficulty, category)
	if cached, found := t.cache.Get(key); found {
		return cached.(*store.KeywordBundle)
	}

	bundle, err := t.source.Build(ctx, difficulty, category)
	if err != nil || bundle == nil {
		if err != nil {
			t.logger.Warn("KeywordTool", "Bundle build failed, using default bundle", map[string]interface{}{
				"category": category,
				"error":    err.Error(),
			})
		}
		bundle = DefaultBundle(difficulty, category)
	}

	t.cache.Set(key, bundle, gocache.DefaultExpiration)
	return bundle
}

// cacheKey buckets difficulty into the band the concept tables use, so 6.0
// and 6.4 share an entry.
func cacheKey(difficulty float64, category string) string {
	return fmt.Sprintf("%s:%s", difficultyBand(difficulty), category)
}
