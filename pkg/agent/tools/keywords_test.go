package tools

import (
	"context"
	"fmt"
	"testing"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKeywordSource struct {
	calls int
}

func (s *failingKeywordSource) Build(_ context.Context, _ float64, _ string) (*store.KeywordBundle, error) {
	s.calls++
	return nil, fmt.Errorf("keyword backend down")
}

func TestKeywordBundleFromConceptTables(t *testing.T) {
	tool := NewKeywordTool(StaticKeywordSource{}, logger.NewNopLogger())

	bundle := tool.Bundle(context.Background(), 5.0, store.CategoryTechnical)

	require.NotNil(t, bundle)
	assert.Equal(t, store.CategoryTechnical, bundle.Category)
	assert.Contains(t, bundle.Keywords, "transformers")
	assert.Contains(t, bundle.Keywords, "attention")
}

func TestKeywordBundleFallsBackOnSourceFailure(t *testing.T) {
	source := &failingKeywordSource{}
	tool := NewKeywordTool(source, logger.NewNopLogger())

	bundle := tool.Bundle(context.Background(), 2.0, store.CategoryConceptual)

	require.NotNil(t, bundle)
	assert.Equal(t, store.CategoryConceptual, bundle.Category)
	assert.NotEmpty(t, bundle.Keywords)
}

func TestKeywordBundleCachedByBandAndCategory(t *testing.T) {
	source := &failingKeywordSource{}
	tool := NewKeywordTool(source, logger.NewNopLogger())

	// 5.0 and 6.4 share the working band; 8.0 does not.
	tool.Bundle(context.Background(), 5.0, store.CategoryApplied)
	tool.Bundle(context.Background(), 6.4, store.CategoryApplied)
	tool.Bundle(context.Background(), 8.0, store.CategoryApplied)

	assert.Equal(t, 2, source.calls)
}

func TestKeywordValidate(t *testing.T) {
	tool := NewKeywordTool(StaticKeywordSource{}, logger.NewNopLogger())

	assert.NoError(t, tool.Validate([]byte(`{"difficulty": 5, "category": "technical"}`)))
	assert.Error(t, tool.Validate([]byte(`{"difficulty": 11, "category": "technical"}`)))
	assert.Error(t, tool.Validate([]byte(`{"difficulty": 5, "category": "trivia"}`)))
}

func TestDifficultyBands(t *testing.T) {
	assert.Equal(t, bandFoundation, difficultyBand(1.0))
	assert.Equal(t, bandFoundation, difficultyBand(3.9))
	assert.Equal(t, bandWorking, difficultyBand(4.0))
	assert.Equal(t, bandWorking, difficultyBand(6.9))
	assert.Equal(t, bandAdvanced, difficultyBand(7.0))
	assert.Equal(t, bandAdvanced, difficultyBand(10.0))
}
