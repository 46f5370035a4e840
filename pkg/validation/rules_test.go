package validation

import (
	"strings"
	"testing"

	"adaptive-assessment-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func cleanMultipleChoice() store.DraftItem {
	return store.DraftItem{
		Type:          store.TypeMultipleChoice,
		Stem:          "Which data structure offers O(1) average lookup by key?",
		Choices:       []string{"Hash map", "Linked list", "Binary heap", "Stack"},
		CorrectAnswer: "Hash map",
		Difficulty:    4,
		Category:      store.CategoryTechnical,
	}
}

func TestRuleCheckCleanItems(t *testing.T) {
	cases := []struct {
		name string
		item store.DraftItem
	}{
		{"multiple choice", cleanMultipleChoice()},
		{"true false", store.DraftItem{
			Type:          store.TypeTrueFalse,
			Stem:          "A goroutine is cheaper to create than an OS thread.",
			CorrectAnswer: "True",
			Difficulty:    3,
			Category:      store.CategoryTechnical,
		}},
		{"short answer", store.DraftItem{
			Type:            store.TypeShortAnswer,
			Stem:            "Explain what an embedding vector represents.",
			CorrectKeywords: []string{"vector", "semantic"},
			Difficulty:      5,
			Category:        store.CategoryConceptual,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, issues := RuleCheck(tc.item)
			assert.Equal(t, 1.0, score)
			assert.Empty(t, issues)
		})
	}
}

func TestRuleCheckStemLength(t *testing.T) {
	item := cleanMultipleChoice()
	item.Stem = "Too short"

	score, issues := RuleCheck(item)

	assert.InDelta(t, 0.70, score, 1e-9)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "stem length")

	item.Stem = strings.Repeat("x", 501)
	score, _ = RuleCheck(item)
	assert.InDelta(t, 0.70, score, 1e-9)
}

func TestRuleCheckStemLengthCountsRunes(t *testing.T) {
	item := store.DraftItem{
		Type:          store.TypeTrueFalse,
		Stem:          "ゴルーチンはスレッドより軽量である。", // 18 runes, 54 bytes
		CorrectAnswer: "true",
	}

	score, issues := RuleCheck(item)

	assert.Equal(t, 1.0, score)
	assert.Empty(t, issues)

	// 300 multi-byte runes stay inside the upper bound as well.
	item.Stem = strings.Repeat("語", 300)
	score, issues = RuleCheck(item)
	assert.Equal(t, 1.0, score)
	assert.Empty(t, issues)
}

func TestRuleCheckAnswerNotInChoices(t *testing.T) {
	item := cleanMultipleChoice()
	item.CorrectAnswer = "Bloom filter"

	score, issues := RuleCheck(item)

	assert.InDelta(t, 0.60, score, 1e-9)
	assert.Contains(t, issues, "correct answer is not one of the choices")
}

func TestRuleCheckAnswerMatchIsCaseInsensitive(t *testing.T) {
	item := cleanMultipleChoice()
	item.CorrectAnswer = "  HASH MAP "

	score, issues := RuleCheck(item)

	assert.Equal(t, 1.0, score)
	assert.Empty(t, issues)
}

func TestRuleCheckDuplicateChoices(t *testing.T) {
	item := cleanMultipleChoice()
	item.Choices = []string{"Hash map", "Linked list", "hash map", "Stack"}

	score, issues := RuleCheck(item)

	assert.InDelta(t, 0.70, score, 1e-9)
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0], "duplicate choice")
}

func TestRuleCheckChoiceCount(t *testing.T) {
	item := cleanMultipleChoice()
	item.Choices = []string{"Hash map", "Linked list"}

	score, issues := RuleCheck(item)

	assert.InDelta(t, 0.70, score, 1e-9)
	assert.Contains(t, issues[0], "choices")
}

func TestRuleCheckTrueFalseBadAnswer(t *testing.T) {
	item := store.DraftItem{
		Type:          store.TypeTrueFalse,
		Stem:          "Vectors and matrices are interchangeable terms.",
		CorrectAnswer: "maybe",
	}

	score, issues := RuleCheck(item)

	assert.InDelta(t, 0.60, score, 1e-9)
	assert.Contains(t, issues[0], "'true' or 'false'")
}

func TestRuleCheckShortAnswerNeedsKeywords(t *testing.T) {
	item := store.DraftItem{
		Type: store.TypeShortAnswer,
		Stem: "Describe the purpose of a load balancer in a web deployment.",
	}

	score, issues := RuleCheck(item)

	assert.InDelta(t, 0.60, score, 1e-9)
	assert.Contains(t, issues[0], "no correct keywords")
}

func TestRuleCheckUnsupportedType(t *testing.T) {
	item := store.DraftItem{Type: "essay", Stem: "Write five hundred words about consensus."}

	score, issues := RuleCheck(item)

	assert.Equal(t, 0.0, score)
	assert.Contains(t, issues[0], "unsupported question type")
}

func TestRuleCheckScoreFloorsAtZero(t *testing.T) {
	item := store.DraftItem{
		Type:    store.TypeMultipleChoice,
		Stem:    "short",
		Choices: []string{"a", "a"},
	}

	score, issues := RuleCheck(item)

	assert.Equal(t, 0.0, score)
	assert.GreaterOrEqual(t, len(issues), 3)
}
