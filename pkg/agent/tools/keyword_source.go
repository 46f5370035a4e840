package tools

import (
	"context"

	"adaptive-assessment-be/pkg/store"
)

// Difficulty bands the concept tables are organized by.
const (
	bandFoundation = "foundation" // 1.0 - 3.9
	bandWorking    = "working"    // 4.0 - 6.9
	bandAdvanced   = "advanced"   // 7.0 - 10.0
)

func difficultyBand(difficulty float64) string {
	switch {
	case difficulty < 4.0:
		return bandFoundation
	case difficulty < 7.0:
		return bandWorking
	default:
		return bandAdvanced
	}
}

// StaticKeywordSource composes bundles from the built-in concept tables.
type StaticKeywordSource struct{}

var _ KeywordSource = StaticKeywordSource{}

func (StaticKeywordSource) Build(_ context.Context, difficulty float64, category string) (*store.KeywordBundle, error) {
	band := difficultyBand(difficulty)

	table, ok := conceptTables[category]
	if !ok {
		return DefaultBundle(difficulty, category), nil
	}
	entry, ok := table[band]
	if !ok {
		return DefaultBundle(difficulty, category), nil
	}

	return &store.KeywordBundle{
		Difficulty: difficulty,
		Category:   category,
		Keywords:   entry.keywords,
		Concepts:   entry.concepts,
		Examples:   entry.examples,
	}, nil
}

// DefaultBundle is the hard-coded fallback when no table entry applies or a
// source fails.
func DefaultBundle(difficulty float64, category string) *store.KeywordBundle {
	return &store.KeywordBundle{
		Difficulty: difficulty,
		Category:   category,
		Keywords:   []string{"fundamentals", "definitions", "core principles"},
		Concepts:   []string{"understanding basic terminology", "applying concepts to simple cases"},
		Examples:   []string{"Define the key term and give one example of its use."},
	}
}

type conceptEntry struct {
	keywords []string
	concepts []string
	examples []string
}

var conceptTables = map[string]map[string]conceptEntry{
	store.CategoryTechnical: {
		bandFoundation: {
			keywords: []string{"variables", "data types", "control flow", "functions", "APIs"},
			concepts: []string{"reading simple code", "basic tooling", "common data formats"},
			examples: []string{"What does an HTTP status code 404 mean?"},
		},
		bandWorking: {
			keywords: []string{"concurrency", "caching", "indexing", "transformers", "attention", "embeddings", "retrieval"},
			concepts: []string{"trade-offs between approaches", "performance characteristics", "retrieval-augmented generation"},
			examples: []string{"Explain why an index speeds up lookups but slows down writes."},
		},
		bandAdvanced: {
			keywords: []string{"distributed consensus", "eventual consistency", "vector search", "model fine-tuning", "backpressure"},
			concepts: []string{"designing for partial failure", "scaling bottleneck analysis", "evaluation of ML systems"},
			examples: []string{"Design a retry strategy for an idempotent write across regions."},
		},
	},
	store.CategoryConceptual: {
		bandFoundation: {
			keywords: []string{"definition", "classification", "comparison", "purpose"},
			concepts: []string{"recognizing terminology", "matching concepts to descriptions"},
			examples: []string{"Which of the following best describes supervised learning?"},
		},
		bandWorking: {
			keywords: []string{"abstraction", "generalization", "causality", "mental models"},
			concepts: []string{"explaining mechanisms in own words", "identifying assumptions"},
			examples: []string{"Why does increasing model capacity risk overfitting?"},
		},
		bandAdvanced: {
			keywords: []string{"first principles", "emergent behavior", "system boundaries", "failure modes"},
			concepts: []string{"reasoning about second-order effects", "evaluating competing theories"},
			examples: []string{"Argue for or against strict layering in large systems."},
		},
	},
	store.CategoryApplied: {
		bandFoundation: {
			keywords: []string{"steps", "procedure", "best practice", "checklist"},
			concepts: []string{"following a documented process", "spotting obvious mistakes"},
			examples: []string{"Order the steps to deploy a simple web service."},
		},
		bandWorking: {
			keywords: []string{"troubleshooting", "root cause", "estimation", "prioritization"},
			concepts: []string{"diagnosing from symptoms", "choosing tools for a scenario"},
			examples: []string{"A service is slow only at peak hours. What do you check first?"},
		},
		bandAdvanced: {
			keywords: []string{"incident response", "capacity planning", "migration strategy", "risk assessment"},
			concepts: []string{"balancing constraints under pressure", "planning rollbacks"},
			examples: []string{"Plan a zero-downtime migration between two database engines."},
		},
	},
}
