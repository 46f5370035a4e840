package grading

import (
	"context"
	"fmt"
	"strings"

	"adaptive-assessment-be/pkg/llm"
)

// Explanation constraints: short explanations read as dismissive, and every
// explanation must point the learner somewhere to read further.
const (
	minExplanationLength = 120
	minReferenceCount    = 2
)

var genericReferences = []string{
	"https://developer.mozilla.org/en-US/docs/Learn",
	"https://en.wikipedia.org/wiki/Main_Page",
	"https://www.khanacademy.org/",
}

// ExplanationInput describes the graded answer an explanation is written for.
type ExplanationInput struct {
	QuestionType    string
	UserAnswer      string
	CorrectAnswer   string
	CorrectKeywords []string
	KeywordMatches  []string
	IsCorrect       bool
}

// ExplanationGenerator writes tone-adjusted explanations with reference links.
type ExplanationGenerator struct {
	client *llm.Client
}

func NewExplanationGenerator(client *llm.Client) *ExplanationGenerator {
	return &ExplanationGenerator{client: client}
}

// Generate produces an explanation meeting the minimum length and reference
// count. A model failure short-circuits to a padded generic explanation
// rather than failing the attempt.
func (e *ExplanationGenerator) Generate(ctx context.Context, input ExplanationInput) string {
	response, err := e.client.Generate(ctx, composeExplanationPrompt(input), llm.WithTemperature(0.6))
	if err != nil || strings.TrimSpace(response) == "" {
		return pad(genericExplanation())
	}
	return pad(strings.TrimSpace(response))
}

func composeExplanationPrompt(input ExplanationInput) string {
	var prompt strings.Builder

	prompt.WriteString("Write a short explanation for a learner about their graded answer.\n\n")

	if input.IsCorrect {
		prompt.WriteString("The answer was CORRECT. Use an affirmative, encouraging tone and ")
		prompt.WriteString("reinforce why the answer is right.\n\n")
	} else {
		prompt.WriteString("The answer was INCORRECT. Use a constructive, supportive tone. ")
		prompt.WriteString("Explain the gap without discouraging the learner.\n\n")
	}

	prompt.WriteString(fmt.Sprintf("Question type: %s\n", input.QuestionType))
	prompt.WriteString(fmt.Sprintf("Learner's answer: %s\n", input.UserAnswer))
	if input.CorrectAnswer != "" {
		prompt.WriteString(fmt.Sprintf("Correct answer: %s\n", input.CorrectAnswer))
	}
	if len(input.CorrectKeywords) > 0 {
		prompt.WriteString(fmt.Sprintf("Expected concepts: %s\n", strings.Join(input.CorrectKeywords, ", ")))
		prompt.WriteString(fmt.Sprintf("Concepts the learner covered: %s\n", strings.Join(input.KeywordMatches, ", ")))
	}

	prompt.WriteString(fmt.Sprintf(
		"\nThe explanation must be at least %d characters and include at least %d reference links (https URLs).\n",
		minExplanationLength, minReferenceCount,
	))
	prompt.WriteString("Respond with the explanation text only.\n")

	return prompt.String()
}

// pad enforces the minimum length and reference-link count by appending
// generic references when the text falls short.
func pad(text string) string {
	refs := strings.Count(text, "https://") + strings.Count(text, "http://")
	for i := 0; refs < minReferenceCount && i < len(genericReferences); i++ {
		if strings.Contains(text, genericReferences[i]) {
			continue
		}
		text = text + "\nFurther reading: " + genericReferences[i]
		refs++
	}

	for i := 0; len(text) < minExplanationLength && i < len(genericReferences); i++ {
		if strings.Contains(text, genericReferences[i]) {
			continue
		}
		text = text + "\nFurther reading: " + genericReferences[i]
	}
	if len(text) < minExplanationLength {
		text = text + "\nKeep practicing: revisiting the underlying concept and trying a few related questions is the fastest way to make it stick."
	}
	return text
}

func genericExplanation() string {
	return "Your answer has been recorded. Compare it against the expected concepts for this question and note any you missed; revisiting those is the quickest way to improve."
}
