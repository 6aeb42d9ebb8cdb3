package generator

import (
	"strings"
	"testing"

	"github.com/studyforge/backend/internal/models"
)

func TestBuildQuizUserPrompt(t *testing.T) {
	doc := &models.Document{
		Title:       "Cell Biology Notes",
		ContentText: "The mitochondrion is the powerhouse of the cell.",
	}

	prompt := BuildQuizUserPrompt(doc, "Midterm Review", 5, models.DifficultyHard)

	if !strings.Contains(prompt, "exactly 5 quiz questions") {
		t.Error("prompt missing question count")
	}
	if !strings.Contains(prompt, "Midterm Review") {
		t.Error("prompt missing quiz title")
	}
	if !strings.Contains(prompt, "hard") {
		t.Error("prompt missing difficulty")
	}
	if !strings.Contains(prompt, doc.ContentText) {
		t.Error("prompt missing document text")
	}
	if !strings.Contains(prompt, "Cell Biology Notes") {
		t.Error("prompt missing document title")
	}
}

func TestBuildQuizUserPromptDefaultsTitle(t *testing.T) {
	doc := &models.Document{Title: "Organic Chemistry", ContentText: "Alkanes are saturated hydrocarbons."}

	prompt := BuildQuizUserPrompt(doc, "  ", 3, models.DifficultyEasy)

	if !strings.Contains(prompt, "Organic Chemistry Quiz") {
		t.Error("prompt should default quiz title from document title")
	}
}

func TestBuildQuizUserPromptTruncatesExcerpt(t *testing.T) {
	doc := &models.Document{
		Title:       "Long Document",
		ContentText: strings.Repeat("a", maxExcerptChars+5000),
	}

	prompt := BuildQuizUserPrompt(doc, "Quiz", 5, models.DifficultyMedium)

	if strings.Count(prompt, "a") > maxExcerptChars+100 {
		t.Errorf("excerpt not truncated: prompt carries %d chars of content", strings.Count(prompt, "a"))
	}
}

func TestQuizSystemPromptNamesAllKinds(t *testing.T) {
	prompt := QuizSystemPrompt()

	for kind := range models.ValidAnswerKinds {
		if !strings.Contains(prompt, string(kind)) {
			t.Errorf("system prompt does not describe kind %q", kind)
		}
	}
	if !strings.Contains(prompt, "valid JSON only") {
		t.Error("system prompt missing JSON-only instruction")
	}
}
