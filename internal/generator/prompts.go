package generator

import (
	"fmt"
	"strings"

	"github.com/studyforge/backend/internal/models"
)

// maxExcerptChars caps how much document text goes into the prompt.
const maxExcerptChars = 24000

func QuizSystemPrompt() string {
	return `You are an expert instructional designer who writes assessment questions from study material. Every question you write must be answerable from the provided document text alone — no outside knowledge, no trick questions.

Question construction rules:

MULTIPLE CHOICE ("multiple_choice"):
- 3-5 options, exactly one correct
- Wrong options must be plausible misreadings of the document, not obvious throwaways
- The correct_answer field must repeat one option verbatim

TYPE ANSWER ("type_answer"):
- Ask for a single short term or phrase stated explicitly in the document
- correct_answer is the expected text; keep it to one or two words

ORDERING ("ordering"):
- List 3-6 items from the document whose sequence matters
- options holds the items in a shuffled order; correct_order holds the indices into options that restore the document's sequence

MATCHING ("matching"):
- 2-5 pairs drawn directly from the document
- pairs maps each left-hand item to its correct right-hand match

SLIDER ("slider"):
- Ask for a numeric value stated in the document
- Provide slider_min, slider_max, and slider_answer, with the answer inside the range

General rules:
- Cover different parts of the document; do not cluster questions on one section
- Mix interaction kinds across the quiz; default to multiple_choice when unsure
- Each question may carry an optional one-sentence hint that points at the relevant section without giving the answer away
- Difficulty is one of "easy", "medium", "hard"

You must respond with valid JSON only. No markdown, no explanation outside the JSON.`
}

func BuildQuizUserPrompt(doc *models.Document, title string, numQuestions int, difficulty models.Difficulty) string {
	excerpt := doc.ContentText
	if len(excerpt) > maxExcerptChars {
		excerpt = excerpt[:maxExcerptChars]
	}

	if strings.TrimSpace(title) == "" {
		title = doc.Title + " Quiz"
	}

	return fmt.Sprintf(`Generate exactly %d quiz questions from the document below.

Quiz title: %s
Target difficulty: %s

Respond with this exact JSON structure:
{
  "title": "...",
  "questions": [
    {
      "question": "...",
      "kind": "multiple_choice",
      "options": ["...", "...", "...", "..."],
      "correct_answer": "...",
      "difficulty": "%s",
      "hint": "..."
    }
  ]
}

Use the kind-specific fields described in the system prompt for ordering, matching, type_answer, and slider questions.

Document title: %s

Document text:
%s`,
		numQuestions, title, difficulty, difficulty, doc.Title, excerpt)
}
