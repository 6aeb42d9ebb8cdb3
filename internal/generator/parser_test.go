package generator

import (
	"strings"
	"testing"
)

const sampleQuizJSON = `{
	"title": "Photosynthesis",
	"questions": [
		{
			"question": "Where does the light reaction occur?",
			"kind": "multiple_choice",
			"options": ["Thylakoid", "Stroma", "Nucleus"],
			"correct_answer": "Thylakoid",
			"difficulty": "medium"
		}
	]
}`

func TestParseResponse(t *testing.T) {
	payload, err := ParseResponse(sampleQuizJSON)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if payload.Title != "Photosynthesis" {
		t.Errorf("Title = %q, want %q", payload.Title, "Photosynthesis")
	}
	if len(payload.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(payload.Questions))
	}
	if payload.Questions[0].CorrectAnswer != "Thylakoid" {
		t.Errorf("CorrectAnswer = %q, want %q", payload.Questions[0].CorrectAnswer, "Thylakoid")
	}
}

func TestParseResponseWithCodeFences(t *testing.T) {
	fenced := []string{
		"```json\n" + sampleQuizJSON + "\n```",
		"```\n" + sampleQuizJSON + "\n```",
		"  \n```json\n" + sampleQuizJSON + "\n```\n  ",
	}

	for _, body := range fenced {
		payload, err := ParseResponse(body)
		if err != nil {
			t.Errorf("ParseResponse(fenced) error = %v", err)
			continue
		}
		if payload.Title != "Photosynthesis" {
			t.Errorf("Title = %q, want %q", payload.Title, "Photosynthesis")
		}
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	bodies := []string{
		"",
		"not json at all",
		`{"title": "broken"`,
		"```json\nstill not json\n```",
	}

	for _, body := range bodies {
		if _, err := ParseResponse(body); err == nil {
			t.Errorf("ParseResponse(%q) expected error, got nil", body)
		} else if !strings.Contains(err.Error(), "failed to parse JSON response") {
			t.Errorf("ParseResponse(%q) error = %v, want parse failure", body, err)
		}
	}
}
