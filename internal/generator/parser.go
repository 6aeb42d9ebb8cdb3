package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studyforge/backend/internal/models"
)

// ParseResponse unmarshals a raw model response into a quiz payload. Models
// sometimes wrap JSON in markdown code fences despite instructions, so those
// are stripped first. Structural validation of the payload happens in the
// quiz content adapter, not here.
func ParseResponse(responseBody string) (*models.QuizPayload, error) {
	cleaned := stripCodeFences(responseBody)

	var payload models.QuizPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &payload, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
