package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAttemptNotFound means the requested attempt does not exist or is not
	// owned by the caller.
	ErrAttemptNotFound = errors.New("attempt not found")

	// ErrNoQuestions rejects grading of an empty quiz. The adapter refuses
	// such quizzes, so seeing this from the grader indicates a caller bug.
	ErrNoQuestions = errors.New("quiz has no questions")
)

// MalformedContentError collects every structural violation found in a
// generator payload so the whole shape can be reported at once.
type MalformedContentError struct {
	Violations []string
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("malformed quiz content: %s", strings.Join(e.Violations, "; "))
}
