package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Workflow error taxonomy. Controllers never inspect these directly; the
// error-handler middleware maps them to HTTP statuses.
var (
	// ErrSessionNotFound covers both a missing session id and one whose
	// expiry timestamp has passed (lazy expiry makes them indistinguishable).
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrNoQuestions means the workflow was invoked before generate-questions.
	ErrNoQuestions = errors.New("no questions found in session, run generate-questions first")

	// ErrNoSelection means a selection-dependent step ran before any
	// selection was recorded.
	ErrNoSelection = errors.New("no questions selected, run select-questions first")

	// ErrNoAnalysis means a step that consumes sub-question mappings ran
	// before any in-scope sub-question was analyzed.
	ErrNoAnalysis = errors.New("no analyzed sub-questions in scope, run analyze first")
)

// InvalidSelectionError names the ids that do not belong to the session.
// Selection is all-or-nothing; the session is left untouched.
type InvalidSelectionError struct {
	InvalidIDs []uuid.UUID
}

func (e *InvalidSelectionError) Error() string {
	ids := make([]string, len(e.InvalidIDs))
	for i, id := range e.InvalidIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("invalid main question IDs: %s", strings.Join(ids, ", "))
}

// UpstreamError marks a generator backend that was completely unreachable.
// The session is left unmodified so the call is safely retryable.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus maps a workflow error to the status the transport should return.
func HTTPStatus(err error) int {
	var invalidSel *InvalidSelectionError
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &invalidSel),
		errors.Is(err, ErrNoQuestions),
		errors.Is(err, ErrNoSelection),
		errors.Is(err, ErrNoAnalysis):
		return fiber.StatusBadRequest
	case errors.As(err, &upstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
