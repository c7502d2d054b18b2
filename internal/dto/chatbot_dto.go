package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartChatResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
}

// ChatContextDTO carries structured input alongside a chat message, letting
// a client submit project fields or explicit question ids directly instead
// of relying on free-text parsing.
type ChatContextDTO struct {
	Project     *ProjectDTO `json:"project,omitempty"`
	QuestionIds []uuid.UUID `json:"question_ids,omitempty"`
}

type ChatMessageRequest struct {
	SessionId uuid.UUID       `json:"session_id" validate:"required"`
	Message   string          `json:"message" validate:"required"`
	Context   *ChatContextDTO `json:"context,omitempty"`
}

type ChatMessageResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Stage     string    `json:"stage"`
	Reply     string    `json:"reply"`
	// StageAdvanced is true when this message moved the dialog forward.
	StageAdvanced bool `json:"stage_advanced"`
}

type ChatStatusResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	Stage         string    `json:"stage"`
	MissingFields []string  `json:"missing_fields,omitempty"`
	Turns         int       `json:"turns"`
	CreatedAt     time.Time `json:"created_at"`
}

type ChatTurnDTO struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatExportResponse struct {
	SessionId  uuid.UUID        `json:"session_id"`
	Stage      string           `json:"stage"`
	Transcript []ChatTurnDTO    `json:"transcript"`
	Session    *SessionResponse `json:"session,omitempty"`
}

type ChatResetResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
}
