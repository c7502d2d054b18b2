package contract

import (
	"context"

	"research-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// ISessionStore is the single owner of research-session documents. All reads
// return defensive copies, and every write goes through Mutate so concurrent
// operations on the same session serialize cleanly regardless of backend.
//
// A missing or expired session surfaces as apperror.ErrSessionNotFound from
// every method that takes an id.
type ISessionStore interface {
	Create(ctx context.Context, session *entity.ResearchSession) error
	Get(ctx context.Context, id uuid.UUID) (*entity.ResearchSession, error)
	Mutate(ctx context.Context, id uuid.UUID, fn func(*entity.ResearchSession) error) (*entity.ResearchSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IConversationStore persists per-session conversation state for the chatbot
// flow. Conversation state shares the research session's lifetime.
type IConversationStore interface {
	Save(ctx context.Context, state *entity.ConversationState) error
	Get(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationState, error)
	Delete(ctx context.Context, sessionId uuid.UUID) error
}
