package model

import (
	"time"

	"github.com/google/uuid"
)

// ResearchSessionRow stores the whole session document as a JSON payload.
// Version backs optimistic locking: Mutate re-reads and retries on a stale
// version instead of holding row locks across the LLM-free mutation.
type ResearchSessionRow struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	Version   int64     `gorm:"not null;default:0"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ResearchSessionRow) TableName() string {
	return "research_sessions"
}

// SessionSelection mirrors the selected main-question ids relationally so
// scope can be inspected with plain SQL. Rewritten wholesale on each save.
type SessionSelection struct {
	SessionId  uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuestionId uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (SessionSelection) TableName() string {
	return "session_selections"
}

// ConversationRow stores chatbot dialog state keyed by its session id.
type ConversationRow struct {
	SessionId uuid.UUID `gorm:"type:uuid;primaryKey"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ConversationRow) TableName() string {
	return "conversation_states"
}
