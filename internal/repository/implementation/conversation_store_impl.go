package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/model"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationStoreImpl struct {
	db *gorm.DB
}

func NewConversationStore(db *gorm.DB) contract.IConversationStore {
	return &ConversationStoreImpl{db: db}
}

func (s *ConversationStoreImpl) Save(ctx context.Context, state *entity.ConversationState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	row := model.ConversationRow{SessionId: state.SessionId, Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *ConversationStoreImpl) Get(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationState, error) {
	var row model.ConversationRow
	if err := s.db.WithContext(ctx).First(&row, "session_id = ?", sessionId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrSessionNotFound
		}
		return nil, err
	}
	var state entity.ConversationState
	if err := json.Unmarshal(row.Payload, &state); err != nil {
		return nil, fmt.Errorf("unmarshal conversation %s: %w", sessionId, err)
	}
	return &state, nil
}

func (s *ConversationStoreImpl) Delete(ctx context.Context, sessionId uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&model.ConversationRow{}, "session_id = ?", sessionId).Error
}
