package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/model"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const mutateRetries = 5

// SessionStoreImpl is the Postgres-backed session store. The session document
// lives in a jsonb column; selections are mirrored into their own table on
// every write. Expiry is lazy: reads treat an expired row as absent and
// delete it.
type SessionStoreImpl struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) contract.ISessionStore {
	return &SessionStoreImpl{db: db}
}

// Migrate creates the session tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.ResearchSessionRow{},
		&model.SessionSelection{},
		&model.ConversationRow{},
	)
}

func (s *SessionStoreImpl) Create(ctx context.Context, session *entity.ResearchSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	row := model.ResearchSessionRow{
		Id:        session.Id,
		Payload:   payload,
		Version:   0,
		ExpiresAt: session.ExpiresAt,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *SessionStoreImpl) Get(ctx context.Context, id uuid.UUID) (*entity.ResearchSession, error) {
	session, _, err := s.load(ctx, id)
	return session, err
}

func (s *SessionStoreImpl) Mutate(ctx context.Context, id uuid.UUID, fn func(*entity.ResearchSession) error) (*entity.ResearchSession, error) {
	for attempt := 0; attempt < mutateRetries; attempt++ {
		session, version, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(session); err != nil {
			return nil, err
		}

		payload, err := json.Marshal(session)
		if err != nil {
			return nil, fmt.Errorf("marshal session: %w", err)
		}

		var stale bool
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&model.ResearchSessionRow{}).
				Where("id = ? AND version = ?", id, version).
				Updates(map[string]interface{}{
					"payload":    payload,
					"version":    version + 1,
					"expires_at": session.ExpiresAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				stale = true
				return nil
			}
			return syncSelections(tx, session)
		})
		if err != nil {
			return nil, err
		}
		if !stale {
			return session, nil
		}
	}
	return nil, fmt.Errorf("session %s: mutate contention after %d attempts", id, mutateRetries)
}

func (s *SessionStoreImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.SessionSelection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ResearchSessionRow{}, "id = ?", id).Error
	})
}

func (s *SessionStoreImpl) load(ctx context.Context, id uuid.UUID) (*entity.ResearchSession, int64, error) {
	var row model.ResearchSessionRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperror.ErrSessionNotFound
		}
		return nil, 0, err
	}

	var session entity.ResearchSession
	if err := json.Unmarshal(row.Payload, &session); err != nil {
		return nil, 0, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	if session.Expired(time.Now()) {
		_ = s.Delete(ctx, id)
		return nil, 0, apperror.ErrSessionNotFound
	}
	return &session, row.Version, nil
}

func syncSelections(tx *gorm.DB, session *entity.ResearchSession) error {
	if err := tx.Where("session_id = ?", session.Id).Delete(&model.SessionSelection{}).Error; err != nil {
		return err
	}
	if !session.Selection.Made || len(session.Selection.IDs) == 0 {
		return nil
	}
	rows := make([]model.SessionSelection, 0, len(session.Selection.IDs))
	for _, qid := range session.Selection.IDs {
		rows = append(rows, model.SessionSelection{SessionId: session.Id, QuestionId: qid})
	}
	return tx.Create(&rows).Error
}
