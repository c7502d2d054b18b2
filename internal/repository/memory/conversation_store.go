package memory

import (
	"context"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ConversationStore keeps dialog state alongside its research session with
// the same TTL, so a conversation never outlives the session it drives.
type ConversationStore struct {
	cache *cache.Cache
}

func NewConversationStore(ttl time.Duration) contract.IConversationStore {
	return &ConversationStore{cache: cache.New(ttl, 10*time.Minute)}
}

func (s *ConversationStore) Save(ctx context.Context, state *entity.ConversationState) error {
	s.cache.Set(state.SessionId.String(), state.Clone(), cache.DefaultExpiration)
	return nil
}

func (s *ConversationStore) Get(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationState, error) {
	x, found := s.cache.Get(sessionId.String())
	if !found {
		return nil, apperror.ErrSessionNotFound
	}
	return x.(*entity.ConversationState).Clone(), nil
}

func (s *ConversationStore) Delete(ctx context.Context, sessionId uuid.UUID) error {
	s.cache.Delete(sessionId.String())
	return nil
}
