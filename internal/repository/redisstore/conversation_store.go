package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewConversationStore(client *redis.Client, ttl time.Duration) contract.IConversationStore {
	return &ConversationStore{client: client, ttl: ttl}
}

func conversationKey(id uuid.UUID) string {
	return conversationKeyPrefix + id.String()
}

func (s *ConversationStore) Save(ctx context.Context, state *entity.ConversationState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	return s.client.Set(ctx, conversationKey(state.SessionId), payload, s.ttl).Err()
}

func (s *ConversationStore) Get(ctx context.Context, sessionId uuid.UUID) (*entity.ConversationState, error) {
	payload, err := s.client.Get(ctx, conversationKey(sessionId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.ErrSessionNotFound
		}
		return nil, err
	}
	var state entity.ConversationState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("unmarshal conversation %s: %w", sessionId, err)
	}
	return &state, nil
}

func (s *ConversationStore) Delete(ctx context.Context, sessionId uuid.UUID) error {
	return s.client.Del(ctx, conversationKey(sessionId)).Err()
}
