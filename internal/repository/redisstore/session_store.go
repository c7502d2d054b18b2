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

const (
	sessionKeyPrefix      = "research:session:"
	conversationKeyPrefix = "research:conversation:"
	mutateRetries         = 5
)

// SessionStore keeps sessions as JSON blobs in Redis. The key TTL matches
// the session's ExpiresAt, so Redis evicts on schedule and a missing key is
// indistinguishable from an expired session.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) contract.ISessionStore {
	return &SessionStore{client: client}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (s *SessionStore) Create(ctx context.Context, session *entity.ResearchSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(session.Id), payload, time.Until(session.ExpiresAt)).Err()
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*entity.ResearchSession, error) {
	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.ErrSessionNotFound
		}
		return nil, err
	}
	return decodeSession(id, payload)
}

// Mutate runs fn inside a WATCH transaction: if another writer touches the
// key between read and write, the attempt is retried with fresh state.
func (s *SessionStore) Mutate(ctx context.Context, id uuid.UUID, fn func(*entity.ResearchSession) error) (*entity.ResearchSession, error) {
	key := sessionKey(id)
	var mutated *entity.ResearchSession

	txn := func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return apperror.ErrSessionNotFound
			}
			return err
		}
		session, err := decodeSession(id, payload)
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		next, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, time.Until(session.ExpiresAt))
			return nil
		})
		if err == nil {
			mutated = session
		}
		return err
	}

	for attempt := 0; attempt < mutateRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return mutated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("session %s: mutate contention after %d attempts", id, mutateRetries)
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func decodeSession(id uuid.UUID, payload []byte) (*entity.ResearchSession, error) {
	var session entity.ResearchSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	if session.Expired(time.Now()) {
		return nil, apperror.ErrSessionNotFound
	}
	return &session, nil
}
