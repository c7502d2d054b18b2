package memory

import (
	"context"
	"sync"
	"time"

	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionStore keeps sessions in a TTL cache. The cache janitor reclaims
// expired entries in the background; reads also check expiry so a session
// past its TTL is never observable even before the sweep.
type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewSessionStore(ttl time.Duration) contract.ISessionStore {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionStore{
		cache: c,
		ttl:   ttl,
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *SessionStore) Create(ctx context.Context, session *entity.ResearchSession) error {
	s.cache.Set(session.Id.String(), session.Clone(), session.ExpiresAt.Sub(time.Now()))
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*entity.ResearchSession, error) {
	x, found := s.cache.Get(id.String())
	if !found {
		return nil, apperror.ErrSessionNotFound
	}
	session := x.(*entity.ResearchSession)
	if session.Expired(time.Now()) {
		s.cache.Delete(id.String())
		return nil, apperror.ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Mutate applies fn to a private copy under a per-session lock and swaps the
// result in. fn returning an error leaves the stored session untouched.
func (s *SessionStore) Mutate(ctx context.Context, id uuid.UUID, fn func(*entity.ResearchSession) error) (*entity.ResearchSession, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	s.cache.Set(id.String(), session.Clone(), session.ExpiresAt.Sub(time.Now()))
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.cache.Delete(id.String())
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) lockFor(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[id]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[id] = l
	return l
}
