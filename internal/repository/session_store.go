package repository

import (
	"sync"
	"time"

	"cardsight/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore keeps parse results in memory for the lifetime of a session.
// Entries expire after the configured TTL; nothing is written to disk or a
// database, so a restart discards everything. Safe for concurrent use.
type SessionStore struct {
	mu         sync.RWMutex
	statements map[uuid.UUID]*models.ParsedStatement
	ttl        time.Duration
	logger     *zap.Logger
	stop       chan struct{}
	stopOnce   sync.Once
}

func NewSessionStore(ttl time.Duration, logger *zap.Logger) *SessionStore {
	s := &SessionStore{
		statements: make(map[uuid.UUID]*models.ParsedStatement),
		ttl:        ttl,
		logger:     logger,
		stop:       make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *SessionStore) Put(st *models.ParsedStatement) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *st
	s.statements[st.ID] = &cp
}

func (s *SessionStore) Get(id uuid.UUID) (*models.ParsedStatement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.statements[id]
	if !ok || s.expired(st, time.Now()) {
		return nil, models.ErrStatementNotFound
	}

	// Return a copy to avoid external modifications.
	cp := *st
	return &cp, nil
}

func (s *SessionStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.statements[id]; !ok {
		return models.ErrStatementNotFound
	}
	delete(s.statements, id)
	return nil
}

// Close stops the eviction goroutine.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) expired(st *models.ParsedStatement, now time.Time) bool {
	return s.ttl > 0 && now.Sub(st.CreatedAt) > s.ttl
}

func (s *SessionStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evictExpired(now)
		}
	}
}

func (s *SessionStore) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, st := range s.statements {
		if s.expired(st, now) {
			delete(s.statements, id)
			s.logger.Debug("Session statement expired", zap.String("id", id.String()))
		}
	}
}
