package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// DefaultCleanupInterval период удаления просроченных сценариев
const DefaultCleanupInterval = time.Minute

// ErrFlowNotFound возвращается, когда сценарий не найден или истек
var ErrFlowNotFound = fmt.Errorf("flow.store: flow expired or %w", domain.ErrNotFound)

type entry[T any] struct {
	value T
	seen  time.Time
}

// Store хранилище сценариев бронирования в памяти процесса.
// Сценарий живет ttl с момента последнего обращения
type Store[T any] struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry[T]
	ttl     time.Duration
	now     func() time.Time
}

// NewStore создает хранилище сценариев
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[uuid.UUID]*entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put сохраняет сценарий и возвращает его идентификатор
func (s *Store[T]) Put(value T) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry[T]{value: value, seen: s.now()}
	return id
}

// Get возвращает сценарий и продлевает его жизнь
func (s *Store[T]) Get(id uuid.UUID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e) {
		delete(s.entries, id)
		var zero T
		return zero, ErrFlowNotFound
	}
	e.seen = s.now()
	return e.value, nil
}

// Delete удаляет сценарий
func (s *Store[T]) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len возвращает количество хранимых сценариев
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup удаляет просроченные сценарии
func (s *Store[T]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run периодически удаляет просроченные сценарии до отмены контекста
// Неположительный интервал заменяется на DefaultCleanupInterval
func (s *Store[T]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

func (s *Store[T]) expired(e *entry[T]) bool {
	return s.now().Sub(e.seen) > s.ttl
}
