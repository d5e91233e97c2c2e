package crud

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Store держит снимок списка записей коллекции.
// Refresh заменяет список целиком; параллельные Refresh не склеиваются,
// побеждает последний завершившийся. Ответ, пришедший после Reset, отбрасывается.
type Store[T any] struct {
	client CollectionClient
	schema *Schema[T]

	mu         sync.RWMutex
	items      []T
	generation uint64
}

func NewStore[T any](client CollectionClient, schema *Schema[T]) *Store[T] {
	return &Store[T]{client: client, schema: schema}
}

// Refresh перечитывает коллекцию. При ошибке прежний список не трогается.
func (s *Store[T]) Refresh(ctx context.Context) error {
	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	order := s.schema.Order
	rows, err := s.client.Select(ctx, s.schema.Collection, s.schema.Columns, &order)
	if err != nil {
		if s.stale(generation) {
			return nil
		}
		return err
	}

	items := make([]T, 0, len(rows))
	for i, row := range rows {
		item, err := s.schema.Decode(row)
		if err != nil {
			return fmt.Errorf("decode %s row %d: %w", s.schema.Collection, i, err)
		}
		items = append(items, item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return nil
	}
	s.items = items
	return nil
}

func (s *Store[T]) stale(generation uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation != generation
}

// Items возвращает копию текущего списка.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Filter - проекция списка без мутации: регистронезависимое вхождение
// подстроки в любое из полей поиска. Пустой запрос отдает весь список.
func (s *Store[T]) Filter(query string) []T {
	return FilterItems(s.schema, s.Items(), query)
}

func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if s.schema.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Reset забывает список (смена пользователя).
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.items = nil
	s.generation++
	s.mu.Unlock()
}

// FilterItems применяет поиск схемы к произвольному списку.
func FilterItems[T any](schema *Schema[T], items []T, query string) []T {
	if query == "" {
		return append([]T(nil), items...)
	}
	needle := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		row := schema.Encode(item)
		for _, field := range schema.SearchFields {
			if strings.Contains(strings.ToLower(row.String(field)), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
