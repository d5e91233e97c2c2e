// Package crud реализует общий цикл экранов списков:
// загрузка -> фильтр -> правка -> валидация -> сохранение -> перезагрузка.
// Одна реализация, настроенная декларативной схемой сущности.
package crud

import (
	"context"

	"equipment-tracker/internal/session"
	"equipment-tracker/pkg/types"
)

// CollectionClient - контракт клиента бэкенда над именованными коллекциями.
type CollectionClient interface {
	Select(ctx context.Context, collection string, columns []string, order *types.Order) ([]types.Row, error)
	Insert(ctx context.Context, collection string, rows []types.Row) error
	Update(ctx context.Context, collection string, patch types.Row, id string) error
}

// IdentityProvider отдает пользователя текущей сессии.
type IdentityProvider interface {
	CurrentUser() (session.Identity, bool)
}

// Schema - декларативное описание сущности для Controller.
type Schema[T any] struct {
	// Entity - имя сущности в сообщениях пользователю ("equipment", "ticket").
	Entity     string
	Collection string
	Columns    []string
	Order      types.Order

	// Fields - все поля, которые можно править в черновике.
	Fields         []string
	RequiredFields []string
	// Rules - теги validator для значений полей.
	Rules          map[string]string
	Defaults       types.Row
	CreateFields   []string
	MutableFields  []string
	NullableFields []string
	SearchFields   []string

	// CreatorField заполняется id пользователя сессии при создании.
	CreatorField string

	Decode func(types.Row) (T, error)
	Encode func(T) types.Row
	ID     func(T) string
}

func (s *Schema[T]) hasField(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

func (s *Schema[T]) nullable(name string) bool {
	for _, f := range s.NullableFields {
		if f == name {
			return true
		}
	}
	return false
}
