package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"equipment-tracker/internal/entities"
	apperrors "equipment-tracker/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entities.User{}}
}

func (r *fakeUserRepo) add(u entities.User) *entities.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users[u.ID] = &u
	return &u
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	u := *user
	u.CreatedAt = time.Now()
	return r.add(u), nil
}

func (r *fakeUserRepo) ConfirmEmail(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.EmailConfirmedAt.Valid {
		return apperrors.ErrNotFound
	}
	u.EmailConfirmedAt = null.TimeFrom(time.Now())
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.values[key] = v
	default:
		c.values[key] = fmt.Sprint(v)
	}
	c.ttls[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) keysWithPrefix(prefix string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}
