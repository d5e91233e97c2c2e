package session

import (
	"slices"
	"sync"
)

// Condition - наблюдаемый булев флаг. Подписчики вызываются только при смене значения.
type Condition struct {
	mu        sync.Mutex
	value     bool
	observers []func(bool)
}

func (c *Condition) Get() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *Condition) Set(v bool) {
	c.mu.Lock()
	if c.value == v {
		c.mu.Unlock()
		return
	}
	c.value = v
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
}

func (c *Condition) Observe(fn func(bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}
