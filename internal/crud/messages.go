package crud

import (
	"sync"
	"time"
)

type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

// Message - сообщение пользователю (аналог всплывающего алерта).
type Message struct {
	Level  Level     `json:"level"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	Source string    `json:"source,omitempty"`
	At     time.Time `json:"at"`
}

// Reporter - единый канал сообщений пользователю.
type Reporter interface {
	Report(msg Message)
}

const defaultFeedLimit = 50

// Feed хранит последние сообщения до тех пор, пока слой отображения их не заберет.
type Feed struct {
	mu    sync.Mutex
	items []Message
	limit int
	now   func() time.Time
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return &Feed{limit: limit, now: time.Now}
}

func (f *Feed) Report(msg Message) {
	if msg.At.IsZero() {
		msg.At = f.now()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, msg)
	if len(f.items) > f.limit {
		f.items = f.items[len(f.items)-f.limit:]
	}
}

// Drain отдает накопленные сообщения и очищает ленту.
func (f *Feed) Drain() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
