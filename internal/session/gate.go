package session

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSplashDwell - минимальное время показа сплэша.
const DefaultSplashDwell = 2 * time.Second

// State - что сейчас показывает корневая навигация.
type State int

const (
	SplashVisible State = iota
	UnauthenticatedStack
	AuthenticatedStack
)

func (s State) String() string {
	switch s {
	case SplashVisible:
		return "splash"
	case UnauthenticatedStack:
		return "unauthenticated"
	case AuthenticatedStack:
		return "authenticated"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Timer - отменяемый отложенный вызов (*time.Timer подходит).
type Timer interface {
	Stop() bool
}

// AfterFunc планирует f через d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Gate)

// WithAfterFunc подменяет таймер (для тестов).
func WithAfterFunc(fn AfterFunc) Option {
	return func(g *Gate) { g.afterFunc = fn }
}

// Gate решает, какой стек экранов доступен. Сплэш уходит только когда
// истекло минимальное время показа И сервис аккаунтов закончил загрузку сессии.
// После ухода сплэш больше не показывается: смена сессии сразу переключает стек.
type Gate struct {
	DwellElapsed    Condition
	SessionResolved Condition

	dwell     time.Duration
	afterFunc AfterFunc
	logger    *zap.Logger

	// notifyMu упорядочивает вычисление состояния и оповещение подписчиков.
	notifyMu sync.Mutex

	mu         sync.Mutex
	present    bool
	pastSplash bool
	state      State
	timer      Timer
	observers  []func(State)
}

func NewGate(dwell time.Duration, logger *zap.Logger, opts ...Option) *Gate {
	g := &Gate{
		dwell:     dwell,
		afterFunc: realAfterFunc,
		logger:    logger,
		state:     SplashVisible,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.DwellElapsed.Observe(func(bool) { g.evaluate() })
	g.SessionResolved.Observe(func(bool) { g.evaluate() })
	return g
}

// Mount запускает отсчет минимального времени показа сплэша.
func (g *Gate) Mount() {
	if g.dwell <= 0 {
		g.DwellElapsed.Set(true)
		return
	}
	timer := g.afterFunc(g.dwell, func() { g.DwellElapsed.Set(true) })
	g.mu.Lock()
	g.timer = timer
	g.mu.Unlock()
}

// Unmount останавливает таймер сплэша.
func (g *Gate) Unmount() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// HandleAuthState принимает очередное состояние сервиса аккаунтов.
func (g *Gate) HandleAuthState(s AuthState) {
	g.mu.Lock()
	g.present = s.Present()
	g.mu.Unlock()

	g.SessionResolved.Set(!s.Loading)
	g.evaluate()
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Observe подписывает на смену состояния. Подписчики вызываются по порядку
// смен и не должны синхронно трогать сам Gate.
func (g *Gate) Observe(fn func(State)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, fn)
}

func (g *Gate) evaluate() {
	g.notifyMu.Lock()
	defer g.notifyMu.Unlock()

	dwell := g.DwellElapsed.Get()
	resolved := g.SessionResolved.Get()

	g.mu.Lock()
	if !g.pastSplash && dwell && resolved {
		g.pastSplash = true
	}
	next := SplashVisible
	if g.pastSplash {
		next = UnauthenticatedStack
		if g.present {
			next = AuthenticatedStack
		}
	}
	prev := g.state
	g.state = next
	observers := slices.Clone(g.observers)
	g.mu.Unlock()

	if prev == next {
		return
	}
	g.logger.Info("Навигация: смена стека",
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
	)
	for _, fn := range observers {
		fn(next)
	}
}
