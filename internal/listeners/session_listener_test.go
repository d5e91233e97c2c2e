package listeners

import (
	"context"
	"testing"

	"equipment-tracker/internal/events"
	"equipment-tracker/internal/session"
	"equipment-tracker/pkg/eventbus"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type resetCounter struct{ n int }

func (r *resetCounter) Reset() { r.n++ }

func TestSessionListenerDrivesGateAndResetsScreens(t *testing.T) {
	gate := session.NewGate(0, zap.NewNop())
	gate.Mount()
	screen := &resetCounter{}

	bus := eventbus.New(zap.NewNop())
	NewSessionListener(gate, zap.NewNop(), screen).Register(bus)

	ctx := context.Background()
	present := session.AuthState{Session: &session.Session{User: session.Identity{ID: "u-1"}}}

	bus.Publish(ctx, events.SessionChangedEvent{State: present})
	assert.Equal(t, session.AuthenticatedStack, gate.State())
	assert.Equal(t, 0, screen.n)

	bus.Publish(ctx, events.SessionChangedEvent{State: session.AuthState{}})
	assert.Equal(t, session.UnauthenticatedStack, gate.State())
	assert.Equal(t, 1, screen.n)
}

func TestSessionListenerRejectsForeignEvents(t *testing.T) {
	l := NewSessionListener(session.NewGate(0, zap.NewNop()), zap.NewNop())
	err := l.HandleSessionChanged(context.Background(), otherEvent{})
	assert.Error(t, err)
}

type otherEvent struct{}

func (otherEvent) Name() string { return "other" }
