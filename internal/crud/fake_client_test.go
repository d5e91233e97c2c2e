package crud

import (
	"context"
	"sync"

	"equipment-tracker/internal/session"
	"equipment-tracker/pkg/types"
)

type updateCall struct {
	Collection string
	Patch      types.Row
	ID         string
}

type insertCall struct {
	Collection string
	Rows       []types.Row
}

// fakeClient - клиент коллекций в памяти, считает вызовы.
type fakeClient struct {
	mu      sync.Mutex
	rows    map[string][]types.Row
	selects int
	inserts []insertCall
	updates []updateCall

	selectErr error
	insertErr error
	updateErr error

	// Если заданы, вызов сообщает о старте и ждет разрешения на завершение.
	selectStarted chan struct{}
	selectRelease chan struct{}
	insertStarted chan struct{}
	insertRelease chan struct{}
}

// blockSelects заставляет каждый Select ждать сигнала из release.
func (f *fakeClient) blockSelects() (started, release chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selectStarted = make(chan struct{}, 8)
	f.selectRelease = make(chan struct{})
	return f.selectStarted, f.selectRelease
}

func (f *fakeClient) blockInserts() (started, release chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertStarted = make(chan struct{}, 8)
	f.insertRelease = make(chan struct{})
	return f.insertStarted, f.insertRelease
}

func wait(started, release chan struct{}) {
	if started == nil {
		return
	}
	started <- struct{}{}
	<-release
}

func newFakeClient() *fakeClient {
	return &fakeClient{rows: map[string][]types.Row{}}
}

func (f *fakeClient) Select(_ context.Context, collection string, _ []string, _ *types.Order) ([]types.Row, error) {
	f.mu.Lock()
	f.selects++
	started, release := f.selectStarted, f.selectRelease
	f.mu.Unlock()
	wait(started, release)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	out := make([]types.Row, len(f.rows[collection]))
	for i, r := range f.rows[collection] {
		out[i] = r.Clone()
	}
	return out, nil
}

func (f *fakeClient) Insert(_ context.Context, collection string, rows []types.Row) error {
	f.mu.Lock()
	f.inserts = append(f.inserts, insertCall{Collection: collection, Rows: rows})
	started, release := f.insertStarted, f.insertRelease
	f.mu.Unlock()
	wait(started, release)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertErr
}

func (f *fakeClient) Update(_ context.Context, collection string, patch types.Row, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{Collection: collection, Patch: patch, ID: id})
	return f.updateErr
}

func (f *fakeClient) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserts) + len(f.updates)
}

type staticIdentity struct {
	user session.Identity
	ok   bool
}

func (s staticIdentity) CurrentUser() (session.Identity, bool) {
	return s.user, s.ok
}
