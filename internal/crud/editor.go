package crud

import (
	"sync"

	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/types"
)

// Mode - режим черновика, фиксируется при открытии редактора.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Draft - черновик записи. ID задан только в режиме ModeEdit.
type Draft struct {
	Mode   Mode      `json:"mode"`
	ID     string    `json:"id,omitempty"`
	Fields types.Row `json:"fields"`
}

// Editor - состояние модального редактора.
type Editor struct {
	mu    sync.Mutex
	draft Draft
	open  bool
}

// OpenCreate открывает редактор на создание. Ключ id в seed игнорируется:
// режим определяется только способом открытия.
func (e *Editor) OpenCreate(seed types.Row) {
	fields := make(types.Row, len(seed))
	for k, v := range seed {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = Draft{Mode: ModeCreate, Fields: fields}
	e.open = true
}

// OpenEdit открывает редактор на правку копии существующей записи.
func (e *Editor) OpenEdit(id string, record types.Row) {
	fields := record.Clone()
	delete(fields, "id")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = Draft{Mode: ModeEdit, ID: id, Fields: fields}
	e.open = true
}

// Update поверхностно вливает patch в черновик. Не валидирует.
func (e *Editor) Update(patch types.Row) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return apperrors.ErrEditorClosed
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		e.draft.Fields[k] = v
	}
	return nil
}

func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = Draft{}
	e.open = false
}

// Snapshot возвращает копию черновика и признак открытости.
func (e *Editor) Snapshot() (Draft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return Draft{}, false
	}
	d := e.draft
	d.Fields = e.draft.Fields.Clone()
	return d, true
}

func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}
