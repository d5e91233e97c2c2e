package crud

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/types"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Controller связывает Store и Editor в цикл экрана одной сущности.
// Все восстановимые ошибки заканчиваются здесь: они уходят в Reporter
// и возвращаются вызывающему экрану, но не выше.
type Controller[T any] struct {
	schema   *Schema[T]
	store    *Store[T]
	editor   *Editor
	client   CollectionClient
	identity IdentityProvider
	reporter Reporter
	validate *validator.Validate
	logger   *zap.Logger

	mu       sync.Mutex
	inflight int
	saving   bool
}

func NewController[T any](
	schema *Schema[T],
	client CollectionClient,
	identity IdentityProvider,
	reporter Reporter,
	validate *validator.Validate,
	logger *zap.Logger,
) *Controller[T] {
	if validate == nil {
		validate = validator.New()
	}
	return &Controller[T]{
		schema:   schema,
		store:    NewStore(client, schema),
		editor:   &Editor{},
		client:   client,
		identity: identity,
		reporter: reporter,
		validate: validate,
		logger:   logger.With(zap.String("collection", schema.Collection)),
	}
}

func (c *Controller[T]) Schema() *Schema[T] { return c.schema }

// Load перечитывает список. Busy истинно, пока идет хотя бы одна загрузка.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.trackLoad(1)
	defer c.trackLoad(-1)

	if err := c.store.Refresh(ctx); err != nil {
		c.logger.Error("Не удалось загрузить список", zap.Error(err))
		c.reportError(err, fmt.Sprintf("Failed to fetch %s", c.schema.Entity))
		return err
	}
	c.logger.Debug("Список загружен", zap.Int("count", c.store.Len()))
	return nil
}

// Items - список, отфильтрованный строкой поиска.
func (c *Controller[T]) Items(query string) []T {
	return c.store.Filter(query)
}

func (c *Controller[T]) Find(id string) (T, bool) {
	return c.store.Find(id)
}

func (c *Controller[T]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

func (c *Controller[T]) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// OpenCreate открывает пустой (или предзаполненный) черновик.
func (c *Controller[T]) OpenCreate(seed types.Row) {
	c.editor.OpenCreate(c.knownFields(seed))
}

// OpenEdit открывает черновик-копию записи из текущего списка.
func (c *Controller[T]) OpenEdit(id string) error {
	item, ok := c.store.Find(id)
	if !ok {
		return apperrors.ErrUnknownRecord
	}
	c.editor.OpenEdit(id, c.schema.Encode(item))
	return nil
}

// UpdateDraft правит черновик. Пока идет сохранение, черновик заморожен.
func (c *Controller[T]) UpdateDraft(patch types.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving {
		return apperrors.ErrSaveInProgress
	}
	return c.editor.Update(c.knownFields(patch))
}

func (c *Controller[T]) CloseEditor() {
	c.editor.Close()
}

func (c *Controller[T]) Draft() (Draft, bool) {
	return c.editor.Snapshot()
}

// Save валидирует черновик и отправляет его на бэкенд.
// Ошибка валидации: бэкенд не вызывается, редактор остается открытым.
// Ошибка бэкенда: редактор остается открытым с тем же черновиком.
// Успех: редактор закрывается, затем список перечитывается.
func (c *Controller[T]) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return apperrors.ErrSaveInProgress
	}
	draft, open := c.editor.Snapshot()
	if !open {
		c.mu.Unlock()
		return apperrors.ErrEditorClosed
	}
	c.saving = true
	c.mu.Unlock()

	err := c.persist(ctx, draft)

	c.mu.Lock()
	if err == nil {
		c.editor.Close()
	}
	c.saving = false
	c.mu.Unlock()

	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			c.logger.Debug("Черновик не прошел валидацию", zap.Strings("fields", validationErr.Fields))
		} else {
			c.logger.Error("Не удалось сохранить запись",
				zap.Stringer("mode", draft.Mode),
				zap.String("id", draft.ID),
				zap.Error(err),
			)
		}
		c.reportError(err, fmt.Sprintf("Failed to save %s", c.schema.Entity))
		return err
	}

	c.reporter.Report(Message{
		Level:  LevelSuccess,
		Title:  "Saved",
		Text:   fmt.Sprintf("%s saved", capitalize(c.schema.Entity)),
		Source: c.schema.Collection,
	})
	c.logger.Info("Запись сохранена", zap.Stringer("mode", draft.Mode), zap.String("id", draft.ID))

	// Ошибка перезагрузки уже отправлена в Reporter; сохранение при этом состоялось.
	_ = c.Load(ctx)
	return nil
}

// Reset сбрасывает список и редактор.
func (c *Controller[T]) Reset() {
	c.editor.Close()
	c.store.Reset()
}

func (c *Controller[T]) persist(ctx context.Context, draft Draft) error {
	if err := c.validateDraft(draft); err != nil {
		return err
	}

	switch draft.Mode {
	case ModeEdit:
		payload := c.normalize(draft.Fields.Pick(c.schema.MutableFields...))
		return c.client.Update(ctx, c.schema.Collection, payload, draft.ID)
	default:
		payload, err := c.insertPayload(draft)
		if err != nil {
			return err
		}
		return c.client.Insert(ctx, c.schema.Collection, []types.Row{payload})
	}
}

func (c *Controller[T]) validateDraft(draft Draft) error {
	var missing []string
	for _, field := range c.schema.RequiredFields {
		value := strings.TrimSpace(draft.Fields.String(field))
		if err := c.validate.Var(value, "required"); err != nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError(apperrors.ErrRequiredFields, missing...)
	}

	var invalid []string
	for _, field := range c.schema.Fields {
		tag, ok := c.schema.Rules[field]
		if !ok {
			continue
		}
		if err := c.validate.Var(draft.Fields.String(field), tag); err != nil {
			invalid = append(invalid, field)
		}
	}
	if len(invalid) > 0 {
		return apperrors.NewValidationError(apperrors.ErrInvalidFieldValue, invalid...)
	}
	return nil
}

func (c *Controller[T]) insertPayload(draft Draft) (types.Row, error) {
	payload := draft.Fields.Pick(c.schema.CreateFields...)
	for field, value := range c.schema.Defaults {
		if payload.IsBlank(field) {
			payload[field] = value
		}
	}
	if c.schema.CreatorField != "" {
		user, ok := c.identity.CurrentUser()
		if !ok {
			return nil, apperrors.ErrUnauthorized
		}
		payload[c.schema.CreatorField] = user.ID
	}
	return c.normalize(payload), nil
}

// normalize превращает пустые значения необязательных полей в NULL.
func (c *Controller[T]) normalize(payload types.Row) types.Row {
	for field := range payload {
		if c.schema.nullable(field) && payload.IsBlank(field) {
			payload[field] = nil
		}
	}
	return payload
}

func (c *Controller[T]) knownFields(in types.Row) types.Row {
	out := make(types.Row, len(in))
	for k, v := range in {
		if c.schema.hasField(k) {
			out[k] = v
		}
	}
	return out
}

func (c *Controller[T]) trackLoad(delta int) {
	c.mu.Lock()
	c.inflight += delta
	c.mu.Unlock()
}

func (c *Controller[T]) reportError(err error, fallback string) {
	text := err.Error()
	if text == "" {
		text = fallback
	}
	c.reporter.Report(Message{
		Level:  LevelError,
		Title:  "Error",
		Text:   text,
		Source: c.schema.Collection,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
