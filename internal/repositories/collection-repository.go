package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type collectionDef struct {
	columns        []string
	touchUpdatedAt bool
}

func (c collectionDef) has(column string) bool {
	for _, col := range c.columns {
		if col == column {
			return true
		}
	}
	return false
}

// collections - белый список коллекций и их колонок. Имена таблиц и колонок
// в SQL подставляются только отсюда.
var collections = map[string]collectionDef{
	"equipment": {
		columns: []string{"id", "name", "type", "status", "serial_number", "location", "notes", "last_maintenance", "created_at"},
	},
	"tickets": {
		columns: []string{"id", "title", "description", "status", "priority", "equipment_id",
			"created_by", "assigned_to", "created_at", "updated_at"},
		touchUpdatedAt: true,
	},
}

// CollectionRepository - тонкий клиент бэкенда: select/insert/update по именованным коллекциям.
type CollectionRepository struct {
	storage querier
	logger  *zap.Logger
	metrics *BackendMetrics
}

func NewCollectionRepository(storage *pgxpool.Pool, logger *zap.Logger, metrics *BackendMetrics) *CollectionRepository {
	return &CollectionRepository{storage: storage, logger: logger, metrics: metrics}
}

func (r *CollectionRepository) Select(ctx context.Context, collection string, columns []string, order *types.Order) (rows []types.Row, err error) {
	defer func(start time.Time) { r.metrics.observe(collection, "select", start, err) }(time.Now())

	query, args, err := buildSelect(collection, columns, order)
	if err != nil {
		return nil, err
	}

	pgRows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", collection, err)
	}
	defer pgRows.Close()

	fields := pgRows.FieldDescriptions()
	for pgRows.Next() {
		values, err := pgRows.Values()
		if err != nil {
			return nil, fmt.Errorf("select %s: rows.Values: %w", collection, err)
		}
		row := make(types.Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = normalizeValue(values[i])
		}
		rows = append(rows, row)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("select %s: %w", collection, err)
	}
	return rows, nil
}

func (r *CollectionRepository) Insert(ctx context.Context, collection string, rows []types.Row) (err error) {
	defer func(start time.Time) { r.metrics.observe(collection, "insert", start, err) }(time.Now())

	query, args, err := buildInsert(collection, rows)
	if err != nil {
		return err
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return err
	}
	r.logger.Debug("Вставка в коллекцию", zap.String("collection", collection), zap.Int("rows", len(rows)))
	return nil
}

func (r *CollectionRepository) Update(ctx context.Context, collection string, patch types.Row, id string) (err error) {
	defer func(start time.Time) { r.metrics.observe(collection, "update", start, err) }(time.Now())

	query, args, err := buildUpdate(collection, patch, id)
	if err != nil {
		return err
	}
	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func lookupCollection(collection string) (collectionDef, error) {
	def, ok := collections[collection]
	if !ok {
		return collectionDef{}, fmt.Errorf("%w: %q", apperrors.ErrCollectionSetup, collection)
	}
	return def, nil
}

func buildSelect(collection string, columns []string, order *types.Order) (string, []interface{}, error) {
	def, err := lookupCollection(collection)
	if err != nil {
		return "", nil, err
	}

	selected := columns
	if len(selected) == 0 || (len(selected) == 1 && selected[0] == "*") {
		selected = def.columns
	}
	for _, col := range selected {
		if !def.has(col) {
			return "", nil, fmt.Errorf("%w: %s.%s", apperrors.ErrUnknownField, collection, col)
		}
	}

	builder := sq.Select(selected...).From(collection).PlaceholderFormat(sq.Dollar)
	if order != nil && order.Column != "" {
		if !def.has(order.Column) {
			return "", nil, fmt.Errorf("%w: order by %s.%s", apperrors.ErrUnknownField, collection, order.Column)
		}
		builder = builder.OrderBy(order.SQL())
	}
	return builder.ToSql()
}

func buildInsert(collection string, rows []types.Row) (string, []interface{}, error) {
	def, err := lookupCollection(collection)
	if err != nil {
		return "", nil, err
	}
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("%w: insert into %s without rows", apperrors.ErrBadRequest, collection)
	}

	// Колонки - объединение ключей всех строк; недостающие значения - DEFAULT.
	seen := map[string]bool{}
	var columns []string
	for _, row := range rows {
		for col := range row {
			if !def.has(col) || col == "id" {
				return "", nil, fmt.Errorf("%w: %s.%s", apperrors.ErrUnknownField, collection, col)
			}
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)

	builder := sq.Insert(collection).Columns(columns...).PlaceholderFormat(sq.Dollar)
	for _, row := range rows {
		values := make([]interface{}, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				values[i] = v
			} else {
				values[i] = sq.Expr("DEFAULT")
			}
		}
		builder = builder.Values(values...)
	}
	return builder.ToSql()
}

func buildUpdate(collection string, patch types.Row, id string) (string, []interface{}, error) {
	def, err := lookupCollection(collection)
	if err != nil {
		return "", nil, err
	}
	if id == "" {
		return "", nil, fmt.Errorf("%w: update %s without id", apperrors.ErrBadRequest, collection)
	}

	columns := make([]string, 0, len(patch))
	for col := range patch {
		if !def.has(col) || col == "id" {
			return "", nil, fmt.Errorf("%w: %s.%s", apperrors.ErrUnknownField, collection, col)
		}
		columns = append(columns, col)
	}
	sort.Strings(columns)
	if len(columns) == 0 && !def.touchUpdatedAt {
		return "", nil, fmt.Errorf("%w: empty update for %s", apperrors.ErrBadRequest, collection)
	}

	builder := sq.Update(collection).PlaceholderFormat(sq.Dollar)
	for _, col := range columns {
		builder = builder.Set(col, patch[col])
	}
	if def.touchUpdatedAt {
		builder = builder.Set("updated_at", sq.Expr("now()"))
	}
	return builder.Where(sq.Eq{"id": id}).ToSql()
}

// normalizeValue приводит значения pgx к виду, удобному для схем сущностей.
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case time.Time:
		return val.UTC()
	}
	return v
}
