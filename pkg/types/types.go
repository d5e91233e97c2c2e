package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

// Row - одна запись коллекции в виде "колонка -> значение".
// Используется и как результат select, и как payload для insert/update.
type Row map[string]interface{}

// Clone возвращает поверхностную копию строки.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Pick оставляет только перечисленные ключи, присутствующие в строке.
func (r Row) Pick(keys ...string) Row {
	out := make(Row, len(keys))
	for _, k := range keys {
		if v, ok := r[k]; ok {
			out[k] = v
		}
	}
	return out
}

func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case null.String:
		return v.String
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (r Row) NullString(key string) null.String {
	switch v := r[key].(type) {
	case nil:
		return null.String{}
	case null.String:
		return v
	}
	s := r.String(key)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func (r Row) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case null.Time:
		return v.Time
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r Row) NullTime(key string) null.Time {
	if v, ok := r[key].(null.Time); ok {
		return v
	}
	t := r.Time(key)
	if t.IsZero() {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

// IsBlank сообщает, что значение по ключу отсутствует или пустое.
func (r Row) IsBlank(key string) bool {
	return strings.TrimSpace(r.String(key)) == ""
}

// Order - сортировка для select.
type Order struct {
	Column     string
	Descending bool
}

func (o Order) SQL() string {
	if o.Descending {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}
