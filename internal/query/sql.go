package query

import (
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Field maps one exposed filter/projection name to its SQL column. Array
// marks text[] columns, whose equality/in filters become containment and
// overlap tests.
type Field struct {
	Name   string
	Column string
	Array  bool
}

// Resource binds a Spec to a concrete table. Only names present in Fields
// survive into SQL, so filter and sort input can never name an arbitrary
// identifier; values always travel as placeholders.
type Resource struct {
	Table  string
	Fields []Field
}

func (r Resource) column(name string) (string, bool) {
	f, ok := r.field(name)
	return f.Column, ok
}

func (r Resource) field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Build translates a Spec into a lazy select builder plus the matching
// count builder. Neither has been executed; the postgres listing adapter
// materializes them.
func (r Resource) Build(s *Spec) (sq.SelectBuilder, sq.SelectBuilder) {
	cols := r.projection(s.Select)
	b := psql.Select(cols...).From(r.Table)
	count := psql.Select("COUNT(*)").From(r.Table)

	for _, f := range s.Filters {
		fld, ok := r.field(f.Field)
		if !ok {
			continue
		}
		cond := condition(fld, f)
		b = b.Where(cond)
		count = count.Where(cond)
	}

	for _, o := range orderBy(r, s.Sort) {
		b = b.OrderBy(o)
	}

	if s.Limit > 0 {
		b = b.Limit(uint64(s.Limit)).Offset(uint64((s.Page - 1) * s.Limit))
	}
	return b, count
}

// projection intersects the requested fields with the allow-list. The id
// column is always retained; an empty request selects every mapped column,
// and a request naming only unknown fields collapses to id alone.
func (r Resource) projection(requested []string) []string {
	if len(requested) == 0 {
		cols := make([]string, 0, len(r.Fields))
		for _, f := range r.Fields {
			cols = append(cols, f.Column)
		}
		return cols
	}
	cols := []string{"id"}
	for _, name := range requested {
		if col, ok := r.column(name); ok && col != "id" {
			cols = append(cols, col)
		}
	}
	return cols
}

func orderBy(r Resource, keys []SortKey) []string {
	var out []string
	for _, k := range keys {
		col, ok := r.column(k.Field)
		if !ok {
			continue
		}
		if k.Desc {
			out = append(out, col+" DESC")
		} else {
			out = append(out, col+" ASC")
		}
	}
	if len(out) == 0 {
		// default: newest first
		out = append(out, "created_at DESC")
	}
	return out
}

func condition(fld Field, f Filter) sq.Sqlizer {
	col := fld.Column
	if fld.Array {
		// membership tests against a text[] column
		if f.Op == OpIn {
			return sq.Expr(col+" && ?", f.Values)
		}
		return sq.Expr(col+" @> ?", []string{f.Values[0]})
	}
	switch f.Op {
	case OpGt:
		return sq.Gt{col: coerce(f.Values[0])}
	case OpGte:
		return sq.GtOrEq{col: coerce(f.Values[0])}
	case OpLt:
		return sq.Lt{col: coerce(f.Values[0])}
	case OpLte:
		return sq.LtOrEq{col: coerce(f.Values[0])}
	case OpIn:
		vals := make([]interface{}, len(f.Values))
		for i, v := range f.Values {
			vals[i] = coerce(v)
		}
		return sq.Eq{col: vals}
	default:
		return sq.Eq{col: coerce(f.Values[0])}
	}
}

// coerce narrows a raw parameter string to the Go type pgx should bind,
// so numeric and boolean columns compare correctly.
func coerce(v string) interface{} {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}
