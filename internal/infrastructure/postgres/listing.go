package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
)

// runListing executes a translated query and eagerly materializes the rows
// into generic documents keyed by the resource's exposed field names, plus
// the unpaginated total from the count builder.
func runListing(ctx context.Context, pool *pgxpool.Pool, res query.Resource, spec *query.Spec) (*repository.Listing, error) {
	sel, count := res.Build(spec)

	sqlStr, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := exposedNames(res, rows.FieldDescriptions())
	items := make([]map[string]any, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		doc := make(map[string]any, len(vals))
		for i, v := range vals {
			doc[names[i]] = presentable(v)
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	countSQL, countArgs, err := count.ToSql()
	if err != nil {
		return nil, err
	}
	var total int
	if err := pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, err
	}
	return &repository.Listing{Items: items, Total: total}, nil
}

// exposedNames maps returned SQL columns back to the resource's field
// names, falling back to the raw column name.
func exposedNames(res query.Resource, descs []pgconn.FieldDescription) []string {
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
		for _, f := range res.Fields {
			if f.Column == d.Name {
				names[i] = f.Name
				break
			}
		}
	}
	return names
}

func presentable(v any) any {
	switch x := v.(type) {
	case [16]byte:
		return uuid.UUID(x).String()
	case time.Time:
		return x.UTC()
	default:
		return v
	}
}
