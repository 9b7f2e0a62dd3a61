package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
)

var ReviewColumns = query.Resource{
	Table: "reviews",
	Fields: []query.Field{
		{Name: "id", Column: "id"},
		{Name: "title", Column: "title"},
		{Name: "text", Column: "body"},
		{Name: "rating", Column: "rating"},
		{Name: "createdAt", Column: "created_at"},
		{Name: "bootcamp", Column: "bootcamp_id"},
		{Name: "user", Column: "user_id"},
	},
}

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `id, title, body, rating, created_at, bootcamp_id, user_id`

func scanReview(row interface{ Scan(...any) error }) (*entity.Review, error) {
	rv := &entity.Review{}
	err := row.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.Rating, &rv.CreatedAt, &rv.BootcampID, &rv.UserID)
	if err != nil {
		return nil, normalize(err)
	}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (title, body, rating, bootcamp_id, user_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, rv.Title, rv.Text, rv.Rating, rv.BootcampID, rv.UserID)
	return normalize(row.Scan(&rv.ID, &rv.CreatedAt))
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE reviews SET title = $1, body = $2, rating = $3 WHERE id = $4
	`, rv.Title, rv.Text, rv.Rating, rv.ID)
	if err != nil {
		return normalize(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) List(ctx context.Context, spec *query.Spec) (*repository.Listing, error) {
	return runListing(ctx, r.pool, ReviewColumns, spec)
}

func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE bootcamp_id = $1 ORDER BY created_at DESC`, bootcampID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE bootcamp_id = $1`, bootcampID)
	return err
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `SELECT avg(rating)::float8 FROM reviews WHERE bootcamp_id = $1`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
