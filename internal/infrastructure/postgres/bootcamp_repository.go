package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
)

// BootcampColumns is the filter/projection allow-list for bootcamp
// listings.
var BootcampColumns = query.Resource{
	Table: "bootcamps",
	Fields: []query.Field{
		{Name: "id", Column: "id"},
		{Name: "name", Column: "name"},
		{Name: "slug", Column: "slug"},
		{Name: "description", Column: "description"},
		{Name: "website", Column: "website"},
		{Name: "phone", Column: "phone"},
		{Name: "email", Column: "email"},
		{Name: "city", Column: "city"},
		{Name: "state", Column: "state"},
		{Name: "zipcode", Column: "zipcode"},
		{Name: "careers", Column: "careers", Array: true},
		{Name: "averageRating", Column: "average_rating"},
		{Name: "averageCost", Column: "average_cost"},
		{Name: "photo", Column: "photo"},
		{Name: "housing", Column: "housing"},
		{Name: "jobAssistance", Column: "job_assistance"},
		{Name: "jobGuarantee", Column: "job_guarantee"},
		{Name: "acceptGi", Column: "accept_gi"},
		{Name: "createdAt", Column: "created_at"},
		{Name: "user", Column: "user_id"},
	},
}

type BootcampRepository struct {
	pool *pgxpool.Pool
}

func NewBootcampRepository(pool *pgxpool.Pool) *BootcampRepository {
	return &BootcampRepository{pool: pool}
}

const bootcampColumns = `id, name, slug, description, website, phone, email,
	latitude, longitude, formatted_address, street, city, state, zipcode, country,
	careers, average_rating, average_cost, photo,
	housing, job_assistance, job_guarantee, accept_gi, created_at, user_id`

func scanBootcamp(row interface{ Scan(...any) error }) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.Website, &b.Phone, &b.Email,
		&b.Location.Latitude, &b.Location.Longitude, &b.Location.FormattedAddress,
		&b.Location.Street, &b.Location.City, &b.Location.State, &b.Location.Zipcode, &b.Location.Country,
		&b.Careers, &b.AverageRating, &b.AverageCost, &b.Photo,
		&b.Housing, &b.JobAssistance, &b.JobGuarantee, &b.AcceptGi, &b.CreatedAt, &b.UserID)
	if err != nil {
		return nil, normalize(err)
	}
	return b, nil
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bootcamps (name, slug, description, website, phone, email,
			latitude, longitude, formatted_address, street, city, state, zipcode, country,
			careers, photo, housing, job_assistance, job_guarantee, accept_gi, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING id, created_at
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email,
		b.Location.Latitude, b.Location.Longitude, b.Location.FormattedAddress,
		b.Location.Street, b.Location.City, b.Location.State, b.Location.Zipcode, b.Location.Country,
		b.Careers, b.Photo, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.UserID)
	return normalize(row.Scan(&b.ID, &b.CreatedAt))
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return scanBootcamp(r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = $1`, id))
}

func (r *BootcampRepository) GetByUserID(ctx context.Context, userID string) (*entity.Bootcamp, error) {
	return scanBootcamp(r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE user_id = $1 LIMIT 1`, userID))
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, website = $4, phone = $5, email = $6,
		    latitude = $7, longitude = $8, formatted_address = $9, street = $10,
		    city = $11, state = $12, zipcode = $13, country = $14,
		    careers = $15, housing = $16, job_assistance = $17, job_guarantee = $18, accept_gi = $19
		WHERE id = $20
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email,
		b.Location.Latitude, b.Location.Longitude, b.Location.FormattedAddress, b.Location.Street,
		b.Location.City, b.Location.State, b.Location.Zipcode, b.Location.Country,
		b.Careers, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.ID)
	if err != nil {
		return normalize(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) List(ctx context.Context, spec *query.Spec) (*repository.Listing, error) {
	return runListing(ctx, r.pool, BootcampColumns, spec)
}

// WithinRadius filters by great-circle distance. 3963 is the Earth's
// radius in miles, matching the public API's distance unit.
func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, radiusMiles float64) ([]entity.Bootcamp, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bootcampColumns+` FROM bootcamps
		WHERE acos(least(1.0, greatest(-1.0,
			sin(radians($1)) * sin(radians(latitude)) +
			cos(radians($1)) * cos(radians(latitude)) * cos(radians(longitude - $2))
		))) <= $3 / 3963.0
		ORDER BY created_at DESC
	`, lat, lng, radiusMiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BootcampRepository) SetPhoto(ctx context.Context, id, photoURL string) error {
	res, err := r.pool.Exec(ctx, `UPDATE bootcamps SET photo = $1 WHERE id = $2`, photoURL, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id string, avg *float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE bootcamps SET average_cost = $1 WHERE id = $2`, avg, id)
	return err
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, avg *float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE bootcamps SET average_rating = $1 WHERE id = $2`, avg, id)
	return err
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
