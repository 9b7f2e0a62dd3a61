package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
)

var CourseColumns = query.Resource{
	Table: "courses",
	Fields: []query.Field{
		{Name: "id", Column: "id"},
		{Name: "title", Column: "title"},
		{Name: "description", Column: "description"},
		{Name: "weeks", Column: "weeks"},
		{Name: "tuition", Column: "tuition"},
		{Name: "minimumSkill", Column: "minimum_skill"},
		{Name: "scholarshipAvailable", Column: "scholarship_available"},
		{Name: "createdAt", Column: "created_at"},
		{Name: "bootcamp", Column: "bootcamp_id"},
		{Name: "user", Column: "user_id"},
	},
}

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, title, description, weeks, tuition, minimum_skill, scholarship_available, created_at, bootcamp_id, user_id`

func scanCourse(row interface{ Scan(...any) error }) (*entity.Course, error) {
	c := &entity.Course{}
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition,
		&c.MinimumSkill, &c.ScholarshipAvailable, &c.CreatedAt, &c.BootcampID, &c.UserID)
	if err != nil {
		return nil, normalize(err)
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill, scholarship_available, bootcamp_id, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable, c.BootcampID, c.UserID)
	return normalize(row.Scan(&c.ID, &c.CreatedAt))
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4, minimum_skill = $5, scholarship_available = $6
		WHERE id = $7
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable, c.ID)
	if err != nil {
		return normalize(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) List(ctx context.Context, spec *query.Spec) (*repository.Listing, error) {
	return runListing(ctx, r.pool, CourseColumns, spec)
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses WHERE bootcamp_id = $1 ORDER BY created_at DESC`, bootcampID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = $1`, bootcampID)
	return err
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `SELECT avg(tuition) FROM courses WHERE bootcamp_id = $1`, bootcampID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
