package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
)

// UserColumns is the filter/projection allow-list for user listings.
// Password and reset token columns are deliberately absent.
var UserColumns = query.Resource{
	Table: "users",
	Fields: []query.Field{
		{Name: "id", Column: "id"},
		{Name: "name", Column: "name"},
		{Name: "email", Column: "email"},
		{Name: "role", Column: "role"},
		{Name: "createdAt", Column: "created_at"},
	},
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, role, password_hash, reset_password_token, reset_password_expire, created_at`

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Role, u.Password)
	return normalize(row.Scan(&u.ID, &u.CreatedAt))
}

func (r *UserRepository) scanOne(ctx context.Context, sql string, args ...any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, sql, args...)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.CreatedAt); err != nil {
		return nil, normalize(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetByResetToken(ctx context.Context, hashed string) (*entity.User, error) {
	return r.scanOne(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > now()
	`, hashed)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, password_hash = $4,
		    reset_password_token = $5, reset_password_expire = $6
		WHERE id = $7
	`, u.Name, u.Email, u.Role, u.Password, u.ResetPasswordToken, u.ResetPasswordExpire, u.ID)
	if err != nil {
		return normalize(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, spec *query.Spec) (*repository.Listing, error) {
	return runListing(ctx, r.pool, UserColumns, spec)
}

var _ repository.UserRepository = (*UserRepository)(nil)
