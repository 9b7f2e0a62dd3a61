// Package repository defines the persistence contracts the application
// layer depends on. Implementations live under infrastructure/postgres.
package repository

import (
	"context"
	"errors"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/internal/query"
)

// ErrNotFound is returned when a lookup matches no row. Repositories also
// normalize unique-index violations into ErrDuplicate so services never
// inspect driver errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Listing is the eagerly materialized result of a translated query:
// projected rows plus the unpaginated total.
type Listing struct {
	Items []map[string]any
	Total int
}

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken finds a user whose stored reset token hash matches
	// and whose reset window has not expired.
	GetByResetToken(ctx context.Context, hashed string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec *query.Spec) (*Listing, error)
}

type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Bootcamp, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec *query.Spec) (*Listing, error)
	// WithinRadius returns bootcamps within radiusMiles of the point.
	WithinRadius(ctx context.Context, lat, lng, radiusMiles float64) ([]entity.Bootcamp, error)
	SetPhoto(ctx context.Context, id, photoURL string) error
	SetAverageCost(ctx context.Context, id string, avg *float64) error
	SetAverageRating(ctx context.Context, id string, avg *float64) error
}

type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec *query.Spec) (*Listing, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error)
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
	// AverageTuition returns nil when the bootcamp has no courses.
	AverageTuition(ctx context.Context, bootcampID string) (*float64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, spec *query.Spec) (*Listing, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error)
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
	AverageRating(ctx context.Context, bootcampID string) (*float64, error)
}
