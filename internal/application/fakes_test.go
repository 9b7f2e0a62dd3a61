package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/devtrails/campdirect/internal/domain/entity"
	repo "github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
	"github.com/devtrails/campdirect/pkg/geocode"
)

type fakeUserRepo struct {
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) nextID() string {
	f.seq++
	return "user-" + strconv.Itoa(f.seq)
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = f.nextID()
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, hashed string) (*entity.User, error) {
	now := time.Now()
	for _, u := range f.users {
		if u.ResetPasswordToken == hashed && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *query.Spec) (*repo.Listing, error) {
	items := make([]map[string]any, 0, len(f.users))
	for _, u := range f.users {
		items = append(items, map[string]any{"id": u.ID, "email": u.Email})
	}
	return &repo.Listing{Items: items, Total: len(items)}, nil
}

type fakeBootcampRepo struct {
	bootcamps map[string]*entity.Bootcamp
	seq       int
	avgCosts  map[string]*float64
	avgRating map[string]*float64
}

func newFakeBootcampRepo() *fakeBootcampRepo {
	return &fakeBootcampRepo{
		bootcamps: map[string]*entity.Bootcamp{},
		avgCosts:  map[string]*float64{},
		avgRating: map[string]*float64{},
	}
}

func (f *fakeBootcampRepo) Create(_ context.Context, b *entity.Bootcamp) error {
	for _, existing := range f.bootcamps {
		if existing.Name == b.Name {
			return repo.ErrDuplicate
		}
	}
	f.seq++
	b.ID = "bootcamp-" + strconv.Itoa(f.seq)
	b.CreatedAt = time.Now()
	cp := *b
	f.bootcamps[b.ID] = &cp
	return nil
}

func (f *fakeBootcampRepo) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	b, ok := f.bootcamps[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBootcampRepo) GetByUserID(_ context.Context, userID string) (*entity.Bootcamp, error) {
	for _, b := range f.bootcamps {
		if b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeBootcampRepo) Update(_ context.Context, b *entity.Bootcamp) error {
	if _, ok := f.bootcamps[b.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *b
	f.bootcamps[b.ID] = &cp
	return nil
}

func (f *fakeBootcampRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.bootcamps[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.bootcamps, id)
	return nil
}

func (f *fakeBootcampRepo) List(_ context.Context, _ *query.Spec) (*repo.Listing, error) {
	items := make([]map[string]any, 0, len(f.bootcamps))
	for _, b := range f.bootcamps {
		items = append(items, map[string]any{"id": b.ID, "name": b.Name})
	}
	return &repo.Listing{Items: items, Total: len(items)}, nil
}

func (f *fakeBootcampRepo) WithinRadius(_ context.Context, _, _, _ float64) ([]entity.Bootcamp, error) {
	out := make([]entity.Bootcamp, 0, len(f.bootcamps))
	for _, b := range f.bootcamps {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBootcampRepo) SetPhoto(_ context.Context, id, photoURL string) error {
	b, ok := f.bootcamps[id]
	if !ok {
		return repo.ErrNotFound
	}
	b.Photo = photoURL
	return nil
}

func (f *fakeBootcampRepo) SetAverageCost(_ context.Context, id string, avg *float64) error {
	f.avgCosts[id] = avg
	if b, ok := f.bootcamps[id]; ok {
		b.AverageCost = avg
	}
	return nil
}

func (f *fakeBootcampRepo) SetAverageRating(_ context.Context, id string, avg *float64) error {
	f.avgRating[id] = avg
	if b, ok := f.bootcamps[id]; ok {
		b.AverageRating = avg
	}
	return nil
}

type fakeCourseRepo struct {
	courses map[string]*entity.Course
	seq     int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[string]*entity.Course{}}
}

func (f *fakeCourseRepo) Create(_ context.Context, c *entity.Course) error {
	f.seq++
	c.ID = "course-" + strconv.Itoa(f.seq)
	c.CreatedAt = time.Now()
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseRepo) Update(_ context.Context, c *entity.Course) error {
	if _, ok := f.courses[c.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *c
	f.courses[c.ID] = &cp
	return nil
}

func (f *fakeCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.courses[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) List(_ context.Context, _ *query.Spec) (*repo.Listing, error) {
	items := make([]map[string]any, 0, len(f.courses))
	for _, c := range f.courses {
		items = append(items, map[string]any{"id": c.ID, "title": c.Title})
	}
	return &repo.Listing{Items: items, Total: len(items)}, nil
}

func (f *fakeCourseRepo) ListByBootcamp(_ context.Context, bootcampID string) ([]entity.Course, error) {
	var out []entity.Course
	for _, c := range f.courses {
		if c.BootcampID == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	for id, c := range f.courses {
		if c.BootcampID == bootcampID {
			delete(f.courses, id)
		}
	}
	return nil
}

func (f *fakeCourseRepo) AverageTuition(_ context.Context, bootcampID string) (*float64, error) {
	var sum float64
	var n int
	for _, c := range f.courses {
		if c.BootcampID == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

type fakeReviewRepo struct {
	reviews map[string]*entity.Review
	seq     int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*entity.Review{}}
}

func (f *fakeReviewRepo) Create(_ context.Context, r *entity.Review) error {
	for _, existing := range f.reviews {
		if existing.BootcampID == r.BootcampID && existing.UserID == r.UserID {
			return repo.ErrDuplicate
		}
	}
	f.seq++
	r.ID = "review-" + strconv.Itoa(f.seq)
	r.CreatedAt = time.Now()
	cp := *r
	f.reviews[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, r *entity.Review) error {
	if _, ok := f.reviews[r.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *r
	f.reviews[r.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) List(_ context.Context, _ *query.Spec) (*repo.Listing, error) {
	items := make([]map[string]any, 0, len(f.reviews))
	for _, r := range f.reviews {
		items = append(items, map[string]any{"id": r.ID, "title": r.Title})
	}
	return &repo.Listing{Items: items, Total: len(items)}, nil
}

func (f *fakeReviewRepo) ListByBootcamp(_ context.Context, bootcampID string) ([]entity.Review, error) {
	var out []entity.Review
	for _, r := range f.reviews {
		if r.BootcampID == bootcampID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	for id, r := range f.reviews {
		if r.BootcampID == bootcampID {
			delete(f.reviews, id)
		}
	}
	return nil
}

func (f *fakeReviewRepo) AverageRating(_ context.Context, bootcampID string) (*float64, error) {
	var sum float64
	var n int
	for _, r := range f.reviews {
		if r.BootcampID == bootcampID {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

type fakeGeocoder struct {
	loc geocode.Location
	err error
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (geocode.Location, error) {
	if f.err != nil {
		return geocode.Location{}, f.err
	}
	return f.loc, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

var errMailDown = errors.New("smtp unavailable")
