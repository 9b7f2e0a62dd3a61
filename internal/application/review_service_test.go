package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/pkg/apperr"
)

func reviewFixtures(t *testing.T) (*ReviewService, *fakeBootcampRepo, *entity.Bootcamp) {
	t.Helper()
	bootcamps := newFakeBootcampRepo()
	b := &entity.Bootcamp{Name: "Devworks", UserID: publisher.ID}
	require.NoError(t, bootcamps.Create(context.Background(), b))
	return &ReviewService{Reviews: newFakeReviewRepo(), Bootcamps: bootcamps}, bootcamps, b
}

func TestCreateReviewOnePerUserPerBootcamp(t *testing.T) {
	svc, _, b := reviewFixtures(t)
	reviewer := &entity.User{ID: "user-1", Role: entity.RoleUser}

	_, err := svc.Create(context.Background(), reviewer, b.ID, ReviewInput{Title: "Great", Rating: 9})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), reviewer, b.ID, ReviewInput{Title: "Still great", Rating: 10})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))

	// a different user may review the same bootcamp
	other := &entity.User{ID: "user-2", Role: entity.RoleUser}
	_, err = svc.Create(context.Background(), other, b.ID, ReviewInput{Title: "Good", Rating: 7})
	require.NoError(t, err)
}

func TestReviewsRecomputeAverageRating(t *testing.T) {
	svc, bootcamps, b := reviewFixtures(t)

	_, err := svc.Create(context.Background(), &entity.User{ID: "u1", Role: entity.RoleUser}, b.ID, ReviewInput{Title: "A", Rating: 8})
	require.NoError(t, err)
	r2, err := svc.Create(context.Background(), &entity.User{ID: "u2", Role: entity.RoleUser}, b.ID, ReviewInput{Title: "B", Rating: 6})
	require.NoError(t, err)

	avg := bootcamps.avgRating[b.ID]
	require.NotNil(t, avg)
	assert.Equal(t, 7.0, *avg)

	require.NoError(t, svc.Delete(context.Background(), &entity.User{ID: "u2", Role: entity.RoleUser}, r2.ID))
	avg = bootcamps.avgRating[b.ID]
	require.NotNil(t, avg)
	assert.Equal(t, 8.0, *avg)
}

func TestReviewOwnership(t *testing.T) {
	svc, _, b := reviewFixtures(t)
	reviewer := &entity.User{ID: "user-1", Role: entity.RoleUser}
	r, err := svc.Create(context.Background(), reviewer, b.ID, ReviewInput{Title: "Great", Rating: 9})
	require.NoError(t, err)

	stranger := &entity.User{ID: "user-2", Role: entity.RoleUser}
	_, err = svc.Update(context.Background(), stranger, r.ID, ReviewInput{Rating: 1})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	err = svc.Delete(context.Background(), stranger, r.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	// admins may moderate any review
	_, err = svc.Update(context.Background(), admin, r.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)
}

func TestReviewMissingBootcamp(t *testing.T) {
	svc, _, _ := reviewFixtures(t)
	_, err := svc.Create(context.Background(), &entity.User{ID: "u1", Role: entity.RoleUser}, "bootcamp-missing", ReviewInput{Rating: 8})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
