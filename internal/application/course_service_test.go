package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/pkg/apperr"
)

func courseFixtures(t *testing.T) (*CourseService, *fakeBootcampRepo, *entity.Bootcamp) {
	t.Helper()
	bootcamps := newFakeBootcampRepo()
	b := &entity.Bootcamp{Name: "Devworks", UserID: publisher.ID}
	require.NoError(t, bootcamps.Create(context.Background(), b))
	return &CourseService{Courses: newFakeCourseRepo(), Bootcamps: bootcamps}, bootcamps, b
}

func TestCreateCourseRequiresParentOwnership(t *testing.T) {
	svc, _, b := courseFixtures(t)

	_, err := svc.Create(context.Background(), publisher2, b.ID, CourseInput{Title: "Go 101", Tuition: 5000})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	c, err := svc.Create(context.Background(), publisher, b.ID, CourseInput{Title: "Go 101", Tuition: 5000})
	require.NoError(t, err)
	assert.Equal(t, b.ID, c.BootcampID)
	assert.Equal(t, publisher.ID, c.UserID)
}

func TestCreateCourseMissingBootcamp(t *testing.T) {
	svc, _, _ := courseFixtures(t)
	_, err := svc.Create(context.Background(), publisher, "bootcamp-missing", CourseInput{Title: "Go 101"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAverageCostRoundsUpToTen(t *testing.T) {
	svc, bootcamps, b := courseFixtures(t)

	_, err := svc.Create(context.Background(), publisher, b.ID, CourseInput{Title: "Go 101", Tuition: 8000})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), publisher, b.ID, CourseInput{Title: "Go 201", Tuition: 9005})
	require.NoError(t, err)

	avg := bootcamps.avgCosts[b.ID]
	require.NotNil(t, avg)
	// mean 8502.5 rounds up to the nearest ten
	assert.Equal(t, 8510.0, *avg)
}

func TestDeleteLastCourseClearsAverageCost(t *testing.T) {
	svc, bootcamps, b := courseFixtures(t)

	c, err := svc.Create(context.Background(), publisher, b.ID, CourseInput{Title: "Go 101", Tuition: 8000})
	require.NoError(t, err)
	require.NotNil(t, bootcamps.avgCosts[b.ID])

	require.NoError(t, svc.Delete(context.Background(), publisher, c.ID))
	assert.Nil(t, bootcamps.avgCosts[b.ID])
}

func TestUpdateCourseOwnership(t *testing.T) {
	svc, _, b := courseFixtures(t)
	c, err := svc.Create(context.Background(), publisher, b.ID, CourseInput{Title: "Go 101", Tuition: 5000})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), publisher2, c.ID, CourseInput{Title: "Hijacked"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := svc.Update(context.Background(), admin, c.ID, CourseInput{Title: "Go 102"})
	require.NoError(t, err)
	assert.Equal(t, "Go 102", updated.Title)
}

func TestPartialUpdateKeepsScholarshipFlag(t *testing.T) {
	svc, _, b := courseFixtures(t)
	on := true
	c, err := svc.Create(context.Background(), publisher, b.ID, CourseInput{Title: "Go 101", Tuition: 5000, ScholarshipAvailable: &on})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), publisher, c.ID, CourseInput{Tuition: 5500})
	require.NoError(t, err)
	assert.True(t, updated.ScholarshipAvailable)
	assert.Equal(t, 5500.0, updated.Tuition)
}
