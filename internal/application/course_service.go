package application

import (
	"context"
	"errors"
	"math"

	"github.com/devtrails/campdirect/internal/domain/entity"
	repo "github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
	"github.com/devtrails/campdirect/pkg/apperr"
)

// CourseService manages courses nested under bootcamps and keeps each
// bootcamp's average cost in step with its courses.
type CourseService struct {
	Courses   repo.CourseRepository
	Bootcamps repo.BootcampRepository
}

type CourseInput struct {
	Title                string
	Description          string
	Weeks                string
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable *bool
}

func (s *CourseService) List(ctx context.Context, spec *query.Spec) (*repo.Listing, error) {
	listing, err := s.Courses.List(ctx, spec)
	if err != nil {
		return nil, apperr.Server("list courses", err)
	}
	return listing, nil
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, translateBootcampErr(err, bootcampID)
	}
	out, err := s.Courses.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, apperr.Server("list courses", err)
	}
	return out, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, translateCourseErr(err, id)
	}
	return c, nil
}

// Create adds a course to a bootcamp. The actor must own the parent
// bootcamp or be an admin.
func (s *CourseService) Create(ctx context.Context, actor *entity.User, bootcampID string, in CourseInput) (*entity.Course, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, translateBootcampErr(err, bootcampID)
	}
	if !actor.CanModify(b.UserID) {
		return nil, apperr.Forbidden("User %s is not authorized to add a course to bootcamp %s", actor.ID, bootcampID)
	}
	c := &entity.Course{
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: boolValue(in.ScholarshipAvailable),
		BootcampID:           bootcampID,
		UserID:               actor.ID,
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, apperr.Server("create course", err)
	}
	if err := s.recomputeAverageCost(ctx, bootcampID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, actor *entity.User, id string, in CourseInput) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, translateCourseErr(err, id)
	}
	if !actor.CanModify(c.UserID) {
		return nil, apperr.Forbidden("User %s is not authorized to update course %s", actor.ID, id)
	}
	if in.Title != "" {
		c.Title = in.Title
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Weeks != "" {
		c.Weeks = in.Weeks
	}
	if in.Tuition > 0 {
		c.Tuition = in.Tuition
	}
	if in.MinimumSkill != "" {
		c.MinimumSkill = in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, apperr.Server("update course", err)
	}
	if err := s.recomputeAverageCost(ctx, c.BootcampID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *entity.User, id string) error {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return translateCourseErr(err, id)
	}
	if !actor.CanModify(c.UserID) {
		return apperr.Forbidden("User %s is not authorized to delete course %s", actor.ID, id)
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return apperr.Server("delete course", err)
	}
	return s.recomputeAverageCost(ctx, c.BootcampID)
}

// recomputeAverageCost rounds the mean tuition up to the nearest ten,
// clearing the figure when the bootcamp has no courses left.
func (s *CourseService) recomputeAverageCost(ctx context.Context, bootcampID string) error {
	avg, err := s.Courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		return apperr.Server("average tuition", err)
	}
	if avg != nil {
		rounded := math.Ceil(*avg/10) * 10
		avg = &rounded
	}
	if err := s.Bootcamps.SetAverageCost(ctx, bootcampID, avg); err != nil {
		return apperr.Server("store average cost", err)
	}
	return nil
}

func translateCourseErr(err error, id string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound("Course not found with id of %s", id)
	}
	return apperr.Server("lookup course", err)
}
