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

// ReviewService manages bootcamp reviews and keeps each bootcamp's
// average rating current. Publishers cannot review; that is enforced at
// the route level, ownership is enforced here.
type ReviewService struct {
	Reviews   repo.ReviewRepository
	Bootcamps repo.BootcampRepository
}

type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

func (s *ReviewService) List(ctx context.Context, spec *query.Spec) (*repo.Listing, error) {
	listing, err := s.Reviews.List(ctx, spec)
	if err != nil {
		return nil, apperr.Server("list reviews", err)
	}
	return listing, nil
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error) {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, translateBootcampErr(err, bootcampID)
	}
	out, err := s.Reviews.ListByBootcamp(ctx, bootcampID)
	if err != nil {
		return nil, apperr.Server("list reviews", err)
	}
	return out, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, translateReviewErr(err, id)
	}
	return r, nil
}

// Create adds one review per user per bootcamp.
func (s *ReviewService) Create(ctx context.Context, actor *entity.User, bootcampID string, in ReviewInput) (*entity.Review, error) {
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, translateBootcampErr(err, bootcampID)
	}
	r := &entity.Review{
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
		BootcampID: bootcampID,
		UserID:     actor.ID,
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Duplicate("User %s has already reviewed bootcamp %s", actor.ID, bootcampID)
		}
		return nil, apperr.Server("create review", err)
	}
	if err := s.recomputeAverageRating(ctx, bootcampID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *entity.User, id string, in ReviewInput) (*entity.Review, error) {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, translateReviewErr(err, id)
	}
	if !actor.CanModify(r.UserID) {
		return nil, apperr.Forbidden("User %s is not authorized to update review %s", actor.ID, id)
	}
	if in.Title != "" {
		r.Title = in.Title
	}
	if in.Text != "" {
		r.Text = in.Text
	}
	if in.Rating != 0 {
		r.Rating = in.Rating
	}
	if err := s.Reviews.Update(ctx, r); err != nil {
		return nil, apperr.Server("update review", err)
	}
	if err := s.recomputeAverageRating(ctx, r.BootcampID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *entity.User, id string) error {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return translateReviewErr(err, id)
	}
	if !actor.CanModify(r.UserID) {
		return apperr.Forbidden("User %s is not authorized to delete review %s", actor.ID, id)
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return apperr.Server("delete review", err)
	}
	return s.recomputeAverageRating(ctx, r.BootcampID)
}

// recomputeAverageRating stores the mean rating to one decimal place,
// clearing it when the bootcamp has no reviews left.
func (s *ReviewService) recomputeAverageRating(ctx context.Context, bootcampID string) error {
	avg, err := s.Reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		return apperr.Server("average rating", err)
	}
	if avg != nil {
		rounded := math.Round(*avg*10) / 10
		avg = &rounded
	}
	if err := s.Bootcamps.SetAverageRating(ctx, bootcampID, avg); err != nil {
		return apperr.Server("store average rating", err)
	}
	return nil
}

func translateReviewErr(err error, id string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound("Review not found with id of %s", id)
	}
	return apperr.Server("lookup review", err)
}
