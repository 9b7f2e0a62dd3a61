package application

import (
	"context"
	"errors"

	"github.com/devtrails/campdirect/internal/domain/entity"
	repo "github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/credentials"
)

// UserService is the admin-only account management surface. Routes are
// gated by role; the service assumes the actor is already an admin.
type UserService struct {
	Users repo.UserRepository
}

type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

func (s *UserService) List(ctx context.Context, spec *query.Spec) (*repo.Listing, error) {
	listing, err := s.Users.List(ctx, spec)
	if err != nil {
		return nil, apperr.Server("list users", err)
	}
	return listing, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, translateUserErr(err, id)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RolePublisher && role != entity.RoleAdmin {
		return nil, apperr.ValidationMsg("role %q is not recognized", role)
	}
	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Server("hash password", err)
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Role:     role,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Duplicate("email %s is already registered", in.Email)
		}
		return nil, apperr.Server("create user", err)
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UserInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, translateUserErr(err, id)
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		if in.Role != entity.RoleUser && in.Role != entity.RolePublisher && in.Role != entity.RoleAdmin {
			return nil, apperr.ValidationMsg("role %q is not recognized", in.Role)
		}
		u.Role = in.Role
	}
	if in.Password != "" {
		hash, hErr := credentials.HashPassword(in.Password)
		if hErr != nil {
			return nil, apperr.Server("hash password", hErr)
		}
		u.Password = hash
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Duplicate("email %s is already registered", in.Email)
		}
		return nil, apperr.Server("update user", err)
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("User not found with id of %s", id)
		}
		return apperr.Server("delete user", err)
	}
	return nil
}
