package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/devtrails/campdirect/internal/domain/entity"
	repo "github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/credentials"
	"github.com/devtrails/campdirect/pkg/helpers"
	"github.com/devtrails/campdirect/pkg/mailer"
)

// AuthService owns registration, login and the password lifecycle.
// Reset emails are sent synchronously so a delivery failure can void the
// token; welcome emails go through the queue and never block the request.
type AuthService struct {
	Users         repo.UserRepository
	Tokens        *credentials.TokenManager
	Mail          mailer.Sender
	Queue         *helpers.RabbitPublisher
	Logger        *logrus.Logger
	PublicBaseURL string
}

func NewAuthService(users repo.UserRepository, tokens *credentials.TokenManager, mail mailer.Sender, queue *helpers.RabbitPublisher, logger *logrus.Logger, publicBaseURL string) *AuthService {
	return &AuthService{
		Users:         users,
		Tokens:        tokens,
		Mail:          mail,
		Queue:         queue,
		Logger:        logger,
		PublicBaseURL: publicBaseURL,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// Register creates an account and returns a session token. Self-service
// registration only grants user or publisher; admin accounts are created
// by other admins.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RolePublisher {
		return nil, "", apperr.ValidationMsg("role must be user or publisher")
	}
	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Server("hash password", err)
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Role:     role,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", apperr.Duplicate("email %s is already registered", in.Email)
		}
		return nil, "", apperr.Server("create user", err)
	}

	if s.Queue != nil {
		if qErr := s.Queue.PublishJSON(ctx, mailer.WelcomeJob(u.Email, u.Name)); qErr != nil && s.Logger != nil {
			s.Logger.WithError(qErr).WithField("email", u.Email).Warn("queue welcome email failed")
		}
	}

	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Server("issue token", err)
	}
	return u, token, nil
}

// Login exchanges credentials for a session token. All failure modes
// return the same message so callers cannot probe for known emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", apperr.Unauthenticated("Invalid Credentials")
		}
		return nil, "", apperr.Server("lookup user", err)
	}
	if !credentials.VerifyPassword(password, u.Password) {
		return nil, "", apperr.Unauthenticated("Invalid Credentials")
	}
	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, "", apperr.Server("issue token", err)
	}
	return u, token, nil
}

type UpdateDetailsInput struct {
	Name  string
	Email string
}

// UpdateDetails changes name and email for the acting principal.
func (s *AuthService) UpdateDetails(ctx context.Context, userID string, in UpdateDetailsInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, translateUserErr(err, userID)
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Duplicate("email %s is already registered", in.Email)
		}
		return nil, apperr.Server("update user", err)
	}
	return u, nil
}

// UpdatePassword verifies the current password before setting a new one
// and rotates the session token.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (string, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", translateUserErr(err, userID)
	}
	if !credentials.VerifyPassword(current, u.Password) {
		return "", apperr.Unauthenticated("Password is incorrect")
	}
	hash, err := credentials.HashPassword(next)
	if err != nil {
		return "", apperr.Server("hash password", err)
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return "", apperr.Server("update user", err)
	}
	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", apperr.Server("issue token", err)
	}
	return token, nil
}

// ForgotPassword stores a hashed reset token and emails the plaintext
// reset link. If the email cannot be sent the token is cleared so a
// half-delivered reset can never be replayed later.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("There is no user with email %s", email)
		}
		return apperr.Server("lookup user", err)
	}

	plain, hashed, expiry, err := credentials.NewResetToken()
	if err != nil {
		return apperr.Server("generate reset token", err)
	}
	u.ResetPasswordToken = hashed
	u.ResetPasswordExpire = &expiry
	if err := s.Users.Update(ctx, u); err != nil {
		return apperr.Server("store reset token", err)
	}

	resetURL := s.PublicBaseURL + "/api/v1/auth/resetpassword/" + plain
	if err := s.Mail.Send(ctx, u.Email, "Password reset token", mailer.ResetPasswordBody(resetURL)); err != nil {
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
		if clearErr := s.Users.Update(ctx, u); clearErr != nil && s.Logger != nil {
			s.Logger.WithError(clearErr).WithField("user_id", u.ID).Error("clear reset token failed")
		}
		return apperr.Upstream("Email could not be sent", err)
	}
	return nil
}

// ResetPassword consumes a reset token, sets the new password and logs
// the user in.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) (string, error) {
	u, err := s.Users.GetByResetToken(ctx, credentials.HashResetToken(plainToken))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", apperr.ValidationMsg("Invalid token")
		}
		return "", apperr.Server("lookup reset token", err)
	}
	hash, err := credentials.HashPassword(newPassword)
	if err != nil {
		return "", apperr.Server("hash password", err)
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
	if err := s.Users.Update(ctx, u); err != nil {
		return "", apperr.Server("update user", err)
	}
	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", apperr.Server("issue token", err)
	}
	return token, nil
}

func translateUserErr(err error, id string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound("User not found with id of %s", id)
	}
	return apperr.Server("lookup user", err)
}
