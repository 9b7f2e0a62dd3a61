package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/credentials"
)

func newAuthService(users *fakeUserRepo, mail *fakeMailer) *AuthService {
	return &AuthService{
		Users:         users,
		Tokens:        credentials.NewTokenManager("test-secret", time.Hour),
		Mail:          mail,
		PublicBaseURL: "http://localhost:5000",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeMailer{})

	u, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "123456",
		Role:     entity.RolePublisher,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RolePublisher, u.Role)

	uid, err := svc.Tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), &fakeMailer{})

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Mallory",
		Email:    "mallory@example.com",
		Password: "123456",
		Role:     entity.RoleAdmin,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeMailer{})

	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "dup@example.com", Password: "123456"})
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), RegisterInput{Name: "B", Email: "dup@example.com", Password: "123456"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindDuplicate))
}

func TestLoginUniformFailureMessage(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeMailer{})
	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "correct-pw"})
	require.NoError(t, err)

	_, _, wrongPw := svc.Login(context.Background(), "a@example.com", "bad-pw")
	_, _, unknown := svc.Login(context.Background(), "nobody@example.com", "bad-pw")

	require.Error(t, wrongPw)
	require.Error(t, unknown)
	assert.True(t, apperr.Is(wrongPw, apperr.KindUnauthenticated))
	assert.True(t, apperr.Is(unknown, apperr.KindUnauthenticated))
	// unknown email and wrong password are indistinguishable to the caller
	assert.Equal(t, "Invalid Credentials", wrongPw.Error())
	assert.Equal(t, "Invalid Credentials", unknown.Error())
}

func TestUpdatePasswordRequiresCurrent(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeMailer{})
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "old-pw"})
	require.NoError(t, err)

	_, err = svc.UpdatePassword(context.Background(), u.ID, "wrong", "new-pw")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))

	token, err := svc.UpdatePassword(context.Background(), u.ID, "old-pw", "new-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "a@example.com", "new-pw")
	assert.NoError(t, err)
}

func TestForgotPasswordStoresHashedToken(t *testing.T) {
	users := newFakeUserRepo()
	mail := &fakeMailer{}
	svc := newAuthService(users, mail)
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), "a@example.com"))
	assert.Equal(t, []string{"a@example.com"}, mail.sent)

	stored := users.users[u.ID]
	assert.NotEmpty(t, stored.ResetPasswordToken)
	require.NotNil(t, stored.ResetPasswordExpire)
	assert.True(t, stored.ResetPasswordExpire.After(time.Now()))
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), &fakeMailer{})
	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestForgotPasswordMailFailureClearsToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeMailer{err: errMailDown})
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "pw123456"})
	require.NoError(t, err)

	err = svc.ForgotPassword(context.Background(), "a@example.com")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))

	stored := users.users[u.ID]
	assert.Empty(t, stored.ResetPasswordToken)
	assert.Nil(t, stored.ResetPasswordExpire)
}

func TestResetPasswordConsumesToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakeMailer{})
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "old-pw"})
	require.NoError(t, err)

	plain, hashed, expiry, err := credentials.NewResetToken()
	require.NoError(t, err)
	stored := users.users[u.ID]
	stored.ResetPasswordToken = hashed
	stored.ResetPasswordExpire = &expiry

	token, err := svc.ResetPassword(context.Background(), plain, "new-pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	after := users.users[u.ID]
	assert.Empty(t, after.ResetPasswordToken)
	assert.Nil(t, after.ResetPasswordExpire)

	_, _, err = svc.Login(context.Background(), "a@example.com", "new-pw")
	assert.NoError(t, err)

	// token is single use
	_, err = svc.ResetPassword(context.Background(), plain, "another-pw")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
