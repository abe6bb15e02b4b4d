package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/medbook-api/internal/models"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

type mockAuthUserRepo struct {
	byEmail map[string]*models.User
	created *models.User
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.User)
	}
	user.ID = "user-1"
	m.byEmail[user.Email] = user
	m.created = user
	return nil
}

func newAuthFixture() (*AuthService, *mockAuthUserRepo) {
	repo := &mockAuthUserRepo{}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "medbook-test",
	})
	return svc, repo
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		Phone:       "+62-811-000-111",
		Password:    "s3cretpw",
		Gender:      "female",
		DateOfBirth: "1990-12-10",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	svc, repo := newAuthFixture()

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.RolePatient, user.Role)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "s3cretpw", repo.created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("s3cretpw")))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest())
	assertErrorCode(t, err, appErrors.ErrConflict.Code)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	bad := registerRequest()
	bad.Email = "not-an-email"
	_, err := svc.Register(ctx, bad)
	assertErrorCode(t, err, appErrors.ErrValidation.Code)

	bad = registerRequest()
	bad.DateOfBirth = "10/12/1990"
	_, err = svc.Register(ctx, bad)
	assertErrorCode(t, err, appErrors.ErrValidation.Code)

	bad = registerRequest()
	bad.Password = "short"
	_, err = svc.Register(ctx, bad)
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "s3cretpw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "user-1", resp.User.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RolePatient, claims.Role)
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "wrongpw"})
	assertErrorCode(t, err, appErrors.ErrInvalidCredentials.Code)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "s3cretpw"})
	assertErrorCode(t, err, appErrors.ErrInvalidCredentials.Code)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	svc, _ := newAuthFixture()
	other := NewAuthService(&mockAuthUserRepo{}, validator.New(), zap.NewNop(), AuthConfig{
		TokenSecret: "different-secret",
		TokenExpiry: time.Hour,
	})

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "s3cretpw"})
	require.NoError(t, err)

	_, err = other.ValidateToken(resp.AccessToken)
	assertErrorCode(t, err, appErrors.ErrUnauthorized.Code)

	_, err = svc.ValidateToken("not.a.token")
	assertErrorCode(t, err, appErrors.ErrUnauthorized.Code)
}
