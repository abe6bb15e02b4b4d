package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/dto"
	"github.com/medbook/medbook-api/internal/models"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UpdateProfileRequest carries partial profile edits; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	FullName    *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,min=3"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"date_of_birth"`
	HeightCm    *int    `json:"height" validate:"omitempty,gt=0"`
	WeightKg    *int    `json:"weight" validate:"omitempty,gt=0"`
}

// UserService exposes patient profile reads and edits.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// GetProfile returns a patient profile with the age computed at read time.
func (s *UserService) GetProfile(ctx context.Context, id string) (*dto.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, classifyStoreError(err, "failed to load user")
	}
	return profileFromUser(user), nil
}

// UpdateProfile applies partial edits to a patient profile.
func (s *UserService) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*dto.UserProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, classifyStoreError(err, "failed to load user")
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date_of_birth format, expected YYYY-MM-DD")
		}
		user.DateOfBirth = &dob
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, classifyStoreError(err, "failed to update user")
	}
	return profileFromUser(user), nil
}

func profileFromUser(user *models.User) *dto.UserProfile {
	profile := &dto.UserProfile{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Phone:    user.Phone,
		Age:      user.Age(time.Now().UTC()),
		Gender:   user.Gender,
		HeightCm: user.HeightCm,
		WeightKg: user.WeightKg,
	}
	if user.DateOfBirth != nil {
		dob := user.DateOfBirth.Format(dateLayout)
		profile.DateOfBirth = &dob
	}
	return profile
}
