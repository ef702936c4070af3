package core

import (
	"context"
	"errors"
	"fmt"

	"groupbuy-backend-go/internal/db"
	"groupbuy-backend-go/internal/models"
)

// ErrUserNotFound is returned when an operation targets a user that does not
// exist in the users collection.
var ErrUserNotFound = errors.New("user not found")

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(ur db.UserRepository) UserService {
	return &userService{userRepo: ur}
}

// GetOrCreate retrieves the user profile for the given Firebase UID, creating
// a customer profile on first sign-in. The returned bool is true when a new
// profile was created.
func (s *userService) GetOrCreate(ctx context.Context, userID, email, displayName, photoURL string) (*models.User, bool, error) {
	if userID == "" {
		return nil, false, errors.New("userID cannot be empty")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}

	user = &models.User{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Role:        models.UserRoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to create user profile for '%s': %w", userID, err)
	}
	return user, true, nil
}

// GetByID retrieves a user profile.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}
	return user, nil
}

// ListUsers returns every user profile for the admin customer list.
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetRestricted toggles the ordering restriction on a user. Restricted users
// keep their session and history but checkout refuses them.
func (s *userService) SetRestricted(ctx context.Context, userID string, restricted bool) error {
	if err := s.userRepo.SetRestricted(ctx, userID, restricted); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return fmt.Errorf("failed to set restriction for user '%s': %w", userID, err)
	}
	return nil
}

// SetRole changes a user's role.
func (s *userService) SetRole(ctx context.Context, userID string, role models.UserRole) error {
	if role != models.UserRoleAdmin && role != models.UserRoleCustomer {
		return fmt.Errorf("invalid role '%s'", role)
	}
	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return fmt.Errorf("failed to set role for user '%s': %w", userID, err)
	}
	return nil
}
