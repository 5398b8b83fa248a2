package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// UserServiceImpl handles user profile operations
type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserServiceImpl
func NewUserService(userRepo repositories.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetUserByID retrieves a user by ID
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// UpdateUser updates a user's profile fields
func (s *UserServiceImpl) UpdateUser(ctx context.Context, user *models.User) error {
	existing, err := s.userRepo.FindByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	// Identity and accounting fields are not editable through this path
	user.Email = existing.Email
	user.Password = existing.Password
	user.Role = existing.Role
	user.LifetimeTickets = existing.LifetimeTickets
	user.CreatedAt = existing.CreatedAt

	if err := s.userRepo.Update(ctx, user); err != nil {
		slog.Error("Failed to update user", "error", err, "userId", user.ID)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser removes a user account
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errors.New("user not found")
		}
		slog.Error("Failed to delete user", "error", err, "userId", id)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	slog.Info("User deleted", "userId", id)
	return nil
}

// GetUserCount returns the total number of users
func (s *UserServiceImpl) GetUserCount(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
