package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimesonly/platform-backend/internal/config"
	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles registration and login
type AuthServiceImpl struct {
	userRepo        repositories.UserRepository
	referralService ReferralService
	cfg             *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.UserRepository, referralService ReferralService, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		referralService: referralService,
		cfg:             cfg,
	}
}

// Register creates a new user account and credits the referrer when a
// referral username was supplied.
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	role := models.UserRole(req.Role)
	switch role {
	case models.RoleDime, models.RoleDancer, models.RoleFan:
	default:
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("a user with this email already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check for existing email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, errors.New("username is taken")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check for existing username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       role,
		ReferredBy: req.ReferredBy,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		slog.Error("Failed to create user", "error", err, "email", req.Email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if req.ReferredBy != "" {
		if err := s.referralService.RecordReferral(ctx, req.ReferredBy, user.ID); err != nil {
			// Registration stands even when referral credit fails
			slog.Error("Failed to record referral", "error", err, "referrer", req.ReferredBy)
		}
	}

	slog.Info("User registered", "userId", user.ID, "role", user.Role)
	user.Password = ""
	return user, nil
}

// Login verifies credentials and issues a session token
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	claims := jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(time.Second * time.Duration(s.cfg.JWT.ExpiresIn)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		slog.Error("Failed to sign session token", "error", err, "userId", user.ID)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	user.Password = ""
	return &models.LoginResponse{Token: signed, User: user}, nil
}
