package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"github.com/dimesonly/platform-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ReferralServiceImpl implements ReferralService
var _ ReferralService = (*ReferralServiceImpl)(nil)

// ReferralServiceImpl tracks signups credited to referrers. Weekly referral
// counts feed the quarterly compliance quota.
type ReferralServiceImpl struct {
	referralRepo repositories.ReferralRepository
	userRepo     repositories.UserRepository
}

// NewReferralService creates a new ReferralServiceImpl
func NewReferralService(referralRepo repositories.ReferralRepository, userRepo repositories.UserRepository) *ReferralServiceImpl {
	return &ReferralServiceImpl{
		referralRepo: referralRepo,
		userRepo:     userRepo,
	}
}

// RecordReferral credits a signup to a referrer
func (s *ReferralServiceImpl) RecordReferral(ctx context.Context, referrerUsername string, referredUserID primitive.ObjectID) error {
	if _, err := s.userRepo.FindByUsername(ctx, referrerUsername); err != nil {
		return fmt.Errorf("referrer %q not found: %w", referrerUsername, err)
	}

	referral := &models.Referral{
		ReferrerUsername: referrerUsername,
		ReferredUserID:   referredUserID,
		CreatedAt:        time.Now(),
	}
	if err := s.referralRepo.Create(ctx, referral); err != nil {
		return fmt.Errorf("failed to record referral: %w", err)
	}

	slog.Info("Referral recorded", "referrer", utils.MaskUsername(referrerUsername), "referredUserId", referredUserID)
	return nil
}

// GetReferrals lists referrals credited to a referrer, newest first
func (s *ReferralServiceImpl) GetReferrals(ctx context.Context, referrerUsername string, page, limit int) ([]*models.Referral, error) {
	referrals, err := s.referralRepo.FindByReferrer(ctx, referrerUsername, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve referrals: %w", err)
	}
	return referrals, nil
}

// CountReferralsInWeek counts referrals credited during the week containing
// weekOf
func (s *ReferralServiceImpl) CountReferralsInWeek(ctx context.Context, referrerUsername string, weekOf time.Time) (int64, error) {
	weekStart := utils.WeekStart(weekOf)
	return s.referralRepo.CountByReferrerInWindow(ctx, referrerUsername, weekStart, weekStart.AddDate(0, 0, 7))
}
