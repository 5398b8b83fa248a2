package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimesonly/platform-backend/internal/jackpot"
	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"github.com/dimesonly/platform-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure EarningsServiceImpl implements EarningsService
var _ EarningsService = (*EarningsServiceImpl)(nil)

// EarningsServiceImpl tracks weekly performer activity and computes the
// quarterly compliance payment
type EarningsServiceImpl struct {
	userRepo      repositories.UserRepository
	weeklyRepo    repositories.WeeklyEarningRepository
	quarterlyRepo repositories.QuarterlyPaymentRepository
	tipRepo       repositories.TipRepository
	eventRepo     repositories.EventRepository
}

// NewEarningsService creates a new EarningsServiceImpl
func NewEarningsService(
	userRepo repositories.UserRepository,
	weeklyRepo repositories.WeeklyEarningRepository,
	quarterlyRepo repositories.QuarterlyPaymentRepository,
	tipRepo repositories.TipRepository,
	eventRepo repositories.EventRepository,
) *EarningsServiceImpl {
	return &EarningsServiceImpl{
		userRepo:      userRepo,
		weeklyRepo:    weeklyRepo,
		quarterlyRepo: quarterlyRepo,
		tipRepo:       tipRepo,
		eventRepo:     eventRepo,
	}
}

// UpsertWeekly records activity counts for the week containing weekOf. The
// tips total for the week is recomputed from the ledger, not taken from the
// caller.
func (s *EarningsServiceImpl) UpsertWeekly(ctx context.Context, userID primitive.ObjectID, weekOf time.Time, counts WeeklyActivityCounts) (*models.WeeklyEarning, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	weekStart := utils.WeekStart(weekOf)
	weekEnd := weekStart.AddDate(0, 0, 7)

	tips, err := s.tipRepo.FindByTippedUserInWindow(ctx, userID, weekStart, weekEnd)
	if err != nil {
		slog.Error("Failed to fetch tips for weekly earning", "error", err, "userId", userID)
		return nil, fmt.Errorf("failed to fetch weekly tips: %w", err)
	}
	tipsTotal := 0.0
	for _, tip := range tips {
		tipsTotal += tip.Amount
	}

	earning := &models.WeeklyEarning{
		UserID:        userID,
		WeekStart:     weekStart,
		ReferralCount: counts.Referrals,
		PhotoCount:    counts.Photos,
		VideoCount:    counts.Videos,
		MessageCount:  counts.Messages,
		EventCount:    counts.Events,
		TipsTotal:     tipsTotal,
	}
	if err := s.weeklyRepo.Upsert(ctx, earning); err != nil {
		slog.Error("Failed to upsert weekly earning", "error", err, "userId", userID, "weekStart", weekStart)
		return nil, fmt.Errorf("failed to save weekly earning: %w", err)
	}

	slog.Info("Weekly earning recorded", "userId", userID, "weekStart", weekStart, "tipsTotal", tipsTotal)
	return earning, nil
}

// GetWeekly retrieves the earning record for the week containing weekOf
func (s *EarningsServiceImpl) GetWeekly(ctx context.Context, userID primitive.ObjectID, weekOf time.Time) (*models.WeeklyEarning, error) {
	earning, err := s.weeklyRepo.FindByUserAndWeek(ctx, userID, utils.WeekStart(weekOf))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("no earning record for the specified week")
		}
		return nil, fmt.Errorf("failed to retrieve weekly earning: %w", err)
	}
	return earning, nil
}

// QuarterlyStatement computes a performer's compliance position for the
// quarter containing asOf. Weeks with no record count fully against the
// quota. Non-performer roles get Eligible=false and no figures; that is a
// normal outcome, not an error.
func (s *EarningsServiceImpl) QuarterlyStatement(ctx context.Context, userID primitive.ObjectID, asOf time.Time) (*QuarterlyStatement, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	quarter := utils.QuarterOf(asOf)
	if !jackpot.IsEligible(user.Role) {
		slog.Info("Quarterly statement requested for ineligible role", "userId", userID, "role", user.Role)
		return &QuarterlyStatement{UserID: userID, Quarter: quarter, Eligible: false}, nil
	}

	quarterStart, quarterEnd := utils.QuarterBounds(asOf)

	// The first week of a quarter usually starts before the quarter itself,
	// so the fetch window opens at that week's Monday.
	earnings, err := s.weeklyRepo.FindByUserInWindow(ctx, userID, utils.WeekStart(quarterStart), quarterEnd)
	if err != nil {
		slog.Error("Failed to fetch weekly earnings for quarter", "error", err, "userId", userID, "quarter", quarter)
		return nil, fmt.Errorf("failed to fetch weekly earnings: %w", err)
	}
	byWeek := make(map[time.Time]*models.WeeklyEarning, len(earnings))
	for _, earning := range earnings {
		byWeek[earning.WeekStart.UTC()] = earning
	}

	// Walk every full week of the quarter; missing records deduct at full
	// weekly quota per category.
	missed := map[jackpot.ComplianceCategory]int{}
	for weekStart := utils.WeekStart(quarterStart); weekStart.Before(quarterEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		var counts WeeklyActivityCounts
		if earning, ok := byWeek[weekStart]; ok {
			counts = WeeklyActivityCounts{
				Referrals: earning.ReferralCount,
				Photos:    earning.PhotoCount,
				Videos:    earning.VideoCount,
				Messages:  earning.MessageCount,
			}
		}
		for category, actual := range map[jackpot.ComplianceCategory]int{
			jackpot.CategoryReferrals: counts.Referrals,
			jackpot.CategoryPhotos:    counts.Photos,
			jackpot.CategoryVideos:    counts.Videos,
			jackpot.CategoryMessages:  counts.Messages,
		} {
			if actual < jackpot.WeeklyTarget {
				missed[category] += jackpot.WeeklyTarget - actual
			}
		}
	}

	var deductions []models.DeductionLine
	total := 0.0
	for _, category := range []jackpot.ComplianceCategory{
		jackpot.CategoryReferrals, jackpot.CategoryPhotos, jackpot.CategoryVideos, jackpot.CategoryMessages,
	} {
		if missed[category] == 0 {
			continue
		}
		amount := float64(missed[category]) * jackpot.WeeklyMissDeduction
		deductions = append(deductions, models.DeductionLine{
			Category: string(category),
			Missed:   missed[category],
			Amount:   amount,
		})
		total += amount
	}

	// Events are a monthly quota: one hosted event per month of the quarter
	eventsMissed := 0
	eventsDeduction := 0.0
	for monthStart := quarterStart; monthStart.Before(quarterEnd); monthStart = monthStart.AddDate(0, 1, 0) {
		events, err := s.eventRepo.FindByHostInWindow(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
		if err != nil {
			slog.Error("Failed to fetch events for month", "error", err, "userId", userID, "month", monthStart)
			return nil, fmt.Errorf("failed to fetch events: %w", err)
		}
		deduction := jackpot.MonthlyEventDeduction(len(events))
		if deduction > 0 {
			eventsMissed += jackpot.MonthlyEventTarget - len(events)
			eventsDeduction += deduction
		}
	}
	if eventsDeduction > 0 {
		deductions = append(deductions, models.DeductionLine{
			Category: string(jackpot.CategoryEvents),
			Missed:   eventsMissed,
			Amount:   eventsDeduction,
		})
		total += eventsDeduction
	}

	return &QuarterlyStatement{
		UserID:          userID,
		Quarter:         quarter,
		Eligible:        true,
		BaseAmount:      jackpot.BaseQuarterlyPayment,
		Deductions:      deductions,
		TotalDeductions: total,
		NetAmount:       jackpot.NetQuarterlyPayment(total),
	}, nil
}

// FinalizeQuarter persists the quarterly payment record computed from the
// statement. Refuses to finalize twice for the same user and quarter.
func (s *EarningsServiceImpl) FinalizeQuarter(ctx context.Context, userID primitive.ObjectID, asOf time.Time) (*models.QuarterlyPayment, error) {
	statement, err := s.QuarterlyStatement(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}
	if !statement.Eligible {
		return nil, errors.New("user role is not eligible for quarterly payment")
	}

	existing, err := s.quarterlyRepo.FindByUserAndQuarter(ctx, userID, statement.Quarter)
	if err == nil && existing != nil {
		slog.Warn("Quarter already finalized", "userId", userID, "quarter", statement.Quarter)
		return existing, errors.New("quarter already finalized for this user")
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check for existing payment: %w", err)
	}

	payment := &models.QuarterlyPayment{
		UserID:          userID,
		Quarter:         statement.Quarter,
		BaseAmount:      statement.BaseAmount,
		Deductions:      statement.Deductions,
		TotalDeductions: statement.TotalDeductions,
		NetAmount:       statement.NetAmount,
		Status:          models.PaymentStatusPending,
	}
	if err := s.quarterlyRepo.Create(ctx, payment); err != nil {
		slog.Error("Failed to create quarterly payment", "error", err, "userId", userID, "quarter", statement.Quarter)
		return nil, fmt.Errorf("failed to create quarterly payment: %w", err)
	}

	slog.Info("Quarter finalized", "userId", userID, "quarter", payment.Quarter, "netAmount", payment.NetAmount)
	return payment, nil
}
