package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimesonly/platform-backend/internal/config"
	"github.com/dimesonly/platform-backend/internal/jackpot"
	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"github.com/dimesonly/platform-backend/internal/utils"
	"github.com/dimesonly/platform-backend/pkg/payments"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure TipServiceImpl implements TipService
var _ TipService = (*TipServiceImpl)(nil)

// TipServiceImpl records tips and keeps the jackpot pool and ticket
// accounting consistent with the ledger
type TipServiceImpl struct {
	tipRepo  repositories.TipRepository
	userRepo repositories.UserRepository
	poolRepo repositories.JackpotPoolRepository
	payments *payments.Client
	cfg      *config.Config
}

// NewTipService creates a new TipServiceImpl
func NewTipService(
	tipRepo repositories.TipRepository,
	userRepo repositories.UserRepository,
	poolRepo repositories.JackpotPoolRepository,
	paymentsClient *payments.Client,
	cfg *config.Config,
) *TipServiceImpl {
	return &TipServiceImpl{
		tipRepo:  tipRepo,
		userRepo: userRepo,
		poolRepo: poolRepo,
		payments: paymentsClient,
		cfg:      cfg,
	}
}

// RecordTip verifies the payment, persists the tip and applies its side
// effects: 25% of the amount into the active pool, whole-unit tickets to the
// tipper. The engine validates the amount up front so a bad request never
// writes a row.
func (s *TipServiceImpl) RecordTip(ctx context.Context, req *RecordTipRequest) (*models.Tip, error) {
	tickets, err := jackpot.TicketsForTip(req.Amount)
	if err != nil {
		return nil, err
	}

	// 1. Verify the payment reference with the processor
	tx, err := s.payments.VerifyTransaction(req.PaymentRef)
	if err != nil {
		slog.Error("Payment verification failed", "error", err, "paymentRef", req.PaymentRef)
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}
	if tx.Amount > 0 && tx.Amount != req.Amount {
		return nil, fmt.Errorf("payment amount mismatch: charged %.2f, reported %.2f", tx.Amount, req.Amount)
	}

	// 2. Reject duplicate submissions of the same payment
	existing, err := s.tipRepo.FindByPaymentRef(ctx, req.PaymentRef)
	if err == nil && existing != nil {
		slog.Warn("Duplicate tip submission", "paymentRef", req.PaymentRef)
		return existing, errors.New("tip already recorded for this payment")
	}
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check for existing tip: %w", err)
	}

	// 3. Confirm the tipped performer exists
	tipped, err := s.userRepo.FindByID(ctx, req.TippedUserID)
	if err != nil {
		return nil, fmt.Errorf("tipped user not found: %w", err)
	}

	// 4. Persist the tip
	tip := &models.Tip{
		TipperID:           req.TipperID,
		TippedUserID:       req.TippedUserID,
		Amount:             req.Amount,
		ReferredByUsername: req.ReferredByUsername,
		PaymentRef:         req.PaymentRef,
		TicketCount:        tickets,
		CreatedAt:          time.Now(),
	}
	if err := s.tipRepo.Create(ctx, tip); err != nil {
		slog.Error("Failed to create tip", "error", err, "paymentRef", req.PaymentRef)
		return nil, fmt.Errorf("failed to record tip: %w", err)
	}

	// 5. Feed the active pool. Pool state is re-evaluated on every
	// contribution; crossing the threshold flips it to COUNTDOWN_ACTIVE.
	pool, err := s.activePool(ctx)
	if err != nil {
		slog.Error("Failed to resolve active pool", "error", err)
		return nil, fmt.Errorf("failed to resolve active pool: %w", err)
	}
	updated := jackpot.Contribute(*pool, tip.Amount)
	updated.Status = jackpot.State(updated, false)
	if err := s.poolRepo.Update(ctx, &updated); err != nil {
		slog.Error("Failed to update pool after contribution", "error", err, "poolId", pool.ID)
		return nil, fmt.Errorf("failed to update jackpot pool: %w", err)
	}
	if pool.Status == models.PoolStatusCollecting && updated.Status == models.PoolStatusCountdownActive {
		slog.Info("Jackpot countdown activated", "poolId", pool.ID, "amount", updated.CurrentAmount)
	}

	// 6. Credit the tipper's lifetime tickets
	if err := s.userRepo.IncrementLifetimeTickets(ctx, req.TipperID, tickets); err != nil {
		// The ledger row exists; lifetime counters are a derived convenience
		slog.Error("Failed to increment lifetime tickets", "error", err, "userId", req.TipperID)
	}

	slog.Info("Tip recorded",
		"tipper", req.TipperID,
		"performer", utils.MaskUsername(tipped.Username),
		"amount", tip.Amount,
		"tickets", tickets,
		"poolAmount", updated.CurrentAmount)
	return tip, nil
}

// TicketSummary recomputes a tipper's tickets for [periodStart, periodEnd)
// from the ledger. TicketBatch snapshots are derived data, never stored as
// authority.
func (s *TipServiceImpl) TicketSummary(ctx context.Context, userID primitive.ObjectID, periodStart, periodEnd time.Time) (*models.TicketBatch, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	tips, err := s.tipRepo.FindByTipperInWindow(ctx, userID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tips: %w", err)
	}

	deref := make([]models.Tip, 0, len(tips))
	for _, tip := range tips {
		deref = append(deref, *tip)
	}

	return &models.TicketBatch{
		UserID:      userID,
		Username:    user.Username,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TicketCount: jackpot.AggregateTickets(deref, userID, periodStart, periodEnd),
	}, nil
}

// GetTipsForUser lists tips received by a performer
func (s *TipServiceImpl) GetTipsForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Tip, error) {
	tips, err := s.tipRepo.FindByTippedUser(ctx, userID, page, limit)
	if err != nil {
		slog.Error("Failed to fetch tips for user", "error", err, "userId", userID)
		return nil, fmt.Errorf("failed to retrieve tips: %w", err)
	}
	return tips, nil
}

// activePool returns the pool currently accepting contributions, creating a
// fresh one from configuration when none exists.
func (s *TipServiceImpl) activePool(ctx context.Context) (*models.JackpotPool, error) {
	pool, err := s.poolRepo.FindActive(ctx)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	pool = &models.JackpotPool{
		CurrentAmount:       0,
		ActivationThreshold: s.cfg.Jackpot.ActivationThreshold,
		WeeklyCap:           s.cfg.Jackpot.WeeklyCap,
		TimeZone:            s.cfg.Jackpot.TimeZone,
		Status:              models.PoolStatusCollecting,
		PeriodStart:         time.Now(),
	}
	if err := s.poolRepo.Create(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to create jackpot pool: %w", err)
	}
	slog.Info("Created new jackpot pool", "poolId", pool.ID, "threshold", pool.ActivationThreshold, "cap", pool.WeeklyCap)
	return pool, nil
}
