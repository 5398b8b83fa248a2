package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/dimesonly/platform-backend/internal/config"
	"github.com/dimesonly/platform-backend/internal/jackpot"
	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/repositories"
	"github.com/dimesonly/platform-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure JackpotServiceImpl implements JackpotService
var _ JackpotService = (*JackpotServiceImpl)(nil)

// JackpotServiceImpl handles pool status and the drawing lifecycle
type JackpotServiceImpl struct {
	poolRepo    repositories.JackpotPoolRepository
	drawingRepo repositories.DrawingRepository
	winnerRepo  repositories.WinnerRepository
	tipRepo     repositories.TipRepository
	userRepo    repositories.UserRepository
	cfg         *config.Config
}

// NewJackpotService creates a new JackpotServiceImpl
func NewJackpotService(
	poolRepo repositories.JackpotPoolRepository,
	drawingRepo repositories.DrawingRepository,
	winnerRepo repositories.WinnerRepository,
	tipRepo repositories.TipRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) *JackpotServiceImpl {
	return &JackpotServiceImpl{
		poolRepo:    poolRepo,
		drawingRepo: drawingRepo,
		winnerRepo:  winnerRepo,
		tipRepo:     tipRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

// GetStatus reports the active pool and the countdown to the next drawing.
// The countdown is computed fresh on every call; clients poll, the engine
// holds no timer state.
func (s *JackpotServiceImpl) GetStatus(ctx context.Context) (*JackpotStatus, error) {
	pool, err := s.ensureActivePool(ctx)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(pool.TimeZone)
	if err != nil {
		slog.Warn("Invalid pool time zone, falling back to UTC", "timeZone", pool.TimeZone)
		loc = time.UTC
	}

	now := time.Now()
	nextDrawing := jackpot.NextDrawing(now, loc)

	return &JackpotStatus{
		Pool:                pool,
		State:               jackpot.State(*pool, false),
		CountdownActive:     jackpot.IsCountdownActive(*pool),
		RemainingToActivate: jackpot.AmountRemainingToActivate(*pool),
		NextDrawingTime:     nextDrawing,
		Countdown:           jackpot.CountdownTo(now, nextDrawing),
	}, nil
}

// ScheduleDrawing creates a SCHEDULED drawing for the active pool at the
// next Friday 18:00 in the pool's zone.
func (s *JackpotServiceImpl) ScheduleDrawing(ctx context.Context) (*models.Drawing, error) {
	pool, err := s.ensureActivePool(ctx)
	if err != nil {
		return nil, err
	}

	// Refuse a second scheduled drawing for the same pool
	scheduled, err := s.drawingRepo.FindByStatus(ctx, models.DrawingStatusScheduled)
	if err != nil {
		slog.Error("Failed to check for scheduled drawings", "error", err)
		return nil, fmt.Errorf("failed to check for scheduled drawings: %w", err)
	}
	for _, existing := range scheduled {
		if existing.PoolID == pool.ID {
			slog.Warn("Drawing already scheduled for active pool", "drawingId", existing.ID, "poolId", pool.ID)
			return existing, errors.New("a drawing is already scheduled for the active pool")
		}
	}

	loc, err := time.LoadLocation(pool.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	drawing := &models.Drawing{
		PoolID:      pool.ID,
		DrawingTime: jackpot.NextDrawing(time.Now(), loc),
		Status:      models.DrawingStatusScheduled,
	}
	if err := s.drawingRepo.Create(ctx, drawing); err != nil {
		slog.Error("Failed to create drawing", "error", err, "poolId", pool.ID)
		return nil, fmt.Errorf("failed to schedule drawing: %w", err)
	}

	slog.Info("Drawing scheduled", "drawingId", drawing.ID, "poolId", pool.ID, "drawingTime", drawing.DrawingTime)
	return drawing, nil
}

// ExecuteDrawing settles a scheduled drawing: ticket-weighted winner
// selection for the three tiers, prize rows including referrer and performer
// shares, pool reset into a fresh collecting period.
func (s *JackpotServiceImpl) ExecuteDrawing(ctx context.Context, drawingID primitive.ObjectID) (*models.Drawing, error) {
	drawing, err := s.drawingRepo.FindByID(ctx, drawingID)
	if err != nil {
		slog.Error("ExecuteDrawing: drawing not found", "error", err, "drawingId", drawingID)
		return nil, fmt.Errorf("drawing not found: %w", err)
	}
	if drawing.Status != models.DrawingStatusScheduled {
		slog.Warn("ExecuteDrawing: drawing not in SCHEDULED state", "drawingId", drawingID, "status", drawing.Status)
		return drawing, fmt.Errorf("drawing is not in SCHEDULED state (current: %s)", drawing.Status)
	}

	pool, err := s.poolRepo.FindByID(ctx, drawing.PoolID)
	if err != nil {
		return drawing, fmt.Errorf("pool not found for drawing: %w", err)
	}

	// An unactivated pool keeps collecting; the drawing is skipped, not
	// failed, and the amount rolls into the next period uncut.
	if !jackpot.IsCountdownActive(*pool) {
		drawing.Status = models.DrawingStatusSkipped
		drawing.PoolAmount = pool.CurrentAmount
		drawing.ExecutionLog = append(drawing.ExecutionLog,
			fmt.Sprintf("Pool at %.2f below activation threshold %.2f, drawing skipped", pool.CurrentAmount, pool.ActivationThreshold))
		if err := s.drawingRepo.Update(ctx, drawing); err != nil {
			return drawing, fmt.Errorf("failed to mark drawing as skipped: %w", err)
		}
		slog.Info("Drawing skipped, pool below threshold", "drawingId", drawingID, "amount", pool.CurrentAmount)
		return drawing, nil
	}

	drawing.Status = models.DrawingStatusExecuting
	drawing.ExecutionStart = time.Now()
	drawing.PoolAmount = pool.CurrentAmount
	drawing.ExecutionLog = append(drawing.ExecutionLog, fmt.Sprintf("%s: Starting execution", time.Now().Format(time.RFC3339)))
	if err := s.drawingRepo.Update(ctx, drawing); err != nil {
		slog.Error("ExecuteDrawing: failed to mark drawing EXECUTING", "error", err, "drawingId", drawingID)
		return drawing, fmt.Errorf("failed to mark drawing as executing: %w", err)
	}

	defer func() {
		if err != nil {
			drawing.Status = models.DrawingStatusFailed
			drawing.ErrorMessage = err.Error()
			drawing.ExecutionLog = append(drawing.ExecutionLog, fmt.Sprintf("%s: ERROR: %s", time.Now().Format(time.RFC3339), err.Error()))
		} else {
			drawing.Status = models.DrawingStatusCompleted
			drawing.ExecutionLog = append(drawing.ExecutionLog, fmt.Sprintf("%s: Execution completed", time.Now().Format(time.RFC3339)))
		}
		drawing.ExecutionEnd = time.Now()
		if updateErr := s.drawingRepo.Update(ctx, drawing); updateErr != nil {
			slog.Error("ExecuteDrawing: CRITICAL: failed to update final drawing status", "error", updateErr, "drawingId", drawingID, "finalStatusAttempt", drawing.Status)
		}
	}()

	// Recompute the ticket ledger for the pool period. Stored per-tip counts
	// are a convenience; the ledger is authoritative at settlement time.
	entrants, totalTickets, err := s.buildEntrants(ctx, pool.PeriodStart, drawing.DrawingTime)
	if err != nil {
		return drawing, err
	}
	drawing.TotalEntrants = len(entrants)
	drawing.TotalTickets = totalTickets
	drawing.ExecutionLog = append(drawing.ExecutionLog, fmt.Sprintf("Entrants: %d users holding %d tickets", len(entrants), totalTickets))

	if len(entrants) == 0 {
		drawing.ExecutionLog = append(drawing.ExecutionLog, "No entrants, no winners selected")
	}

	// Select one winner per tier, without replacement, weighted by tickets
	var winners []*models.Winner
	for _, tier := range jackpot.Tiers() {
		if len(entrants) == 0 {
			drawing.ExecutionLog = append(drawing.ExecutionLog, fmt.Sprintf("Entrant pool exhausted before %s tier", tier))
			break
		}

		var selected entrant
		selected, entrants = selectWeightedEntrant(entrants)

		var breakdown jackpot.PrizeBreakdown
		breakdown, err = jackpot.ComputePrizes(*pool, tier)
		if err != nil {
			return drawing, fmt.Errorf("failed to compute %s tier prizes: %w", tier, err)
		}

		tierWinners, selectErr := s.buildWinnerRows(ctx, drawing, selected, tier, breakdown)
		if selectErr != nil {
			slog.Error("Failed to build winner rows", "error", selectErr, "tier", tier)
			drawing.ExecutionLog = append(drawing.ExecutionLog, fmt.Sprintf("ERROR building %s tier winner rows: %s", tier, selectErr.Error()))
			continue
		}
		winners = append(winners, tierWinners...)
		drawing.ExecutionLog = append(drawing.ExecutionLog,
			fmt.Sprintf("%s tier: %s wins %.2f (tickets: %d)", tier, utils.MaskUsername(selected.username), breakdown.GrandPrize, selected.tickets))
	}

	if len(winners) > 0 {
		if err = s.winnerRepo.CreateMany(ctx, winners); err != nil {
			slog.Error("Failed to create winner records", "error", err, "drawingId", drawingID)
			return drawing, fmt.Errorf("failed to create winner records: %w", err)
		}
	}
	drawing.NumWinners = len(winners)

	// Close out the drawn pool and open a fresh one
	now := time.Now()
	pool.Status = models.PoolStatusDrawn
	pool.DrawnAt = now
	if err = s.poolRepo.Update(ctx, pool); err != nil {
		return drawing, fmt.Errorf("failed to close drawn pool: %w", err)
	}

	fresh := jackpot.Reset(*pool)
	fresh.ID = primitive.NilObjectID
	fresh.Status = models.PoolStatusCollecting
	fresh.PeriodStart = now
	fresh.DrawnAt = time.Time{}
	if err = s.poolRepo.Create(ctx, &fresh); err != nil {
		return drawing, fmt.Errorf("failed to open fresh pool: %w", err)
	}
	drawing.ExecutionLog = append(drawing.ExecutionLog, fmt.Sprintf("Pool %s drawn, fresh pool %s collecting", pool.ID.Hex(), fresh.ID.Hex()))

	slog.Info("Drawing executed", "drawingId", drawingID, "winners", drawing.NumWinners, "poolAmount", drawing.PoolAmount)
	return drawing, nil
}

// GetDrawingByID retrieves a drawing by ID
func (s *JackpotServiceImpl) GetDrawingByID(ctx context.Context, drawingID primitive.ObjectID) (*models.Drawing, error) {
	drawing, err := s.drawingRepo.FindByID(ctx, drawingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("no drawing found for the specified ID")
		}
		slog.Error("Failed to get drawing", "error", err, "drawingId", drawingID)
		return nil, fmt.Errorf("failed to retrieve drawing: %w", err)
	}
	return drawing, nil
}

// GetWinnersByDrawingID retrieves all payout rows for a drawing
func (s *JackpotServiceImpl) GetWinnersByDrawingID(ctx context.Context, drawingID primitive.ObjectID) ([]*models.Winner, error) {
	winners, err := s.winnerRepo.FindByDrawingID(ctx, drawingID)
	if err != nil {
		slog.Error("Failed to get winners by drawing ID", "error", err, "drawingId", drawingID)
		return nil, fmt.Errorf("failed to retrieve winners: %w", err)
	}
	return winners, nil
}

// GetPoolHistory lists pools newest first
func (s *JackpotServiceImpl) GetPoolHistory(ctx context.Context, page, limit int) ([]*models.JackpotPool, error) {
	pools, err := s.poolRepo.FindAll(ctx, page, limit)
	if err != nil {
		slog.Error("Failed to fetch pool history", "error", err)
		return nil, fmt.Errorf("failed to retrieve pool history: %w", err)
	}
	return pools, nil
}

// --- Helpers for drawing execution ---

type entrant struct {
	userID   primitive.ObjectID
	username string
	tickets  int
}

// buildEntrants recomputes ticket counts per tipper over [periodStart,
// periodEnd) from the tip ledger.
func (s *JackpotServiceImpl) buildEntrants(ctx context.Context, periodStart, periodEnd time.Time) ([]entrant, int, error) {
	tips, err := s.tipRepo.FindByDateRange(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tips for drawing period: %w", err)
	}

	ticketsByUser := make(map[primitive.ObjectID]int)
	for _, tip := range tips {
		tickets, err := jackpot.TicketsForTip(tip.Amount)
		if err != nil {
			continue
		}
		ticketsByUser[tip.TipperID] += tickets
	}

	entrants := make([]entrant, 0, len(ticketsByUser))
	total := 0
	for userID, tickets := range ticketsByUser {
		if tickets <= 0 {
			continue
		}
		username := ""
		if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
			username = user.Username
		}
		entrants = append(entrants, entrant{userID: userID, username: username, tickets: tickets})
		total += tickets
	}

	// Deterministic order before the weighted pick, map iteration is not
	sort.Slice(entrants, func(i, j int) bool {
		return entrants[i].userID.Hex() < entrants[j].userID.Hex()
	})
	return entrants, total, nil
}

// selectWeightedEntrant picks one entrant with probability proportional to
// ticket count and returns the remaining pool with the winner removed.
func selectWeightedEntrant(entrants []entrant) (entrant, []entrant) {
	total := 0
	for _, e := range entrants {
		total += e.tickets
	}

	pick := rand.Intn(total)
	index := 0
	for i, e := range entrants {
		if pick < e.tickets {
			index = i
			break
		}
		pick -= e.tickets
	}

	selected := entrants[index]
	remaining := append(entrants[:index:index], entrants[index+1:]...)
	return selected, remaining
}

// buildWinnerRows produces the payout rows for one tier: the grand prize to
// the winning tipper, the referrer share to the winner's referrer, and the
// performer share to the performer the winner tipped most during the period.
// Shares are independent bonuses off the same pool amount, not deductions
// from the grand prize.
func (s *JackpotServiceImpl) buildWinnerRows(ctx context.Context, drawing *models.Drawing, selected entrant, tier jackpot.Tier, breakdown jackpot.PrizeBreakdown) ([]*models.Winner, error) {
	winDate := drawing.DrawingTime

	rows := []*models.Winner{{
		DrawingID:   drawing.ID,
		UserID:      selected.userID,
		Username:    selected.username,
		Tier:        string(tier),
		PayoutRole:  models.PayoutRoleGrand,
		Amount:      breakdown.GrandPrize,
		WinDate:     winDate,
		ClaimStatus: models.ClaimStatusPending,
	}}

	winner, err := s.userRepo.FindByID(ctx, selected.userID)
	if err != nil {
		return rows, fmt.Errorf("winning user not found: %w", err)
	}

	if breakdown.ReferrerShare > 0 && winner.ReferredBy != "" {
		referrer, err := s.userRepo.FindByUsername(ctx, winner.ReferredBy)
		if err == nil {
			rows = append(rows, &models.Winner{
				DrawingID:   drawing.ID,
				UserID:      referrer.ID,
				Username:    referrer.Username,
				Tier:        string(tier),
				PayoutRole:  models.PayoutRoleReferrer,
				Amount:      breakdown.ReferrerShare,
				WinDate:     winDate,
				ClaimStatus: models.ClaimStatusPending,
			})
		} else {
			slog.Warn("Referrer share unassigned, referrer not found", "referredBy", winner.ReferredBy)
		}
	}

	if breakdown.PerformerShare > 0 {
		performerID, performerName, err := s.topTippedPerformer(ctx, selected.userID, drawing)
		if err == nil {
			rows = append(rows, &models.Winner{
				DrawingID:   drawing.ID,
				UserID:      performerID,
				Username:    performerName,
				Tier:        string(tier),
				PayoutRole:  models.PayoutRolePerformer,
				Amount:      breakdown.PerformerShare,
				WinDate:     winDate,
				ClaimStatus: models.ClaimStatusPending,
			})
		} else {
			slog.Warn("Performer share unassigned", "error", err, "userId", selected.userID)
		}
	}

	return rows, nil
}

// topTippedPerformer finds the performer the winner tipped the most during
// the drawing period.
func (s *JackpotServiceImpl) topTippedPerformer(ctx context.Context, tipperID primitive.ObjectID, drawing *models.Drawing) (primitive.ObjectID, string, error) {
	pool, err := s.poolRepo.FindByID(ctx, drawing.PoolID)
	if err != nil {
		return primitive.NilObjectID, "", err
	}

	tips, err := s.tipRepo.FindByTipperInWindow(ctx, tipperID, pool.PeriodStart, drawing.DrawingTime)
	if err != nil {
		return primitive.NilObjectID, "", err
	}
	if len(tips) == 0 {
		return primitive.NilObjectID, "", errors.New("no tips found for winner in period")
	}

	totals := make(map[primitive.ObjectID]float64)
	for _, tip := range tips {
		totals[tip.TippedUserID] += tip.Amount
	}

	var topID primitive.ObjectID
	top := -1.0
	for id, amount := range totals {
		if amount > top || (amount == top && id.Hex() < topID.Hex()) {
			top = amount
			topID = id
		}
	}

	performer, err := s.userRepo.FindByID(ctx, topID)
	if err != nil {
		return primitive.NilObjectID, "", err
	}
	return performer.ID, performer.Username, nil
}

// ensureActivePool returns the active pool, creating one from configuration
// when none exists.
func (s *JackpotServiceImpl) ensureActivePool(ctx context.Context) (*models.JackpotPool, error) {
	pool, err := s.poolRepo.FindActive(ctx)
	if err == nil {
		return pool, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("Failed to find active pool", "error", err)
		return nil, fmt.Errorf("failed to find active pool: %w", err)
	}

	pool = &models.JackpotPool{
		ActivationThreshold: s.cfg.Jackpot.ActivationThreshold,
		WeeklyCap:           s.cfg.Jackpot.WeeklyCap,
		TimeZone:            s.cfg.Jackpot.TimeZone,
		Status:              models.PoolStatusCollecting,
		PeriodStart:         time.Now(),
	}
	if err := s.poolRepo.Create(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to create jackpot pool: %w", err)
	}
	slog.Info("Created new jackpot pool", "poolId", pool.ID)
	return pool, nil
}
