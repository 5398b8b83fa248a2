package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimesonly/platform-backend/internal/jackpot"
	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type jackpotServiceFixture struct {
	service     *JackpotServiceImpl
	poolRepo    *fakePoolRepo
	drawingRepo *fakeDrawingRepo
	winnerRepo  *fakeWinnerRepo
	tipRepo     *fakeTipRepo
	userRepo    *fakeUserRepo
}

func newJackpotServiceFixture(t *testing.T) *jackpotServiceFixture {
	t.Helper()
	poolRepo := &fakePoolRepo{}
	drawingRepo := &fakeDrawingRepo{}
	winnerRepo := &fakeWinnerRepo{}
	tipRepo := &fakeTipRepo{}
	userRepo := newFakeUserRepo()

	return &jackpotServiceFixture{
		service:     NewJackpotService(poolRepo, drawingRepo, winnerRepo, tipRepo, userRepo, testConfig()),
		poolRepo:    poolRepo,
		drawingRepo: drawingRepo,
		winnerRepo:  winnerRepo,
		tipRepo:     tipRepo,
		userRepo:    userRepo,
	}
}

func (f *jackpotServiceFixture) seedPool(amount float64) *models.JackpotPool {
	pool := &models.JackpotPool{
		CurrentAmount:       amount,
		ActivationThreshold: 1000,
		WeeklyCap:           250000,
		TimeZone:            "UTC",
		Status:              jackpot.State(models.JackpotPool{CurrentAmount: amount, ActivationThreshold: 1000}, false),
		PeriodStart:         time.Now().Add(-6 * 24 * time.Hour),
	}
	f.poolRepo.Create(context.Background(), pool)
	return pool
}

func (f *jackpotServiceFixture) seedTip(tipper, performer *models.User, amount float64) {
	f.tipRepo.Create(context.Background(), &models.Tip{
		TipperID:     tipper.ID,
		TippedUserID: performer.ID,
		Amount:       amount,
		CreatedAt:    time.Now().Add(-time.Hour),
	})
}

func TestGetStatusCreatesPoolWhenNoneActive(t *testing.T) {
	f := newJackpotServiceFixture(t)

	status, err := f.service.GetStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.PoolStatusCollecting, status.State)
	assert.False(t, status.CountdownActive)
	assert.Equal(t, 1000.0, status.RemainingToActivate)
	assert.Equal(t, time.Friday, status.NextDrawingTime.Weekday())
	assert.Len(t, f.poolRepo.pools, 1)
}

func TestScheduleDrawingRefusesDuplicateForSamePool(t *testing.T) {
	f := newJackpotServiceFixture(t)
	f.seedPool(1500)

	first, err := f.service.ScheduleDrawing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DrawingStatusScheduled, first.Status)

	second, err := f.service.ScheduleDrawing(context.Background())
	assert.Error(t, err)
	assert.Equal(t, first.ID, second.ID, "the existing drawing is returned, not a new one")
	assert.Len(t, f.drawingRepo.drawings, 1)
}

func TestExecuteDrawingSkipsBelowThreshold(t *testing.T) {
	f := newJackpotServiceFixture(t)
	pool := f.seedPool(500)

	drawing := &models.Drawing{
		PoolID:      pool.ID,
		DrawingTime: time.Now().Add(time.Minute),
		Status:      models.DrawingStatusScheduled,
	}
	f.drawingRepo.Create(context.Background(), drawing)

	result, err := f.service.ExecuteDrawing(context.Background(), drawing.ID)
	require.NoError(t, err)

	assert.Equal(t, models.DrawingStatusSkipped, result.Status)
	assert.Empty(t, f.winnerRepo.winners)

	// The pool keeps collecting; the amount rolls into the next period uncut
	active, err := f.poolRepo.FindActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pool.ID, active.ID)
	assert.Equal(t, 500.0, active.CurrentAmount)
}

func TestExecuteDrawingRejectsNonScheduled(t *testing.T) {
	f := newJackpotServiceFixture(t)
	pool := f.seedPool(2000)

	drawing := &models.Drawing{
		PoolID: pool.ID,
		Status: models.DrawingStatusCompleted,
	}
	f.drawingRepo.Create(context.Background(), drawing)

	_, err := f.service.ExecuteDrawing(context.Background(), drawing.ID)
	assert.Error(t, err)
}

func TestExecuteDrawingNotFound(t *testing.T) {
	f := newJackpotServiceFixture(t)

	_, err := f.service.ExecuteDrawing(context.Background(), primitive.NewObjectID())
	assert.Error(t, err)
}

func TestExecuteDrawingSettlesSingleEntrant(t *testing.T) {
	f := newJackpotServiceFixture(t)
	pool := f.seedPool(4000)

	referrer := f.userRepo.add(&models.User{Username: "scout", Role: models.RoleDime})
	tipper := f.userRepo.add(&models.User{Username: "bigfan", Role: models.RoleFan, ReferredBy: referrer.Username})
	dancer := f.userRepo.add(&models.User{Username: "stardancer", Role: models.RoleDancer})
	f.seedTip(tipper, dancer, 300)

	drawing := &models.Drawing{
		PoolID:      pool.ID,
		DrawingTime: time.Now().Add(time.Minute),
		Status:      models.DrawingStatusScheduled,
	}
	f.drawingRepo.Create(context.Background(), drawing)

	result, err := f.service.ExecuteDrawing(context.Background(), drawing.ID)
	require.NoError(t, err)

	assert.Equal(t, models.DrawingStatusCompleted, result.Status)
	assert.Equal(t, 4000.0, result.PoolAmount)
	assert.Equal(t, 1, result.TotalEntrants)
	assert.Equal(t, 300, result.TotalTickets)

	// One entrant fills only the first tier: grand prize plus both shares
	winners, err := f.winnerRepo.FindByDrawingID(context.Background(), drawing.ID)
	require.NoError(t, err)
	require.Len(t, winners, 3)

	byRole := make(map[models.PayoutRole]*models.Winner)
	for _, w := range winners {
		byRole[w.PayoutRole] = w
	}

	grand := byRole[models.PayoutRoleGrand]
	require.NotNil(t, grand)
	assert.Equal(t, tipper.ID, grand.UserID)
	assert.Equal(t, string(jackpot.TierFirst), grand.Tier)
	assert.Equal(t, 1000.0, grand.Amount)
	assert.Equal(t, models.ClaimStatusPending, grand.ClaimStatus)

	ref := byRole[models.PayoutRoleReferrer]
	require.NotNil(t, ref)
	assert.Equal(t, referrer.ID, ref.UserID)
	assert.Equal(t, 120.0, ref.Amount)

	perf := byRole[models.PayoutRolePerformer]
	require.NotNil(t, perf)
	assert.Equal(t, dancer.ID, perf.UserID)
	assert.Equal(t, 80.0, perf.Amount)

	// The drawn pool is closed and a fresh one is collecting from zero
	fresh, err := f.poolRepo.FindActive(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, pool.ID, fresh.ID)
	assert.Equal(t, 0.0, fresh.CurrentAmount)
	assert.Equal(t, models.PoolStatusCollecting, fresh.Status)

	closed, err := f.poolRepo.FindByID(context.Background(), pool.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PoolStatusDrawn, closed.Status)
	assert.False(t, closed.DrawnAt.IsZero())
}

func TestExecuteDrawingSelectsWithoutReplacement(t *testing.T) {
	f := newJackpotServiceFixture(t)
	pool := f.seedPool(100000)

	dancer := f.userRepo.add(&models.User{Username: "stardancer", Role: models.RoleDancer})
	for _, name := range []string{"fanone", "fantwo", "fanthree"} {
		tipper := f.userRepo.add(&models.User{Username: name, Role: models.RoleFan})
		f.seedTip(tipper, dancer, 200)
	}

	drawing := &models.Drawing{
		PoolID:      pool.ID,
		DrawingTime: time.Now().Add(time.Minute),
		Status:      models.DrawingStatusScheduled,
	}
	f.drawingRepo.Create(context.Background(), drawing)

	result, err := f.service.ExecuteDrawing(context.Background(), drawing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DrawingStatusCompleted, result.Status)
	assert.Equal(t, 3, result.TotalEntrants)

	winners, err := f.winnerRepo.FindByDrawingID(context.Background(), drawing.ID)
	require.NoError(t, err)

	// Each tier's grand prize goes to a distinct entrant
	grandWinners := make(map[primitive.ObjectID]bool)
	tiers := make(map[string]bool)
	for _, w := range winners {
		if w.PayoutRole != models.PayoutRoleGrand {
			continue
		}
		assert.False(t, grandWinners[w.UserID], "user %s won more than one tier", w.Username)
		grandWinners[w.UserID] = true
		tiers[w.Tier] = true
	}
	assert.Len(t, grandWinners, 3)
	assert.Len(t, tiers, 3)
}

func TestSelectWeightedEntrantRemovesWinner(t *testing.T) {
	entrants := []entrant{
		{userID: primitive.NewObjectID(), username: "a", tickets: 10},
		{userID: primitive.NewObjectID(), username: "b", tickets: 20},
		{userID: primitive.NewObjectID(), username: "c", tickets: 30},
	}

	selected, remaining := selectWeightedEntrant(entrants)
	assert.Len(t, remaining, 2)
	for _, e := range remaining {
		assert.NotEqual(t, selected.userID, e.userID)
	}
}
