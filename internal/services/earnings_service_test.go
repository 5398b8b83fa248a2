package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimesonly/platform-backend/internal/jackpot"
	"github.com/dimesonly/platform-backend/internal/models"
	"github.com/dimesonly/platform-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type earningsServiceFixture struct {
	service       *EarningsServiceImpl
	userRepo      *fakeUserRepo
	weeklyRepo    *fakeWeeklyEarningRepo
	quarterlyRepo *fakeQuarterlyPaymentRepo
	tipRepo       *fakeTipRepo
	eventRepo     *fakeEventRepo
	dancer        *models.User
}

func newEarningsServiceFixture(t *testing.T) *earningsServiceFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	weeklyRepo := newFakeWeeklyEarningRepo()
	quarterlyRepo := &fakeQuarterlyPaymentRepo{}
	tipRepo := &fakeTipRepo{}
	eventRepo := &fakeEventRepo{}

	dancer := userRepo.add(&models.User{Username: "stardancer", Role: models.RoleDancer})

	return &earningsServiceFixture{
		service:       NewEarningsService(userRepo, weeklyRepo, quarterlyRepo, tipRepo, eventRepo),
		userRepo:      userRepo,
		weeklyRepo:    weeklyRepo,
		quarterlyRepo: quarterlyRepo,
		tipRepo:       tipRepo,
		eventRepo:     eventRepo,
		dancer:        dancer,
	}
}

// asOf inside Q3 2026 (July 1 through October 1)
var q3 = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

// fillCompliantQuarter records a fully on-target quarter: every week hits
// all four weekly targets and every month has a hosted event.
func (f *earningsServiceFixture) fillCompliantQuarter(t *testing.T) {
	t.Helper()
	quarterStart, quarterEnd := utils.QuarterBounds(q3)

	for weekStart := utils.WeekStart(quarterStart); weekStart.Before(quarterEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		_, err := f.service.UpsertWeekly(context.Background(), f.dancer.ID, weekStart, WeeklyActivityCounts{
			Referrals: jackpot.WeeklyTarget,
			Photos:    jackpot.WeeklyTarget,
			Videos:    jackpot.WeeklyTarget,
			Messages:  jackpot.WeeklyTarget,
		})
		require.NoError(t, err)
	}

	for monthStart := quarterStart; monthStart.Before(quarterEnd); monthStart = monthStart.AddDate(0, 1, 0) {
		require.NoError(t, f.eventRepo.Create(context.Background(), &models.Event{
			Title:      "Friday night stream",
			HostUserID: f.dancer.ID,
			StartAt:    monthStart.Add(48 * time.Hour),
			EndAt:      monthStart.Add(50 * time.Hour),
			Status:     models.EventStatusActive,
		}))
	}
}

func TestUpsertWeeklyRecomputesTipsTotal(t *testing.T) {
	f := newEarningsServiceFixture(t)
	weekOf := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC) // Wednesday
	weekStart := utils.WeekStart(weekOf)

	fan := f.userRepo.add(&models.User{Username: "bigfan", Role: models.RoleFan})
	f.tipRepo.Create(context.Background(), &models.Tip{
		TipperID: fan.ID, TippedUserID: f.dancer.ID, Amount: 40, CreatedAt: weekStart.Add(24 * time.Hour),
	})
	f.tipRepo.Create(context.Background(), &models.Tip{
		TipperID: fan.ID, TippedUserID: f.dancer.ID, Amount: 60, CreatedAt: weekStart.Add(72 * time.Hour),
	})
	// Outside the week, must not count
	f.tipRepo.Create(context.Background(), &models.Tip{
		TipperID: fan.ID, TippedUserID: f.dancer.ID, Amount: 500, CreatedAt: weekStart.AddDate(0, 0, 8),
	})

	earning, err := f.service.UpsertWeekly(context.Background(), f.dancer.ID, weekOf, WeeklyActivityCounts{Referrals: 3})
	require.NoError(t, err)

	assert.Equal(t, weekStart, earning.WeekStart)
	assert.Equal(t, 100.0, earning.TipsTotal)
	assert.Equal(t, 3, earning.ReferralCount)
}

func TestQuarterlyStatementIneligibleRole(t *testing.T) {
	f := newEarningsServiceFixture(t)
	fan := f.userRepo.add(&models.User{Username: "bigfan", Role: models.RoleFan})

	statement, err := f.service.QuarterlyStatement(context.Background(), fan.ID, q3)
	require.NoError(t, err)

	assert.False(t, statement.Eligible)
	assert.Zero(t, statement.BaseAmount)
	assert.Empty(t, statement.Deductions)
}

func TestQuarterlyStatementFullCompliance(t *testing.T) {
	f := newEarningsServiceFixture(t)
	f.fillCompliantQuarter(t)

	statement, err := f.service.QuarterlyStatement(context.Background(), f.dancer.ID, q3)
	require.NoError(t, err)

	assert.True(t, statement.Eligible)
	assert.Equal(t, "2026-Q3", statement.Quarter)
	assert.Equal(t, jackpot.BaseQuarterlyPayment, statement.BaseAmount)
	assert.Empty(t, statement.Deductions)
	assert.Zero(t, statement.TotalDeductions)
	assert.Equal(t, jackpot.BaseQuarterlyPayment, statement.NetAmount)
}

func TestQuarterlyStatementDeductsMissedReferrals(t *testing.T) {
	f := newEarningsServiceFixture(t)
	f.fillCompliantQuarter(t)

	// One week drops to 3 referrals: 4 missed at $14.14 each
	weekOf := utils.WeekStart(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC))
	_, err := f.service.UpsertWeekly(context.Background(), f.dancer.ID, weekOf, WeeklyActivityCounts{
		Referrals: 3,
		Photos:    jackpot.WeeklyTarget,
		Videos:    jackpot.WeeklyTarget,
		Messages:  jackpot.WeeklyTarget,
	})
	require.NoError(t, err)

	statement, err := f.service.QuarterlyStatement(context.Background(), f.dancer.ID, q3)
	require.NoError(t, err)

	require.Len(t, statement.Deductions, 1)
	line := statement.Deductions[0]
	assert.Equal(t, string(jackpot.CategoryReferrals), line.Category)
	assert.Equal(t, 4, line.Missed)
	assert.InDelta(t, 56.56, line.Amount, 0.001)
	assert.InDelta(t, jackpot.BaseQuarterlyPayment-56.56, statement.NetAmount, 0.001)
}

func TestQuarterlyStatementDeductsMissedEvents(t *testing.T) {
	f := newEarningsServiceFixture(t)
	f.fillCompliantQuarter(t)

	// Cancel every hosted event: three months missed at $500 each
	for _, event := range f.eventRepo.events {
		event.Status = models.EventStatusCancelled
	}

	statement, err := f.service.QuarterlyStatement(context.Background(), f.dancer.ID, q3)
	require.NoError(t, err)

	require.Len(t, statement.Deductions, 1)
	line := statement.Deductions[0]
	assert.Equal(t, string(jackpot.CategoryEvents), line.Category)
	assert.Equal(t, 3, line.Missed)
	assert.Equal(t, 1500.0, line.Amount)
	assert.Equal(t, jackpot.BaseQuarterlyPayment-1500.0, statement.NetAmount)
}

func TestQuarterlyStatementNetFloorsAtZero(t *testing.T) {
	f := newEarningsServiceFixture(t)

	// No activity at all: deductions exceed the base payment
	statement, err := f.service.QuarterlyStatement(context.Background(), f.dancer.ID, q3)
	require.NoError(t, err)

	assert.True(t, statement.Eligible)
	assert.Greater(t, statement.TotalDeductions, jackpot.BaseQuarterlyPayment)
	assert.Zero(t, statement.NetAmount)
}

func TestFinalizeQuarterPersistsOnce(t *testing.T) {
	f := newEarningsServiceFixture(t)
	f.fillCompliantQuarter(t)

	payment, err := f.service.FinalizeQuarter(context.Background(), f.dancer.ID, q3)
	require.NoError(t, err)
	assert.Equal(t, "2026-Q3", payment.Quarter)
	assert.Equal(t, jackpot.BaseQuarterlyPayment, payment.NetAmount)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	_, err = f.service.FinalizeQuarter(context.Background(), f.dancer.ID, q3)
	assert.Error(t, err)
	assert.Len(t, f.quarterlyRepo.payments, 1)
}

func TestFinalizeQuarterRejectsIneligible(t *testing.T) {
	f := newEarningsServiceFixture(t)
	fan := f.userRepo.add(&models.User{Username: "bigfan", Role: models.RoleFan})

	_, err := f.service.FinalizeQuarter(context.Background(), fan.ID, q3)
	assert.Error(t, err)
	assert.Empty(t, f.quarterlyRepo.payments)
}
