package jackpot

import (
	"github.com/dimesonly/platform-backend/internal/models"
)

// Default pool parameters. Deployments can override these through
// configuration when a pool is first created; existing pools keep the
// values they were created with.
const (
	DefaultActivationThreshold = 1000.0
	DefaultWeeklyCap           = 250000.0

	// PoolContributionRate is the fraction of every tip that feeds the pool.
	PoolContributionRate = 0.25
)

// Contribute returns a copy of pool with 25% of tipAmount added, capped at
// the pool's weekly cap. The input pool is never mutated; callers persist
// the returned value. Non-positive tip amounts leave the pool unchanged.
func Contribute(pool models.JackpotPool, tipAmount float64) models.JackpotPool {
	if tipAmount <= 0 {
		return pool
	}
	next := pool
	next.CurrentAmount = pool.CurrentAmount + tipAmount*PoolContributionRate
	if next.CurrentAmount > pool.WeeklyCap {
		next.CurrentAmount = pool.WeeklyCap
	}
	return next
}

// IsCountdownActive reports whether the pool has reached its activation
// threshold and the drawing countdown should be shown.
func IsCountdownActive(pool models.JackpotPool) bool {
	return pool.CurrentAmount >= pool.ActivationThreshold
}

// AmountRemainingToActivate returns how much more the pool needs before the
// countdown activates. Zero once the threshold is reached.
func AmountRemainingToActivate(pool models.JackpotPool) float64 {
	remaining := pool.ActivationThreshold - pool.CurrentAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset returns a fresh pool with a zero amount and the same thresholds.
// Only the drawing settlement path calls this; the HTTP layer never does.
func Reset(pool models.JackpotPool) models.JackpotPool {
	next := pool
	next.CurrentAmount = 0
	return next
}

// State reports the pool's lifecycle state given current data. The engine
// never schedules a transition itself: contributions move a pool from
// COLLECTING to COUNTDOWN_ACTIVE by crossing the threshold, and the external
// settlement process marks it DRAWN.
func State(pool models.JackpotPool, drawn bool) models.PoolStatus {
	if drawn {
		return models.PoolStatusDrawn
	}
	if IsCountdownActive(pool) {
		return models.PoolStatusCountdownActive
	}
	return models.PoolStatusCollecting
}
