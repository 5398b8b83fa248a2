package jackpot

import (
	"github.com/dimesonly/platform-backend/internal/models"
)

// Tier identifies a ranked prize position in a drawing
type Tier string

const (
	TierFirst  Tier = "FIRST"
	TierSecond Tier = "SECOND"
	TierThird  Tier = "THIRD"
)

// TierParams holds the payout rules for one prize tier. Shares for the
// referrer and tipped performer are computed independently off the same pool
// amount; they are marketing bonuses layered on top, not deductions from the
// grand prize.
type TierParams struct {
	BasePercent      float64
	MinPrize         float64
	MaxPrize         float64
	ReferrerPercent  float64
	ReferrerCap      float64
	PerformerPercent float64
	PerformerCap     float64
}

// tierTable is the single source of truth for tier payout rules. Second and
// third tier referrer/performer shares are flat caps with no percentage, so
// their computed share is always zero until a percentage is configured.
var tierTable = map[Tier]TierParams{
	TierFirst: {
		BasePercent:      0.25,
		MinPrize:         1000,
		MaxPrize:         250000,
		ReferrerPercent:  0.03,
		ReferrerCap:      7500,
		PerformerPercent: 0.02,
		PerformerCap:     5000,
	},
	TierSecond: {
		BasePercent:  0.03,
		MinPrize:     500,
		MaxPrize:     5000,
		ReferrerCap:  10000,
		PerformerCap: 5000,
	},
	TierThird: {
		BasePercent:  0.02,
		MinPrize:     250,
		MaxPrize:     5000,
		ReferrerCap:  10000,
		PerformerCap: 10000,
	},
}

// Params returns the payout rules for a tier
func Params(tier Tier) (TierParams, error) {
	params, ok := tierTable[tier]
	if !ok {
		return TierParams{}, ErrInvalidTier
	}
	return params, nil
}

// Tiers returns the three tiers in placement order
func Tiers() []Tier {
	return []Tier{TierFirst, TierSecond, TierThird}
}

// PrizeBreakdown is the payout computed for one tier of a drawing
type PrizeBreakdown struct {
	Tier           Tier    `json:"tier"`
	GrandPrize     float64 `json:"grandPrize"`
	ReferrerShare  float64 `json:"referrerShare"`
	PerformerShare float64 `json:"performerShare"`
}

// ComputePrizes computes the grand prize and the referrer/performer shares
// for a tier from the pool's current amount. The grand prize is clamped to
// the tier's [min, max]; each share is the pool amount times the tier's
// share percentage, clamped to [0, cap].
func ComputePrizes(pool models.JackpotPool, tier Tier) (PrizeBreakdown, error) {
	if pool.CurrentAmount < 0 {
		return PrizeBreakdown{}, ErrNegativePool
	}
	params, err := Params(tier)
	if err != nil {
		return PrizeBreakdown{}, err
	}

	return PrizeBreakdown{
		Tier:           tier,
		GrandPrize:     clamp(pool.CurrentAmount*params.BasePercent, params.MinPrize, params.MaxPrize),
		ReferrerShare:  clamp(pool.CurrentAmount*params.ReferrerPercent, 0, params.ReferrerCap),
		PerformerShare: clamp(pool.CurrentAmount*params.PerformerPercent, 0, params.PerformerCap),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
