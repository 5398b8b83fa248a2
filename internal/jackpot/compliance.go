package jackpot

import (
	"github.com/dimesonly/platform-backend/internal/models"
)

// ComplianceCategory identifies one quota-tracked activity
type ComplianceCategory string

const (
	CategoryReferrals ComplianceCategory = "referrals"
	CategoryPhotos    ComplianceCategory = "photos"
	CategoryVideos    ComplianceCategory = "videos"
	CategoryMessages  ComplianceCategory = "messages"
	CategoryEvents    ComplianceCategory = "events"
)

// Quarterly compliance constants. Weekly categories share a target of 7 per
// week (84 per quarter); events are monthly with a target of 1 (3 per
// quarter). The base payment is guaranteed, reduced per missed unit.
const (
	BaseQuarterlyPayment = 6250.0

	WeeklyTarget        = 7
	QuarterlyTarget     = 84
	WeeklyMissDeduction = 14.14

	MonthlyEventTarget        = 1
	QuarterlyEventTarget      = 3
	MonthlyEventDeductionUnit = 500.0
)

// WeeklyQuota returns the weekly target and per-missed-unit deduction for a
// weekly category. Events are monthly and have their own function.
func WeeklyQuota(category ComplianceCategory) (target int, deduction float64, err error) {
	switch category {
	case CategoryReferrals, CategoryPhotos, CategoryVideos, CategoryMessages:
		return WeeklyTarget, WeeklyMissDeduction, nil
	default:
		return 0, 0, ErrUnknownCategory
	}
}

// WeeklyDeduction computes the deduction for one weekly category in one
// week: missed units times the per-unit rate. Exceeding the target earns no
// credit.
func WeeklyDeduction(category ComplianceCategory, actualCount int) (float64, error) {
	target, rate, err := WeeklyQuota(category)
	if err != nil {
		return 0, err
	}
	missed := target - actualCount
	if missed <= 0 {
		return 0, nil
	}
	return float64(missed) * rate, nil
}

// MonthlyEventDeduction computes the deduction for one month of event
// hosting: $500 per missed event against a target of one per month.
func MonthlyEventDeduction(actualEvents int) float64 {
	missed := MonthlyEventTarget - actualEvents
	if missed <= 0 {
		return 0
	}
	return float64(missed) * MonthlyEventDeductionUnit
}

// NetQuarterlyPayment computes the quarterly payout after deductions,
// floored at zero.
func NetQuarterlyPayment(deductionsTotal float64) float64 {
	net := BaseQuarterlyPayment - deductionsTotal
	if net < 0 {
		return 0
	}
	return net
}

// IsEligible reports whether a role qualifies for the quarterly payment
// program. Only the two performer roles qualify; everyone else, including
// users with an empty role, is out of scope and no deductions are computed.
func IsEligible(role models.UserRole) bool {
	return role == models.RoleDime || role == models.RoleDancer
}
