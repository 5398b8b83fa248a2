package jackpot

import (
	"math"
	"time"

	"github.com/dimesonly/platform-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketsForTip converts a tip amount into a whole-ticket count: one ticket
// per whole currency unit, fractional remainders discarded. Remainders never
// carry over to later tips.
func TicketsForTip(amount float64) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return int(math.Floor(amount)), nil
}

// AggregateTickets sums ticket counts over the tips sent by userID with
// createdAt in [periodStart, periodEnd). Tickets accrue to the tipper; the
// tipped performer and the referrer participate through prize shares, not
// tickets. Tips with non-positive amounts are skipped rather than failing
// the whole aggregation, since the ledger being summed is caller-supplied
// history, not fresh input.
func AggregateTickets(tips []models.Tip, userID primitive.ObjectID, periodStart, periodEnd time.Time) int {
	total := 0
	for _, tip := range tips {
		if tip.TipperID != userID {
			continue
		}
		if tip.CreatedAt.Before(periodStart) || !tip.CreatedAt.Before(periodEnd) {
			continue
		}
		tickets, err := TicketsForTip(tip.Amount)
		if err != nil {
			continue
		}
		total += tickets
	}
	return total
}
