package repositories

import (
	"context"
	"time"

	"github.com/dimesonly/platform-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TipRepository defines the interface for tip ledger operations. Tips are
// append-only; there is no update or delete in the normal flow.
type TipRepository interface {
	Create(ctx context.Context, tip *models.Tip) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tip, error)
	FindByTippedUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Tip, error)
	FindByTipperInWindow(ctx context.Context, tipperID primitive.ObjectID, start, end time.Time) ([]*models.Tip, error)
	FindByTippedUserInWindow(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]*models.Tip, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Tip, error)
	FindByPaymentRef(ctx context.Context, paymentRef string) (*models.Tip, error)
	Count(ctx context.Context) (int64, error)
}

// JackpotPoolRepository defines the interface for jackpot pool operations
type JackpotPoolRepository interface {
	Create(ctx context.Context, pool *models.JackpotPool) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.JackpotPool, error)
	FindActive(ctx context.Context) (*models.JackpotPool, error)
	Update(ctx context.Context, pool *models.JackpotPool) error
	FindAll(ctx context.Context, page, limit int) ([]*models.JackpotPool, error)
}

// DrawingRepository defines the interface for drawing operations
type DrawingRepository interface {
	Create(ctx context.Context, drawing *models.Drawing) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Drawing, error)
	FindByStatus(ctx context.Context, status models.DrawingStatus) ([]*models.Drawing, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Drawing, error)
	Update(ctx context.Context, drawing *models.Drawing) error
}

// WinnerRepository defines the interface for winner payout rows
type WinnerRepository interface {
	CreateMany(ctx context.Context, winners []*models.Winner) error
	FindByDrawingID(ctx context.Context, drawingID primitive.ObjectID) ([]*models.Winner, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Winner, error)
	UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementLifetimeTickets(ctx context.Context, id primitive.ObjectID, tickets int) error
	Count(ctx context.Context) (int64, error)
}

// WeeklyEarningRepository defines the interface for weekly earning records
type WeeklyEarningRepository interface {
	Upsert(ctx context.Context, earning *models.WeeklyEarning) error
	FindByUserAndWeek(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*models.WeeklyEarning, error)
	FindByUserInWindow(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]*models.WeeklyEarning, error)
}

// QuarterlyPaymentRepository defines the interface for quarterly payment records
type QuarterlyPaymentRepository interface {
	Create(ctx context.Context, payment *models.QuarterlyPayment) error
	FindByUserAndQuarter(ctx context.Context, userID primitive.ObjectID, quarter string) (*models.QuarterlyPayment, error)
	FindByQuarter(ctx context.Context, quarter string) ([]*models.QuarterlyPayment, error)
	Update(ctx context.Context, payment *models.QuarterlyPayment) error
}

// ReferralRepository defines the interface for referral records
type ReferralRepository interface {
	Create(ctx context.Context, referral *models.Referral) error
	FindByReferrer(ctx context.Context, referrerUsername string, page, limit int) ([]*models.Referral, error)
	CountByReferrerInWindow(ctx context.Context, referrerUsername string, start, end time.Time) (int64, error)
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindByHostInWindow(ctx context.Context, hostUserID primitive.ObjectID, start, end time.Time) ([]*models.Event, error)
	FindUpcoming(ctx context.Context, now time.Time, page, limit int) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
