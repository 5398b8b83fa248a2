package services

import (
	"context"
	"time"

	"github.com/dimesonly/platform-backend/internal/jackpot"
	"github.com/dimesonly/platform-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TipService defines the interface for tip recording and ticket accounting
type TipService interface {
	// RecordTip verifies the payment reference, persists the tip, feeds the
	// jackpot pool and credits the tipper's tickets
	RecordTip(ctx context.Context, req *RecordTipRequest) (*models.Tip, error)

	// TicketSummary recomputes a tipper's ticket count for a period from the
	// tip ledger
	TicketSummary(ctx context.Context, userID primitive.ObjectID, periodStart, periodEnd time.Time) (*models.TicketBatch, error)

	// GetTipsForUser lists tips received by a performer
	GetTipsForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Tip, error)
}

// RecordTipRequest carries a verified tipping action into the ledger
type RecordTipRequest struct {
	TipperID           primitive.ObjectID
	TippedUserID       primitive.ObjectID
	Amount             float64
	ReferredByUsername string
	PaymentRef         string
}

// JackpotStatus is the live view of the active pool served to clients
type JackpotStatus struct {
	Pool                *models.JackpotPool `json:"pool"`
	State               models.PoolStatus   `json:"state"`
	CountdownActive     bool                `json:"countdownActive"`
	RemainingToActivate float64             `json:"remainingToActivate"`
	NextDrawingTime     time.Time           `json:"nextDrawingTime"`
	Countdown           jackpot.Countdown   `json:"countdown"`
}

// JackpotService defines the interface for pool status and drawing lifecycle
type JackpotService interface {
	// GetStatus reports the active pool, its state and the countdown to the
	// next Friday drawing, creating a fresh pool if none is active
	GetStatus(ctx context.Context) (*JackpotStatus, error)

	// ScheduleDrawing creates a SCHEDULED drawing for the active pool at the
	// next Friday 18:00
	ScheduleDrawing(ctx context.Context) (*models.Drawing, error)

	// ExecuteDrawing settles a scheduled drawing: winner selection, prize
	// rows, pool reset
	ExecuteDrawing(ctx context.Context, drawingID primitive.ObjectID) (*models.Drawing, error)

	// GetDrawingByID retrieves a drawing by its ID
	GetDrawingByID(ctx context.Context, drawingID primitive.ObjectID) (*models.Drawing, error)

	// GetWinnersByDrawingID retrieves the payout rows for a drawing
	GetWinnersByDrawingID(ctx context.Context, drawingID primitive.ObjectID) ([]*models.Winner, error)

	// GetPoolHistory lists past and present pools
	GetPoolHistory(ctx context.Context, page, limit int) ([]*models.JackpotPool, error)
}

// QuarterlyStatement is a performer's compliance position for one quarter
type QuarterlyStatement struct {
	UserID          primitive.ObjectID     `json:"userId"`
	Quarter         string                 `json:"quarter"`
	Eligible        bool                   `json:"eligible"`
	BaseAmount      float64                `json:"baseAmount,omitempty"`
	Deductions      []models.DeductionLine `json:"deductions,omitempty"`
	TotalDeductions float64                `json:"totalDeductions,omitempty"`
	NetAmount       float64                `json:"netAmount,omitempty"`
}

// EarningsService defines the interface for weekly earnings and quarterly
// compliance payments
type EarningsService interface {
	// UpsertWeekly records a performer's activity counts for one week
	UpsertWeekly(ctx context.Context, userID primitive.ObjectID, weekOf time.Time, counts WeeklyActivityCounts) (*models.WeeklyEarning, error)

	// GetWeekly retrieves one week's earning record
	GetWeekly(ctx context.Context, userID primitive.ObjectID, weekOf time.Time) (*models.WeeklyEarning, error)

	// QuarterlyStatement computes the compliance statement for the quarter
	// containing asOf. Non-performer roles get Eligible=false with no figures.
	QuarterlyStatement(ctx context.Context, userID primitive.ObjectID, asOf time.Time) (*QuarterlyStatement, error)

	// FinalizeQuarter persists the quarterly payment record for a performer
	FinalizeQuarter(ctx context.Context, userID primitive.ObjectID, asOf time.Time) (*models.QuarterlyPayment, error)
}

// WeeklyActivityCounts are the per-category activity counts reported for a week
type WeeklyActivityCounts struct {
	Referrals int `json:"referrals"`
	Photos    int `json:"photos"`
	Videos    int `json:"videos"`
	Messages  int `json:"messages"`
	Events    int `json:"events"`
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

// UserService defines the interface for user profile operations
type UserService interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	GetUserCount(ctx context.Context) (int64, error)
}

// ReferralService defines the interface for referral tracking
type ReferralService interface {
	RecordReferral(ctx context.Context, referrerUsername string, referredUserID primitive.ObjectID) error
	GetReferrals(ctx context.Context, referrerUsername string, page, limit int) ([]*models.Referral, error)
	CountReferralsInWeek(ctx context.Context, referrerUsername string, weekOf time.Time) (int64, error)
}

// EventService defines the interface for event operations
type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	GetUpcomingEvents(ctx context.Context, page, limit int) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	CancelEvent(ctx context.Context, id primitive.ObjectID) error
}
