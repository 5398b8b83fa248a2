package services

import (
	"context"
	"time"

	"github.com/dimesonly/platform-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes backing the service tests. They mirror the
// MongoDB implementations' contract, including mongo.ErrNoDocuments on
// missing rows, so services exercise the same error paths.

type fakeUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

// add stores a copy and returns it with the assigned ID. Fakes copy on both
// store and retrieve so service-side mutation of returned structs cannot
// leak back into the store, matching real driver behavior.
func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = *user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.users {
		if user.Role == role {
			user := user
			out = append(out, &user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) IncrementLifetimeTickets(ctx context.Context, id primitive.ObjectID, tickets int) error {
	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.LifetimeTickets += tickets
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeTipRepo struct {
	tips []*models.Tip
}

func (r *fakeTipRepo) Create(ctx context.Context, tip *models.Tip) error {
	if tip.ID.IsZero() {
		tip.ID = primitive.NewObjectID()
	}
	r.tips = append(r.tips, tip)
	return nil
}

func (r *fakeTipRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tip, error) {
	for _, tip := range r.tips {
		if tip.ID == id {
			return tip, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTipRepo) FindByTippedUser(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.Tip, error) {
	var out []*models.Tip
	for _, tip := range r.tips {
		if tip.TippedUserID == userID {
			out = append(out, tip)
		}
	}
	return out, nil
}

func (r *fakeTipRepo) FindByTipperInWindow(ctx context.Context, tipperID primitive.ObjectID, start, end time.Time) ([]*models.Tip, error) {
	var out []*models.Tip
	for _, tip := range r.tips {
		if tip.TipperID == tipperID && inWindow(tip.CreatedAt, start, end) {
			out = append(out, tip)
		}
	}
	return out, nil
}

func (r *fakeTipRepo) FindByTippedUserInWindow(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]*models.Tip, error) {
	var out []*models.Tip
	for _, tip := range r.tips {
		if tip.TippedUserID == userID && inWindow(tip.CreatedAt, start, end) {
			out = append(out, tip)
		}
	}
	return out, nil
}

func (r *fakeTipRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Tip, error) {
	var out []*models.Tip
	for _, tip := range r.tips {
		if inWindow(tip.CreatedAt, start, end) {
			out = append(out, tip)
		}
	}
	return out, nil
}

func (r *fakeTipRepo) FindByPaymentRef(ctx context.Context, paymentRef string) (*models.Tip, error) {
	for _, tip := range r.tips {
		if tip.PaymentRef == paymentRef {
			return tip, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTipRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.tips)), nil
}

type fakePoolRepo struct {
	pools []*models.JackpotPool
}

func (r *fakePoolRepo) Create(ctx context.Context, pool *models.JackpotPool) error {
	if pool.ID.IsZero() {
		pool.ID = primitive.NewObjectID()
	}
	r.pools = append(r.pools, pool)
	return nil
}

func (r *fakePoolRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.JackpotPool, error) {
	for _, pool := range r.pools {
		if pool.ID == id {
			return pool, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakePoolRepo) FindActive(ctx context.Context) (*models.JackpotPool, error) {
	for _, pool := range r.pools {
		if pool.Status != models.PoolStatusDrawn {
			return pool, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakePoolRepo) Update(ctx context.Context, pool *models.JackpotPool) error {
	for i, existing := range r.pools {
		if existing.ID == pool.ID {
			r.pools[i] = pool
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakePoolRepo) FindAll(ctx context.Context, page, limit int) ([]*models.JackpotPool, error) {
	return r.pools, nil
}

type fakeDrawingRepo struct {
	drawings []*models.Drawing
}

func (r *fakeDrawingRepo) Create(ctx context.Context, drawing *models.Drawing) error {
	if drawing.ID.IsZero() {
		drawing.ID = primitive.NewObjectID()
	}
	r.drawings = append(r.drawings, drawing)
	return nil
}

func (r *fakeDrawingRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Drawing, error) {
	for _, drawing := range r.drawings {
		if drawing.ID == id {
			return drawing, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeDrawingRepo) FindByStatus(ctx context.Context, status models.DrawingStatus) ([]*models.Drawing, error) {
	var out []*models.Drawing
	for _, drawing := range r.drawings {
		if drawing.Status == status {
			out = append(out, drawing)
		}
	}
	return out, nil
}

func (r *fakeDrawingRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]*models.Drawing, error) {
	var out []*models.Drawing
	for _, drawing := range r.drawings {
		if inWindow(drawing.DrawingTime, start, end) {
			out = append(out, drawing)
		}
	}
	return out, nil
}

func (r *fakeDrawingRepo) Update(ctx context.Context, drawing *models.Drawing) error {
	for i, existing := range r.drawings {
		if existing.ID == drawing.ID {
			r.drawings[i] = drawing
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeWinnerRepo struct {
	winners []*models.Winner
}

func (r *fakeWinnerRepo) CreateMany(ctx context.Context, winners []*models.Winner) error {
	for _, winner := range winners {
		if winner.ID.IsZero() {
			winner.ID = primitive.NewObjectID()
		}
	}
	r.winners = append(r.winners, winners...)
	return nil
}

func (r *fakeWinnerRepo) FindByDrawingID(ctx context.Context, drawingID primitive.ObjectID) ([]*models.Winner, error) {
	var out []*models.Winner
	for _, winner := range r.winners {
		if winner.DrawingID == drawingID {
			out = append(out, winner)
		}
	}
	return out, nil
}

func (r *fakeWinnerRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Winner, error) {
	var out []*models.Winner
	for _, winner := range r.winners {
		if winner.UserID == userID {
			out = append(out, winner)
		}
	}
	return out, nil
}

func (r *fakeWinnerRepo) UpdateClaimStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	for _, winner := range r.winners {
		if winner.ID == id {
			winner.ClaimStatus = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type weekKey struct {
	userID    primitive.ObjectID
	weekStart time.Time
}

type fakeWeeklyEarningRepo struct {
	earnings map[weekKey]*models.WeeklyEarning
}

func newFakeWeeklyEarningRepo() *fakeWeeklyEarningRepo {
	return &fakeWeeklyEarningRepo{earnings: make(map[weekKey]*models.WeeklyEarning)}
}

func (r *fakeWeeklyEarningRepo) Upsert(ctx context.Context, earning *models.WeeklyEarning) error {
	if earning.ID.IsZero() {
		earning.ID = primitive.NewObjectID()
	}
	r.earnings[weekKey{earning.UserID, earning.WeekStart.UTC()}] = earning
	return nil
}

func (r *fakeWeeklyEarningRepo) FindByUserAndWeek(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*models.WeeklyEarning, error) {
	earning, ok := r.earnings[weekKey{userID, weekStart.UTC()}]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return earning, nil
}

func (r *fakeWeeklyEarningRepo) FindByUserInWindow(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]*models.WeeklyEarning, error) {
	var out []*models.WeeklyEarning
	for key, earning := range r.earnings {
		if key.userID == userID && inWindow(key.weekStart, start, end) {
			out = append(out, earning)
		}
	}
	return out, nil
}

type fakeQuarterlyPaymentRepo struct {
	payments []*models.QuarterlyPayment
}

func (r *fakeQuarterlyPaymentRepo) Create(ctx context.Context, payment *models.QuarterlyPayment) error {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	r.payments = append(r.payments, payment)
	return nil
}

func (r *fakeQuarterlyPaymentRepo) FindByUserAndQuarter(ctx context.Context, userID primitive.ObjectID, quarter string) (*models.QuarterlyPayment, error) {
	for _, payment := range r.payments {
		if payment.UserID == userID && payment.Quarter == quarter {
			return payment, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeQuarterlyPaymentRepo) FindByQuarter(ctx context.Context, quarter string) ([]*models.QuarterlyPayment, error) {
	var out []*models.QuarterlyPayment
	for _, payment := range r.payments {
		if payment.Quarter == quarter {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (r *fakeQuarterlyPaymentRepo) Update(ctx context.Context, payment *models.QuarterlyPayment) error {
	for i, existing := range r.payments {
		if existing.ID == payment.ID {
			r.payments[i] = payment
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeEventRepo struct {
	events []*models.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	for _, event := range r.events {
		if event.ID == id {
			return event, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeEventRepo) FindByHostInWindow(ctx context.Context, hostUserID primitive.ObjectID, start, end time.Time) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range r.events {
		if event.HostUserID == hostUserID && event.Status != models.EventStatusCancelled && inWindow(event.StartAt, start, end) {
			out = append(out, event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindUpcoming(ctx context.Context, now time.Time, page, limit int) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range r.events {
		if event.Status == models.EventStatusActive && event.StartAt.After(now) {
			out = append(out, event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *models.Event) error {
	for i, existing := range r.events {
		if existing.ID == event.ID {
			r.events[i] = event
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeEventRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, event := range r.events {
		if event.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeReferralRepo struct {
	referrals []*models.Referral
}

func (r *fakeReferralRepo) Create(ctx context.Context, referral *models.Referral) error {
	if referral.ID.IsZero() {
		referral.ID = primitive.NewObjectID()
	}
	r.referrals = append(r.referrals, referral)
	return nil
}

func (r *fakeReferralRepo) FindByReferrer(ctx context.Context, referrerUsername string, page, limit int) ([]*models.Referral, error) {
	var out []*models.Referral
	for _, referral := range r.referrals {
		if referral.ReferrerUsername == referrerUsername {
			out = append(out, referral)
		}
	}
	return out, nil
}

func (r *fakeReferralRepo) CountByReferrerInWindow(ctx context.Context, referrerUsername string, start, end time.Time) (int64, error) {
	var count int64
	for _, referral := range r.referrals {
		if referral.ReferrerUsername == referrerUsername && inWindow(referral.CreatedAt, start, end) {
			count++
		}
	}
	return count, nil
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
