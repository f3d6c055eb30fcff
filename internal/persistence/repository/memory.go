package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hirebuddy/hirebuddy/internal/domain"
)

// In-memory repositories backing tests and local development without a
// running MongoDB. They mirror the semantics of the mongo implementations,
// including sort order and the credit floor.

type InMemoryUserRepository struct {
	users map[string]*domain.User
	mu    sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Phone == user.Phone || u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	cpy := *user
	r.users[user.ID] = &cpy
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (r *InMemoryUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Phone == phone {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) ListBuddies(ctx context.Context, filter domain.BuddyFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var buddies []domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleBuddy {
			continue
		}
		if !matchesBuddyFilter(u, filter) {
			continue
		}
		buddies = append(buddies, *u)
	}
	return buddies, nil
}

func matchesBuddyFilter(u *domain.User, filter domain.BuddyFilter) bool {
	profile := u.BuddyProfile
	if filter.Location != "" {
		if profile == nil || !strings.Contains(strings.ToLower(profile.Location), strings.ToLower(filter.Location)) {
			return false
		}
	}
	if len(filter.Expertise) > 0 {
		if profile == nil || !containsAny(profile.Expertise, filter.Expertise) {
			return false
		}
	}
	if filter.Date != "" {
		if profile == nil || !containsAny(profile.AvailableDates, []string{filter.Date}) {
			return false
		}
	}
	return true
}

func containsAny(haystack, needles []string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}

func (r *InMemoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *InMemoryUserRepository) UpdateBuddyProfile(ctx context.Context, userID string, profile *domain.BuddyProfile) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.BuddyProfile = profile
	cpy := *u
	return &cpy, nil
}

func (r *InMemoryUserRepository) UpdateAvailability(ctx context.Context, userID string, dates []string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.BuddyProfile == nil {
		u.BuddyProfile = &domain.BuddyProfile{}
	}
	u.BuddyProfile.AvailableDates = dates
	cpy := *u
	return &cpy, nil
}

func (r *InMemoryUserRepository) AddCredits(ctx context.Context, userID string, delta int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.Credits+delta < 0 {
		return nil, domain.ErrInsufficientCredits
	}
	u.Credits += delta
	cpy := *u
	return &cpy, nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(r.users, id)
	return u, nil
}

func (r *InMemoryUserRepository) Count(ctx context.Context, role domain.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if role == "" {
		return int64(len(r.users)), nil
	}
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryUserRepository) EnsureIndexes(ctx context.Context) error { return nil }

type InMemoryBookingRepository struct {
	bookings map[string]*domain.Booking
	mu       sync.RWMutex
}

func NewInMemoryBookingRepository() *InMemoryBookingRepository {
	return &InMemoryBookingRepository{bookings: make(map[string]*domain.Booking)}
}

func (r *InMemoryBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *booking
	r.bookings[booking.ID] = &cpy
	return nil
}

func (r *InMemoryBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cpy := *b
	return &cpy, nil
}

func (r *InMemoryBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.CustomerID == customerID })
}

func (r *InMemoryBookingRepository) ListByBuddy(ctx context.Context, buddyID string) ([]domain.Booking, error) {
	return r.list(func(b *domain.Booking) bool { return b.BuddyID == buddyID })
}

func (r *InMemoryBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.list(func(*domain.Booking) bool { return true })
}

func (r *InMemoryBookingRepository) list(match func(*domain.Booking) bool) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []domain.Booking
	for _, b := range r.bookings {
		if match(b) {
			bookings = append(bookings, *b)
		}
	}
	// Newest first, matching the mongo sort.
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *InMemoryBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if err := b.Transition(status); err != nil {
		return nil, err
	}
	cpy := *b
	return &cpy, nil
}

func (r *InMemoryBookingRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

func (r *InMemoryBookingRepository) EnsureIndexes(ctx context.Context) error { return nil }

type InMemoryMessageRepository struct {
	messages map[string][]domain.Message // bookingID -> messages in insert order
	mu       sync.RWMutex
}

func NewInMemoryMessageRepository() *InMemoryMessageRepository {
	return &InMemoryMessageRepository{messages: make(map[string][]domain.Message)}
}

func (r *InMemoryMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if message == nil || message.BookingID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[message.BookingID] = append(r.messages[message.BookingID], *message)
	return nil
}

func (r *InMemoryMessageRepository) ListByBookingID(ctx context.Context, bookingID string) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.messages[bookingID]
	cpy := make([]domain.Message, len(msgs))
	copy(cpy, msgs)

	sort.SliceStable(cpy, func(i, j int) bool {
		return cpy[i].CreatedAt.Before(cpy[j].CreatedAt)
	})
	return cpy, nil
}

func (r *InMemoryMessageRepository) EnsureIndexes(ctx context.Context) error { return nil }

type InMemoryBookingAuditRepository struct {
	logs []domain.BookingAuditLog
	mu   sync.RWMutex
}

func NewInMemoryBookingAuditRepository() *InMemoryBookingAuditRepository {
	return &InMemoryBookingAuditRepository{}
}

func (r *InMemoryBookingAuditRepository) Log(ctx context.Context, entry *domain.BookingAuditLog) error {
	if entry == nil {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, *entry)
	return nil
}

func (r *InMemoryBookingAuditRepository) GetByBookingID(ctx context.Context, bookingID string, limit int) ([]domain.BookingAuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.BookingAuditLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		if r.logs[i].BookingID != bookingID {
			continue
		}
		out = append(out, r.logs[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *InMemoryBookingAuditRepository) GetByEventType(ctx context.Context, eventType domain.BookingEventType, from, to time.Time) ([]domain.BookingAuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.BookingAuditLog
	for _, l := range r.logs {
		if l.EventType != eventType {
			continue
		}
		if l.Timestamp.Before(from) || l.Timestamp.After(to) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *InMemoryBookingAuditRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []domain.BookingAuditLog
	for _, l := range r.logs {
		if l.Timestamp.Before(before) {
			continue
		}
		kept = append(kept, l)
	}
	r.logs = kept
	return nil
}

func (r *InMemoryBookingAuditRepository) EnsureIndexes(ctx context.Context) error { return nil }
