package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/validate"
)

const FreeTrialCredits = 3

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBuddy    Role = "buddy"
	RoleAdmin    Role = "admin"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

type User struct {
	ID           string        `bson:"_id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	Phone        string        `bson:"phone" json:"phone"`
	Role         Role          `bson:"role" json:"role"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Credits      int           `bson:"credits" json:"credits"`
	BuddyProfile *BuddyProfile `bson:"buddy_profile,omitempty" json:"buddyProfile,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
}

type BuddyProfile struct {
	BaseRate       int      `bson:"base_rate" json:"baseRate"`
	Expertise      []string `bson:"expertise" json:"expertise"`
	Location       string   `bson:"location" json:"location"`
	Languages      []string `bson:"languages" json:"languages"`
	Bio            string   `bson:"bio" json:"bio"`
	AvailableDates []string `bson:"available_dates" json:"availableDates"`
}

// BuddyFilter narrows the buddy listing. Location is a case-insensitive
// substring match, Expertise and Date match any of the profile's entries.
type BuddyFilter struct {
	Location  string
	Expertise []string
	Date      string
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	ListBuddies(ctx context.Context, filter BuddyFilter) ([]User, error)
	List(ctx context.Context) ([]User, error)
	UpdateBuddyProfile(ctx context.Context, userID string, profile *BuddyProfile) (*User, error)
	UpdateAvailability(ctx context.Context, userID string, dates []string) (*User, error)
	AddCredits(ctx context.Context, userID string, delta int) (*User, error)
	Delete(ctx context.Context, id string) (*User, error)
	Count(ctx context.Context, role Role) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

func NewUser(name, email, phone string, role Role, passwordHash string) (*User, error) {
	validateName := validate.Field("name", validate.Required(), validate.MaxLength(64))
	validateEmail := validate.Field("email", validate.Required(), validate.Email())
	// E.164, matching the original signup contract
	validatePhone := validate.Field("phone", validate.Required(), validate.Matches(`^\+[1-9]\d{1,14}$`, "must be an E.164 phone number"))

	for _, check := range []struct {
		fn    validate.Validator
		value string
	}{
		{validateName, name},
		{validateEmail, email},
		{validatePhone, phone},
	} {
		if err := check.fn(check.value); err != nil {
			return nil, err
		}
	}

	switch role {
	case RoleCustomer, RoleBuddy, RoleAdmin:
	default:
		return nil, errors.New("role must be one of: customer, buddy, admin")
	}

	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}

	return &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        phone,
		Role:         role,
		PasswordHash: passwordHash,
		Credits:      FreeTrialCredits,
		CreatedAt:    time.Now(),
	}, nil
}

func (u *User) IsBuddy() bool    { return u.Role == RoleBuddy }
func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }
func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
