package buddies

import "github.com/hirebuddy/hirebuddy/internal/domain"

// updateProfileRequest replaces the buddy's public profile
type updateProfileRequest struct {
	BaseRate       int      `json:"baseRate" example:"2000"` // per-booking rate in rupees
	Expertise      []string `json:"expertise" example:"travel,photography"`
	Location       string   `json:"location" example:"Jaipur"`
	Languages      []string `json:"languages" example:"hindi,english"`
	Bio            string   `json:"bio"`
	AvailableDates []string `json:"availableDates" example:"2026-09-15"`
}

type updateAvailabilityRequest struct {
	AvailableDates []string `json:"availableDates"`
}

type buddyResponse struct {
	Message string       `json:"message"`
	Buddy   *domain.User `json:"buddy"`
}

type bookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}

// updateStatusRequest confirms or declines a pending booking
type updateStatusRequest struct {
	Status string `json:"status" example:"Confirmed" enum:"Confirmed,Declined"`
}

type updateStatusResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

type transaction struct {
	BookingID string `json:"bookingId"`
	Amount    int    `json:"amount"`
	Date      string `json:"date"`
}

// earningsResponse totals the buddy's confirmed bookings at the profile rate
type earningsResponse struct {
	TotalEarnings int           `json:"totalEarnings"`
	Transactions  []transaction `json:"transactions"`
}
