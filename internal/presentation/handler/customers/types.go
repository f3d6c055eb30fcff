package customers

import "github.com/hirebuddy/hirebuddy/internal/domain"

// bookBuddyRequest asks for a booking with the chosen buddy
type bookBuddyRequest struct {
	BuddyID  string `json:"buddyId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Date     string `json:"date" example:"2026-09-15"`
	Location string `json:"location" example:"Jaipur"`
}

type bookBuddyResponse struct {
	Message string          `json:"message" example:"Booking request sent"`
	Booking *domain.Booking `json:"booking"`
}

type buddiesResponse struct {
	Buddies []domain.User `json:"buddies"`
}

type buddyResponse struct {
	Buddy *domain.User `json:"buddy"`
}

type bookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}
