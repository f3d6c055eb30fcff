package admin

import "github.com/hirebuddy/hirebuddy/internal/domain"

type usersResponse struct {
	Users []domain.User `json:"users"`
}

type deleteUserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type bookingsResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}

type updateStatusRequest struct {
	Status string `json:"status" example:"Confirmed" enum:"Confirmed,Declined"`
}

type updateStatusResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

// statsResponse is the marketplace headcount snapshot
type statsResponse struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalBuddies   int64 `json:"totalBuddies"`
	TotalCustomers int64 `json:"totalCustomers"`
	TotalBookings  int64 `json:"totalBookings"`
}
