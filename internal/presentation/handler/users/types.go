package users

import "github.com/hirebuddy/hirebuddy/internal/domain"

// signupRequest represents a new account request, parked until OTP verification
type signupRequest struct {
	Name     string `json:"name" example:"Asha Rao"`
	Email    string `json:"email" example:"asha@example.com"`
	Phone    string `json:"phone" example:"+919876543210"` // E.164
	Role     string `json:"role" example:"customer" enum:"customer,buddy"`
	Password string `json:"password" minLength:"8"`
}

type signupResponse struct {
	Message string `json:"message" example:"verification code sent"`
	Phone   string `json:"phone" example:"+919876543210"`
}

// verifyOTPRequest confirms the code sent to the signup phone number
type verifyOTPRequest struct {
	Phone string `json:"phone" example:"+919876543210"`
	Code  string `json:"code" example:"12345"`
}

type loginRequest struct {
	Phone    string `json:"phone" example:"+919876543210"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
