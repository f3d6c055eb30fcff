package payments

// createOrderRequest asks the gateway for a credit top-up order
type createOrderRequest struct {
	Amount   int64  `json:"amount" example:"50000"` // smallest currency unit
	Currency string `json:"currency" example:"INR"`
}

type createOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// verifyRequest carries the gateway callback to verify
type verifyRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Credits int    `json:"credits"`
}

type creditsResponse struct {
	Credits int `json:"credits"`
}
