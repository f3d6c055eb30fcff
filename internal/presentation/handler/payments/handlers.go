package payments

import (
	"errors"
	"net/http"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/payments"
)

type Handler struct {
	userRepository domain.UserRepository
	gateway        payments.Gateway
	verifier       *payments.Verifier
	keyID          string
}

func NewHandler(userRepository domain.UserRepository, gateway payments.Gateway, verifier *payments.Verifier, keyID string) *Handler {
	return &Handler{
		userRepository: userRepository,
		gateway:        gateway,
		verifier:       verifier,
		keyID:          keyID,
	}
}

// CreateOrderHandler godoc
// @Summary      Create a top-up order
// @Description  Opens a payment order with the gateway for a credit top-up
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body createOrderRequest true "Amount in the smallest currency unit"
// @Success      201 {object} createOrderResponse "Order created"
// @Failure      400 {object} map[string]interface{} "Invalid amount"
// @Security     BearerAuth
// @Router       /payments/create-order [post]
func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.Amount <= 0 {
		json.WriteValidationError(w, errors.New("amount must be positive"))
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), req.Amount, req.Currency)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, createOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    h.keyID,
	})
}

// VerifyHandler godoc
// @Summary      Verify a payment
// @Description  Checks the gateway signature and credits the caller's account on success
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body verifyRequest true "Gateway callback fields"
// @Success      200 {object} verifyResponse "Payment verified, credits added"
// @Failure      400 {object} map[string]interface{} "Signature mismatch"
// @Security     BearerAuth
// @Router       /payments/verify [post]
func (h *Handler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	var req verifyRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		json.WriteValidationError(w, errors.New("orderId, paymentId and signature are required"))
		return
	}

	if err := h.verifier.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		json.WriteBadRequestError(w, "Payment verification failed")
		return
	}

	user, err := h.userRepository.AddCredits(r.Context(), identity.UserID, payments.CreditsPerTopUp)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			json.WriteNotFoundError(w, "User not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, verifyResponse{
		Success: true,
		Message: "Payment verified, credits added",
		Credits: user.Credits,
	})
}

// GetCreditsHandler godoc
// @Summary      View credit balance
// @Tags         payments
// @Produce      json
// @Success      200 {object} creditsResponse "Current credits"
// @Security     BearerAuth
// @Router       /payments/credits [get]
func (h *Handler) GetCreditsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	user, err := h.userRepository.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			json.WriteNotFoundError(w, "User not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, creditsResponse{Credits: user.Credits})
}
