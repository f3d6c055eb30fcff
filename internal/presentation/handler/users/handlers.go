package users

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/notify"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/otp"
)

type Handler struct {
	userRepository domain.UserRepository
	pendingStore   otp.PendingStore
	sender         notify.Sender
	authManager    *auth.Manager
	logger         logging.Logger
}

func NewHandler(
	userRepository domain.UserRepository,
	pendingStore otp.PendingStore,
	sender notify.Sender,
	authManager *auth.Manager,
	logger logging.Logger,
) *Handler {
	return &Handler{
		userRepository: userRepository,
		pendingStore:   pendingStore,
		sender:         sender,
		authManager:    authManager,
		logger:         logger,
	}
}

// SignupHandler godoc
// @Summary      Start a signup
// @Description  Validates the new account, parks it pending phone verification and sends a one-time code
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body signupRequest true "Account details"
// @Success      200 {object} signupResponse "Verification code sent"
// @Failure      400 {object} map[string]interface{} "Validation error"
// @Failure      409 {object} map[string]interface{} "Phone already registered"
// @Router       /users/signup [post]
func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	role := domain.Role(req.Role)
	if role != domain.RoleCustomer && role != domain.RoleBuddy {
		json.WriteValidationError(w, errors.New("role must be customer or buddy"))
		return
	}

	if len(req.Password) < 8 {
		json.WriteValidationError(w, errors.New("password must be at least 8 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Phone, role, string(hash))
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if _, err := h.userRepository.GetByPhone(r.Context(), user.Phone); err == nil {
		json.WriteError(w, http.StatusConflict, domain.ErrUserAlreadyExists, "Phone number already registered")
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		json.WriteInternalError(w, err)
		return
	}

	code, err := otp.GenerateCode()
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	if err := h.pendingStore.SavePending(r.Context(), &otp.PendingSignup{User: user, Code: code}); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	if err := h.sender.SendOTP(r.Context(), user.Phone, code); err != nil {
		h.logger.Error(logging.General, logging.ExternalService, "otp delivery failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, signupResponse{
		Message: "verification code sent",
		Phone:   user.Phone,
	})
}

// VerifyOTPHandler godoc
// @Summary      Verify a signup code
// @Description  Confirms the one-time code and creates the parked account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body verifyOTPRequest true "Phone and code"
// @Success      201 {object} domain.User "Account created"
// @Failure      400 {object} map[string]interface{} "Wrong or expired code"
// @Failure      409 {object} map[string]interface{} "Phone already registered"
// @Router       /users/verify-otp [post]
func (h *Handler) VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.Phone == "" || req.Code == "" {
		json.WriteValidationError(w, errors.New("phone and code are required"))
		return
	}

	user, err := otp.Verify(r.Context(), h.pendingStore, req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrPendingNotFound):
			json.WriteBadRequestError(w, "No pending signup for this phone, or the code expired")
		case errors.Is(err, otp.ErrCodeMismatch):
			json.WriteBadRequestError(w, "Wrong verification code")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	if err := h.userRepository.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			json.WriteError(w, http.StatusConflict, err, "Phone number already registered")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	// Best effort: the entry expires on its own if this fails.
	_ = h.pendingStore.DeletePending(r.Context(), req.Phone)

	json.Write(w, http.StatusCreated, user)
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Verifies phone and password, sets the session cookie and returns the token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials"
// @Success      200 {object} loginResponse "Logged in"
// @Failure      401 {object} map[string]interface{} "Wrong phone or password"
// @Router       /users/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	user, err := h.userRepository.GetByPhone(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer as a wrong password, so phone numbers can't be probed.
			json.WriteUnauthorizedError(w, "Wrong phone or password")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		json.WriteUnauthorizedError(w, "Wrong phone or password")
		return
	}

	token, err := h.authManager.Issue(user)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	auth.SetSessionCookie(w, token, int(h.authManager.TokenTTL().Seconds()))
	json.Write(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// LogoutHandler godoc
// @Summary      Log out
// @Description  Clears the session cookie
// @Tags         users
// @Produce      json
// @Success      200 {object} messageResponse "Logged out"
// @Router       /users/logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	json.Write(w, http.StatusOK, messageResponse{Message: "logged out"})
}
