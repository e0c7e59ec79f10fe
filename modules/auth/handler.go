package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gigledger/gigledger/core"
	"github.com/gigledger/gigledger/pkg/logger"
	"github.com/gigledger/gigledger/pkg/validator"
)

// LoginRequest is the payload for the first login phase.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest is the payload for the second login phase.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Handler exposes the auth service over HTTP.
type Handler struct {
	svc        *Service
	codeLength int
	log        *slog.Logger
}

// NewHandler creates the HTTP handler for the auth module.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{svc: svc, codeLength: svc.codeLength, log: log}
}

// Routes mounts the auth endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.login)
	r.Post("/verify-otp", h.verifyOTP)
	return r
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.BindJSON(r, &req); err != nil {
		core.JSONError(w, core.ErrBadRequest)
		return
	}

	if err := validator.Apply(
		validator.Required("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.Required("password", req.Password),
	); err != nil {
		core.JSONError(w, toValidationError(err))
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		core.JSONError(w, h.mapError(r, err))
		return
	}

	core.JSON(w, http.StatusOK, result, nil)
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := core.BindJSON(r, &req); err != nil {
		core.JSONError(w, core.ErrBadRequest)
		return
	}

	if err := validator.Apply(
		validator.Required("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.NumericCode("code", req.Code, h.codeLength),
	); err != nil {
		core.JSONError(w, toValidationError(err))
		return
	}

	session, err := h.svc.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		core.JSONError(w, h.mapError(r, err))
		return
	}

	core.JSON(w, http.StatusOK, session, nil)
}

// mapError translates service errors into boundary HTTP errors. Anything not
// in the taxonomy is logged and collapsed to a 500.
func (h *Handler) mapError(r *http.Request, err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return core.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, ErrInvalidOrExpiredOTP):
		return core.NewHTTPError(http.StatusUnauthorized, "invalid_or_expired_otp")
	case errors.Is(err, ErrOTPExpired):
		return core.NewHTTPError(http.StatusUnauthorized, "otp_expired")
	case errors.Is(err, ErrDispatchFailed):
		return core.NewHTTPError(http.StatusBadGateway, "dispatch_failed")
	case errors.Is(err, ErrAccountNotFound):
		return core.NewHTTPError(http.StatusNotFound, "account_not_found")
	case errors.Is(err, ErrTooManyAttempts):
		return core.ErrTooManyRequests
	default:
		h.log.ErrorContext(r.Context(), "auth request failed",
			logger.Error(err),
			logger.Component("auth_handler"),
		)
		return core.ErrInternalServerError
	}
}

func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return core.ErrUnprocessableEntity
	}
	out := core.NewValidationError()
	for field, messages := range verrs {
		for _, msg := range messages {
			out.Add(field, msg)
		}
	}
	return out
}
