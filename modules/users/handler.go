package users

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gigledger/gigledger/core"
	"github.com/gigledger/gigledger/modules/auth"
	"github.com/gigledger/gigledger/pkg/logger"
	"github.com/gigledger/gigledger/pkg/validator"
)

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	FreelancerID    string   `json:"freelancerId"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Role            string   `json:"role"`
	ExperienceLevel string   `json:"experienceLevel"`
	HourlyRate      float64  `json:"hourlyRate"`
	Skills          []string `json:"skills"`
	Region          string   `json:"region"`
	Platform        string   `json:"platform"`
	PaymentMethod   string   `json:"paymentMethod"`
}

// UpdateUserRequest carries optional profile changes.
type UpdateUserRequest struct {
	Name            *string   `json:"name"`
	ExperienceLevel *string   `json:"experienceLevel"`
	HourlyRate      *float64  `json:"hourlyRate"`
	JobSuccessRate  *float64  `json:"jobSuccessRate"`
	Skills          *[]string `json:"skills"`
	Region          *string   `json:"region"`
	Platform        *string   `json:"platform"`
	EarningsUSD     *float64  `json:"earningsUSD"`
	ClientRating    *float64  `json:"clientRating"`
	JobsCompleted   *int      `json:"jobsCompleted"`
	ProjectType     *string   `json:"projectType"`
	RehireRate      *float64  `json:"rehireRate"`
	MarketingSpend  *float64  `json:"marketingSpend"`
	PaymentMethod   *string   `json:"paymentMethod"`
}

// Handler exposes profile management over HTTP.
type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{svc: svc, log: log.With(logger.Component("users_handler"))}
}

// Routes mounts the profile endpoints. Reads require any authenticated
// account; mutations require the admin role.
func (h *Handler) Routes(authmw func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(authmw)

	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})

	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := core.BindJSON(r, &req); err != nil {
		core.JSONError(w, core.ErrBadRequest)
		return
	}

	if err := validator.Apply(
		validator.Required("name", req.Name),
		validator.Required("email", req.Email),
		validator.ValidEmail("email", req.Email),
		validator.Required("password", req.Password),
		validator.MinLength("password", req.Password, 8),
		validExperienceLevel(req.ExperienceLevel),
	); err != nil {
		core.JSONError(w, toValidationError(err))
		return
	}

	u, err := h.svc.Create(r.Context(), CreateParams{
		FreelancerID:    req.FreelancerID,
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
		ExperienceLevel: req.ExperienceLevel,
		HourlyRate:      req.HourlyRate,
		Skills:          req.Skills,
		Region:          req.Region,
		Platform:        req.Platform,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, u, nil)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	params := listParamsFromQuery(r)
	us, page, err := h.svc.List(r.Context(), params)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, us, map[string]any{"pagination": page})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, u, nil)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := core.BindJSON(r, &req); err != nil {
		core.JSONError(w, core.ErrBadRequest)
		return
	}

	u, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateParams{
		Name:            req.Name,
		ExperienceLevel: req.ExperienceLevel,
		HourlyRate:      req.HourlyRate,
		JobSuccessRate:  req.JobSuccessRate,
		Skills:          req.Skills,
		Region:          req.Region,
		Platform:        req.Platform,
		EarningsUSD:     req.EarningsUSD,
		ClientRating:    req.ClientRating,
		JobsCompleted:   req.JobsCompleted,
		ProjectType:     req.ProjectType,
		RehireRate:      req.RehireRate,
		MarketingSpend:  req.MarketingSpend,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, u, nil)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidID):
		core.JSONError(w, core.NewHTTPError(http.StatusNotFound, "user_not_found"))
	case errors.Is(err, ErrEmailAlreadyExists):
		core.JSONError(w, core.NewHTTPError(http.StatusConflict, "email_already_exists"))
	default:
		h.log.ErrorContext(r.Context(), "user request failed", logger.Error(err))
		core.JSONError(w, core.ErrInternalServerError)
	}
}

func listParamsFromQuery(r *http.Request) ListParams {
	q := r.URL.Query()
	params := ListParams{
		Search:          q.Get("search"),
		ExperienceLevel: q.Get("experienceLevel"),
		Region:          q.Get("region"),
		Platform:        q.Get("platform"),
		SortBy:          q.Get("sortBy"),
		SortDesc:        q.Get("order") == "desc",
	}
	if v, err := strconv.ParseFloat(q.Get("minRate"), 64); err == nil {
		params.MinRate = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxRate"), 64); err == nil {
		params.MaxRate = &v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = v
	}
	// Both spellings of the page size are accepted.
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.PerPage = v
	}
	if v, err := strconv.Atoi(q.Get("perPage")); err == nil {
		params.PerPage = v
	}
	return params
}

// validExperienceLevel accepts an empty value; the profile field is optional.
func validExperienceLevel(value string) validator.Rule {
	return validator.Rule{
		Check: func() bool { return value == "" || slices.Contains(ExperienceLevels, value) },
		Field: "experienceLevel",
		Error: "must be one of " + strings.Join(ExperienceLevels, ", "),
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
