package listings

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gigledger/gigledger/core"
	"github.com/gigledger/gigledger/modules/auth"
	"github.com/gigledger/gigledger/pkg/logger"
	"github.com/gigledger/gigledger/pkg/validator"
)

// CreateListingRequest is the gig record payload.
type CreateListingRequest struct {
	FreelancerID    string  `json:"freelancerId"`
	JobCategory     string  `json:"jobCategory"`
	Platform        string  `json:"platform"`
	ExperienceLevel string  `json:"experienceLevel"`
	ClientRegion    string  `json:"clientRegion"`
	PaymentMethod   string  `json:"paymentMethod"`
	JobsCompleted   int     `json:"jobsCompleted"`
	EarningsUSD     float64 `json:"earningsUSD"`
	HourlyRate      float64 `json:"hourlyRate"`
	JobSuccessRate  float64 `json:"jobSuccessRate"`
	ClientRating    float64 `json:"clientRating"`
	JobDurationDays float64 `json:"jobDurationDays"`
	ProjectType     string  `json:"projectType"`
	RehireRate      float64 `json:"rehireRate"`
	MarketingSpend  float64 `json:"marketingSpend"`
}

// UpdateListingRequest carries optional record changes.
type UpdateListingRequest struct {
	JobCategory     *string  `json:"jobCategory"`
	Platform        *string  `json:"platform"`
	ExperienceLevel *string  `json:"experienceLevel"`
	ClientRegion    *string  `json:"clientRegion"`
	PaymentMethod   *string  `json:"paymentMethod"`
	JobsCompleted   *int     `json:"jobsCompleted"`
	EarningsUSD     *float64 `json:"earningsUSD"`
	HourlyRate      *float64 `json:"hourlyRate"`
	JobSuccessRate  *float64 `json:"jobSuccessRate"`
	ClientRating    *float64 `json:"clientRating"`
	JobDurationDays *float64 `json:"jobDurationDays"`
	ProjectType     *string  `json:"projectType"`
	RehireRate      *float64 `json:"rehireRate"`
	MarketingSpend  *float64 `json:"marketingSpend"`
}

// Handler exposes gig record management over HTTP.
type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{svc: svc, log: log.With(logger.Component("listings_handler"))}
}

// Routes mounts the gig record endpoints. Reads require any authenticated
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
	var req CreateListingRequest
	if err := core.BindJSON(r, &req); err != nil {
		core.JSONError(w, core.ErrBadRequest)
		return
	}

	if err := validator.Apply(
		validator.Required("jobCategory", req.JobCategory),
		validator.Required("platform", req.Platform),
	); err != nil {
		core.JSONError(w, toValidationError(err))
		return
	}

	l, err := h.svc.Create(r.Context(), CreateParams{
		FreelancerID:    req.FreelancerID,
		JobCategory:     req.JobCategory,
		Platform:        req.Platform,
		ExperienceLevel: req.ExperienceLevel,
		ClientRegion:    req.ClientRegion,
		PaymentMethod:   req.PaymentMethod,
		JobsCompleted:   req.JobsCompleted,
		EarningsUSD:     req.EarningsUSD,
		HourlyRate:      req.HourlyRate,
		JobSuccessRate:  req.JobSuccessRate,
		ClientRating:    req.ClientRating,
		JobDurationDays: req.JobDurationDays,
		ProjectType:     req.ProjectType,
		RehireRate:      req.RehireRate,
		MarketingSpend:  req.MarketingSpend,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, l, nil)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ls, page, err := h.svc.List(r.Context(), listParamsFromQuery(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, ls, map[string]any{"pagination": page})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, l, nil)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateListingRequest
	if err := core.BindJSON(r, &req); err != nil {
		core.JSONError(w, core.ErrBadRequest)
		return
	}

	l, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateParams{
		JobCategory:     req.JobCategory,
		Platform:        req.Platform,
		ExperienceLevel: req.ExperienceLevel,
		ClientRegion:    req.ClientRegion,
		PaymentMethod:   req.PaymentMethod,
		JobsCompleted:   req.JobsCompleted,
		EarningsUSD:     req.EarningsUSD,
		HourlyRate:      req.HourlyRate,
		JobSuccessRate:  req.JobSuccessRate,
		ClientRating:    req.ClientRating,
		JobDurationDays: req.JobDurationDays,
		ProjectType:     req.ProjectType,
		RehireRate:      req.RehireRate,
		MarketingSpend:  req.MarketingSpend,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, l, nil)
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
	case errors.Is(err, ErrListingNotFound), errors.Is(err, ErrInvalidID):
		core.JSONError(w, core.NewHTTPError(http.StatusNotFound, "listing_not_found"))
	default:
		h.log.ErrorContext(r.Context(), "listing request failed", logger.Error(err))
		core.JSONError(w, core.ErrInternalServerError)
	}
}

func listParamsFromQuery(r *http.Request) ListParams {
	q := r.URL.Query()
	params := ListParams{
		Search:          q.Get("search"),
		Platform:        q.Get("platform"),
		ExperienceLevel: q.Get("experienceLevel"),
		ClientRegion:    q.Get("clientRegion"),
		ProjectType:     q.Get("projectType"),
		SortBy:          q.Get("sortBy"),
		SortDesc:        q.Get("order") == "desc",
	}
	if v, err := strconv.ParseFloat(q.Get("minEarnings"), 64); err == nil {
		params.MinEarnings = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxEarnings"), 64); err == nil {
		params.MaxEarnings = &v
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
