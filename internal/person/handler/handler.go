package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"person-service/internal/person/models"
	"person-service/internal/person/service"
	"person-service/internal/platform/metrics"
	"person-service/pkg/platform/httputil"
	"person-service/pkg/requestcontext"
)

// Service defines the person operations the handler needs.
type Service interface {
	Create(ctx context.Context, input service.CreateInput, requestID string) (*models.Person, error)
	List(ctx context.Context) ([]*models.Person, error)
}

// Handler wires person endpoints to the person service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New constructs a person handler with its dependencies.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Register mounts person endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/persons", h.HandleCreate)
	r.Get("/persons", h.HandleList)
}

// HandleCreate handles POST /persons.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeValid[CreatePersonRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	person, err := h.service.Create(ctx, req.ToInput(), requestID)
	if err != nil {
		h.logger.ErrorContext(ctx, "person create failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PersonsCreated.Inc()
	}
	h.logger.InfoContext(ctx, "person created",
		"request_id", requestID,
		"person_id", person.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, person)
}

// HandleList handles GET /persons.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	persons, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "person list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, persons)
}
