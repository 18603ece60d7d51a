package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sextosistema/agency-platform/internal/observability/metrics"
	"github.com/sextosistema/agency-platform/pkg/logging"
)

// User-facing messages, kept in the site's language.
const (
	msgInvalidPayload = "Datos inválidos"
	msgDuplicate      = "Ya recibimos tu mensaje recientemente. Nos pondremos en contacto pronto."
	msgCreated        = "¡Mensaje enviado! Nos pondremos en contacto pronto."
	msgCreateFailed   = "Error al enviar el mensaje. Por favor intenta de nuevo."
	msgListFailed     = "Error al obtener los leads"
	msgUpdateFailed   = "Error al actualizar el lead"
	msgDeleteFailed   = "Error al eliminar el lead"
	msgDeleted        = "Lead eliminado correctamente"
	msgIDRequired     = "ID de lead requerido"
	msgNotFound       = "Lead no encontrado"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// Notifier dispatches the post-create emails. notify.Service satisfies it.
type Notifier interface {
	Dispatch(lead *Lead)
}

// Handler handles HTTP requests for leads
type Handler struct {
	repo      Repository
	notifier  Notifier
	dupWindow time.Duration
	logger    *logging.Logger
	metrics   *metrics.IntakeMetrics
}

// NewHandler creates a new leads handler. notifier and m may be nil.
func NewHandler(repo Repository, notifier Notifier, dupWindow time.Duration, logger *logging.Logger, m *metrics.IntakeMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if dupWindow <= 0 {
		dupWindow = 24 * time.Hour
	}
	return &Handler{
		repo:      repo,
		notifier:  notifier,
		dupWindow: dupWindow,
		logger:    logger,
		metrics:   m,
	}
}

type pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// envelope is the JSON shape every endpoint responds with.
type envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Details    FieldErrors `json:"details,omitempty"`
	Data       any         `json:"data,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type createdLead struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Create handles POST /api/leads: validate, reject recent duplicates,
// persist, then fire off the notification emails without waiting for them.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		h.metrics.ObserveIntakeLatency("/api/leads", time.Since(start).Seconds())
	}()

	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveSubmission("/api/leads", "invalid")
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgInvalidPayload})
		return
	}

	req.Normalize()
	if fieldErrs := req.Validate(); fieldErrs != nil {
		h.metrics.ObserveSubmission("/api/leads", "invalid")
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgInvalidPayload, Details: fieldErrs})
		return
	}

	dup, err := h.repo.HasRecentSubmission(r.Context(), req.Email, h.dupWindow)
	if err != nil {
		h.logger.Error("duplicate check failed", "error", err)
		h.metrics.ObserveSubmission("/api/leads", "error")
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: msgCreateFailed})
		return
	}
	if dup {
		h.metrics.ObserveSubmission("/api/leads", "duplicate")
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgDuplicate})
		return
	}

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create lead", "error", err)
		h.metrics.ObserveSubmission("/api/leads", "error")
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: msgCreateFailed})
		return
	}

	h.logger.Info("lead created", "id", lead.ID, "source", lead.Source)
	h.metrics.ObserveSubmission("/api/leads", "created")

	if h.notifier != nil {
		h.notifier.Dispatch(lead)
	}

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: msgCreated,
		Data:    createdLead{ID: lead.ID, Name: lead.Name, Email: lead.Email},
	})
}

// List handles GET /api/leads for the admin dashboard.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListLeadsFilter{Limit: defaultListLimit}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= maxListLimit {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	filter.Status = r.URL.Query().Get("status")

	list, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: msgListFailed})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    list,
		Pagination: &pagination{
			Total:   total,
			Limit:   filter.Limit,
			Offset:  filter.Offset,
			HasMore: filter.Offset+len(list) < total,
		},
	})
}

// Update handles PATCH /api/leads: partial update of status, notes and
// contacted timestamp.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgInvalidPayload})
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgIDRequired})
		return
	}

	upd := LeadUpdate{Notes: req.Notes}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgInvalidPayload, Details: FieldErrors{"status": {"Estado inválido"}}})
			return
		}
		upd.Status = req.Status
	}
	if req.ContactedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ContactedAt)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgInvalidPayload, Details: FieldErrors{"contactedAt": {"Fecha inválida"}}})
			return
		}
		upd.ContactedAt = &t
	}

	lead, err := h.repo.Update(r.Context(), req.ID, upd)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: msgNotFound})
			return
		}
		h.logger.Error("failed to update lead", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: msgUpdateFailed})
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: lead})
}

// Delete handles DELETE /api/leads?id=...
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msgIDRequired})
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: msgNotFound})
			return
		}
		h.logger.Error("failed to delete lead", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: msgDeleteFailed})
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msgDeleted})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
