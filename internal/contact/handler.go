// Package contact implements the original, non-persisted contact endpoint.
// It predates the leads pipeline and is kept because the public site still
// posts to it: presence checks only, a single admin notification, and email
// failures are swallowed so the visitor always gets a success.
package contact

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/sextosistema/agency-platform/internal/notify"
	"github.com/sextosistema/agency-platform/internal/observability/metrics"
	"github.com/sextosistema/agency-platform/pkg/logging"
)

// Message is the legacy contact-form payload.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler handles POST /api/contact.
type Handler struct {
	sender     notify.EmailSender
	adminEmail string
	logger     *logging.Logger
	metrics    *metrics.IntakeMetrics
}

// NewHandler creates the legacy contact handler. m may be nil.
func NewHandler(sender notify.EmailSender, adminEmail string, logger *logging.Logger, m *metrics.IntakeMetrics) *Handler {
	if sender == nil {
		sender = notify.NewLogSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{sender: sender, adminEmail: adminEmail, logger: logger, metrics: m}
}

// Submit validates presence of the required fields and notifies the admin.
// The send happens in-request but its outcome never reaches the client.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.metrics.ObserveSubmission("/api/contact", "invalid")
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "Datos inválidos"})
		return
	}

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		h.metrics.ObserveSubmission("/api/contact", "invalid")
		writeJSON(w, http.StatusBadRequest, response{Success: false, Error: "Faltan campos requeridos"})
		return
	}

	email := notify.Email{
		To:      []string{h.adminEmail},
		Subject: fmt.Sprintf("Nuevo Contacto: %s", msg.Name),
		HTML:    notificationHTML(msg),
		Text:    notificationText(msg),
		ReplyTo: msg.Email,
	}
	if err := h.sender.Send(r.Context(), email); err != nil {
		// Capturing the message matters more than the notification.
		h.logger.Error("contact notification failed", "error", err, "from", msg.Email)
	}

	h.metrics.ObserveSubmission("/api/contact", "created")
	writeJSON(w, http.StatusOK, response{Success: true, Message: "¡Mensaje enviado!"})
}

func notificationHTML(msg Message) string {
	optional := ""
	if msg.Phone != "" {
		optional += fmt.Sprintf("<p><strong>Teléfono:</strong> %s</p>\n", html.EscapeString(msg.Phone))
	}
	if msg.Company != "" {
		optional += fmt.Sprintf("<p><strong>Empresa:</strong> %s</p>\n", html.EscapeString(msg.Company))
	}
	return fmt.Sprintf(`<h2>Nuevo mensaje de contacto</h2>
<p><strong>Nombre:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
%s<p><strong>Mensaje:</strong></p>
<p>%s</p>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		optional,
		html.EscapeString(msg.Message),
	)
}

func notificationText(msg Message) string {
	out := fmt.Sprintf("Nuevo mensaje de contacto\n\nNombre: %s\nEmail: %s\n", msg.Name, msg.Email)
	if msg.Phone != "" {
		out += fmt.Sprintf("Teléfono: %s\n", msg.Phone)
	}
	if msg.Company != "" {
		out += fmt.Sprintf("Empresa: %s\n", msg.Company)
	}
	return out + "\nMensaje:\n" + msg.Message + "\n"
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
