package leads

import "time"

// Lead statuses. A lead starts as "new" and is moved by an admin.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

// DefaultSource tags submissions that arrive without an origin.
const DefaultSource = "website"

// Services is the catalog of consulting services offered on the site.
var Services = []string{
	"Desarrollo de IA",
	"Automatización",
	"Consultoría IA",
	"Chatbots & Asistentes",
	"Análisis de Datos",
	"Integraciones",
	"Otro",
}

// Budgets is the catalog of budget ranges the form offers.
var Budgets = []string{
	"Menos de $5,000",
	"$5,000 - $15,000",
	"$15,000 - $50,000",
	"Más de $50,000",
	"Por definir",
}

// Lead is a captured contact-form submission representing a prospective
// client inquiry.
type Lead struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Company     string     `json:"company,omitempty"`
	Service     string     `json:"service,omitempty"`
	Budget      string     `json:"budget,omitempty"`
	Message     string     `json:"message"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	ContactedAt *time.Time `json:"contactedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateLeadRequest is the request body for creating a lead. Unknown fields
// in the payload are ignored by the JSON decoder.
type CreateLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Budget  string `json:"budget"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// UpdateLeadRequest is the request body for partially updating a lead.
// Nil pointers mean "leave as is"; an empty Notes string clears the field.
type UpdateLeadRequest struct {
	ID          string  `json:"id"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	ContactedAt *string `json:"contactedAt"` // RFC 3339
}

// ListLeadsFilter narrows and pages the admin listing.
type ListLeadsFilter struct {
	Status string
	Limit  int
	Offset int
}

func validStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

func inCatalog(catalog []string, v string) bool {
	for _, c := range catalog {
		if c == v {
			return true
		}
	}
	return false
}
