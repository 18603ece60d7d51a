package leads

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field bounds enforced on submissions.
const (
	MinNameLen    = 2
	MinMessageLen = 10
	MaxMessageLen = 2000
	MaxCompanyLen = 200
)

var phonePattern = regexp.MustCompile(`^[0-9+\-().\s]{7,20}$`)

// FieldErrors maps a field name to its validation messages, mirroring the
// shape the web form expects in the "details" response field.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Normalize trims whitespace and applies defaults. Called before Validate.
func (r *CreateLeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Message = strings.TrimSpace(r.Message)
	r.Source = strings.TrimSpace(r.Source)
	if r.Source == "" {
		r.Source = DefaultSource
	}
}

// Validate checks the request against the form rules. It returns nil when
// the request is acceptable and a non-empty FieldErrors otherwise. It has
// no side effects.
func (r *CreateLeadRequest) Validate() FieldErrors {
	fe := FieldErrors{}

	if utf8.RuneCountInString(r.Name) < MinNameLen {
		fe.add("name", "El nombre debe tener al menos 2 caracteres")
	}
	if !validEmail(r.Email) {
		fe.add("email", "Email inválido")
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		fe.add("phone", "Teléfono inválido")
	}
	if utf8.RuneCountInString(r.Company) > MaxCompanyLen {
		fe.add("company", "La empresa no puede superar los 200 caracteres")
	}
	if r.Service != "" && !inCatalog(Services, r.Service) {
		fe.add("service", "Servicio inválido")
	}
	if r.Budget != "" && !inCatalog(Budgets, r.Budget) {
		fe.add("budget", "Presupuesto inválido")
	}
	switch n := utf8.RuneCountInString(r.Message); {
	case n < MinMessageLen:
		fe.add("message", "El mensaje debe tener al menos 10 caracteres")
	case n > MaxMessageLen:
		fe.add("message", "El mensaje no puede superar los 2000 caracteres")
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// validEmail accepts bare addresses only, no display names, and requires a
// dotted domain so "a@b" is rejected like the original form did.
func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
