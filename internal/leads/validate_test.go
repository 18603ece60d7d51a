package leads

import (
	"strings"
	"testing"
)

func validRequest() *CreateLeadRequest {
	return &CreateLeadRequest{
		Name:    "María García",
		Email:   "maria@empresa.com",
		Message: "Quiero automatizar mi negocio",
	}
}

func TestValidateAcceptsMinimalRequest(t *testing.T) {
	req := validRequest()
	req.Normalize()
	if fe := req.Validate(); fe != nil {
		t.Fatalf("expected valid request, got %v", fe)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"empty", "", false},
		{"one char", "A", false},
		{"two chars", "Al", true},
		{"two runes", "Ñé", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Name = tt.value
			fe := req.Validate()
			if tt.ok && fe["name"] != nil {
				t.Errorf("name %q should be valid, got %v", tt.value, fe["name"])
			}
			if !tt.ok && fe["name"] == nil {
				t.Errorf("name %q should be rejected", tt.value)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"maria@empresa.com", true},
		{"a+b@sub.dominio.mx", true},
		{"", false},
		{"no-at-sign", false},
		{"a@b", false},
		{"a@.com", false},
		{"a@com.", false},
		{"María <maria@empresa.com>", false},
		{"dos espacios@empresa.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req := validRequest()
			req.Email = tt.value
			fe := req.Validate()
			if tt.ok && fe["email"] != nil {
				t.Errorf("email %q should be valid, got %v", tt.value, fe["email"])
			}
			if !tt.ok && fe["email"] == nil {
				t.Errorf("email %q should be rejected", tt.value)
			}
		})
	}
}

func TestValidateMessageBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		length int
		ok     bool
	}{
		{"nine chars rejected", 9, false},
		{"ten chars accepted", 10, true},
		{"max accepted", MaxMessageLen, true},
		{"over max rejected", MaxMessageLen + 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Message = strings.Repeat("a", tt.length)
			fe := req.Validate()
			if tt.ok && fe["message"] != nil {
				t.Errorf("message of %d chars should be valid, got %v", tt.length, fe["message"])
			}
			if !tt.ok && fe["message"] == nil {
				t.Errorf("message of %d chars should be rejected", tt.length)
			}
		})
	}
}

func TestValidatePhoneOptional(t *testing.T) {
	req := validRequest()
	if fe := req.Validate(); fe["phone"] != nil {
		t.Errorf("empty phone should be accepted, got %v", fe["phone"])
	}

	req.Phone = "+52 (55) 1234-5678"
	if fe := req.Validate(); fe["phone"] != nil {
		t.Errorf("valid phone rejected: %v", fe["phone"])
	}

	req.Phone = "llámame"
	if fe := req.Validate(); fe["phone"] == nil {
		t.Error("non-numeric phone should be rejected")
	}

	req.Phone = "12345"
	if fe := req.Validate(); fe["phone"] == nil {
		t.Error("too-short phone should be rejected")
	}
}

func TestValidateCatalogs(t *testing.T) {
	req := validRequest()
	req.Service = "Automatización"
	req.Budget = "Por definir"
	if fe := req.Validate(); fe != nil {
		t.Fatalf("catalog members should be valid, got %v", fe)
	}

	req.Service = "Magia negra"
	req.Budget = "Un millón"
	fe := req.Validate()
	if fe["service"] == nil {
		t.Error("unknown service should be rejected")
	}
	if fe["budget"] == nil {
		t.Error("unknown budget should be rejected")
	}
}

func TestValidateCompanyLength(t *testing.T) {
	req := validRequest()
	req.Company = strings.Repeat("x", MaxCompanyLen)
	if fe := req.Validate(); fe["company"] != nil {
		t.Errorf("company at max length should be valid, got %v", fe["company"])
	}
	req.Company = strings.Repeat("x", MaxCompanyLen+1)
	if fe := req.Validate(); fe["company"] == nil {
		t.Error("over-long company should be rejected")
	}
}

func TestValidateCollectsAllFields(t *testing.T) {
	req := &CreateLeadRequest{Name: "A", Email: "bad", Message: "corto"}
	fe := req.Validate()
	for _, field := range []string{"name", "email", "message"} {
		if fe[field] == nil {
			t.Errorf("expected error for %s, got %v", field, fe)
		}
	}
}

func TestNormalizeDefaultsSource(t *testing.T) {
	req := validRequest()
	req.Name = "  María  "
	req.Source = "  "
	req.Normalize()
	if req.Source != DefaultSource {
		t.Errorf("expected source %q, got %q", DefaultSource, req.Source)
	}
	if req.Name != "María" {
		t.Errorf("expected trimmed name, got %q", req.Name)
	}
}
