package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sextosistema/agency-platform/internal/contact"
	"github.com/sextosistema/agency-platform/internal/leads"
	"github.com/sextosistema/agency-platform/internal/notify"
	"github.com/sextosistema/agency-platform/pkg/logging"
)

type captureSender struct {
	mu    sync.Mutex
	sent  []notify.Email
	delay time.Duration
}

func (s *captureSender) Send(ctx context.Context, msg notify.Email) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *captureSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type testApp struct {
	handler http.Handler
	repo    *leads.InMemoryRepository
	sender  *captureSender
	notify  *notify.Service
}

func newTestApp(t *testing.T, adminSecret string, delay time.Duration) *testApp {
	t.Helper()
	logger := logging.Default()
	repo := leads.NewInMemoryRepository()
	sender := &captureSender{delay: delay}
	svc := notify.NewService(sender, notify.ServiceConfig{
		AdminEmail: "admin@sextosistema.com",
		SiteURL:    "https://sextosistema.com",
		Production: true,
	}, logger, nil)

	handler := New(&Config{
		Logger:         logger,
		LeadsHandler:   leads.NewHandler(repo, svc, 24*time.Hour, logger, nil),
		ContactHandler: contact.NewHandler(sender, "admin@sextosistema.com", logger, nil),
		AdminJWTSecret: adminSecret,
	})
	return &testApp{handler: handler, repo: repo, sender: sender, notify: svc}
}

func (a *testApp) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

const validLead = `{"name":"María García","email":"maria@empresa.com","message":"Quiero evaluar un proyecto de IA"}`

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t, "", 0)
	w := app.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil || body["status"] != "ok" {
		t.Errorf("unexpected health body %v (%v)", body, err)
	}
}

func TestLeadIntakeEndToEnd(t *testing.T) {
	app := newTestApp(t, "", 0)

	w := app.do(http.MethodPost, "/api/leads", validLead, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	app.notify.Wait()
	if app.sender.count() != 2 {
		t.Errorf("expected notification and confirmation, got %d emails", app.sender.count())
	}

	if _, total, _ := app.repo.List(context.Background(), leads.ListLeadsFilter{Limit: 10}); total != 1 {
		t.Errorf("expected 1 persisted lead, got %d", total)
	}
}

func TestLeadIntakeDoesNotWaitForEmails(t *testing.T) {
	app := newTestApp(t, "", 300*time.Millisecond)

	start := time.Now()
	w := app.do(http.MethodPost, "/api/leads", validLead, nil)
	elapsed := time.Since(start)

	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	if elapsed > 100*time.Millisecond {
		t.Errorf("response waited on the email provider: %v", elapsed)
	}

	app.notify.Wait()
	if app.sender.count() != 2 {
		t.Errorf("emails should still be delivered after the response, got %d", app.sender.count())
	}
}

func TestContactEndpoint(t *testing.T) {
	app := newTestApp(t, "", 0)

	w := app.do(http.MethodPost, "/api/contact", `{"name":"María","email":"maria@empresa.com","message":"Hola"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("contact status = %d: %s", w.Code, w.Body.String())
	}
	if app.sender.count() != 1 {
		t.Errorf("expected 1 notification, got %d", app.sender.count())
	}
}

func TestAdminRoutesRequireTokenWhenSecretSet(t *testing.T) {
	app := newTestApp(t, "admin-secret", 0)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		if w := app.do(method, "/api/leads", "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s without token: status = %d, want 401", method, w.Code)
		}
	}

	// Public intake stays open.
	if w := app.do(http.MethodPost, "/api/leads", validLead, nil); w.Code != http.StatusCreated {
		t.Errorf("intake must not require auth, got %d", w.Code)
	}
	app.notify.Wait()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("admin-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	w := app.do(http.MethodGet, "/api/leads", "", map[string]string{"Authorization": "Bearer " + signed})
	if w.Code != http.StatusOK {
		t.Errorf("authorized list status = %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutesOpenWithoutSecret(t *testing.T) {
	app := newTestApp(t, "", 0)
	if w := app.do(http.MethodGet, "/api/leads", "", nil); w.Code != http.StatusOK {
		t.Errorf("list without secret configured: status = %d", w.Code)
	}
}

func TestFormRateLimitApplied(t *testing.T) {
	logger := logging.Default()
	repo := leads.NewInMemoryRepository()
	handler := New(&Config{
		Logger:       logger,
		LeadsHandler: leads.NewHandler(repo, nil, 24*time.Hour, logger, nil),
		FormRateLimit: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
			})
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(validLead))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("rate limit middleware not applied to intake, got %d", w.Code)
	}

	// Admin routes bypass the form limiter.
	req = httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin list should bypass the form limiter, got %d", w.Code)
	}
}
