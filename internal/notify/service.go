package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sextosistema/agency-platform/internal/leads"
	"github.com/sextosistema/agency-platform/internal/observability/metrics"
	"github.com/sextosistema/agency-platform/pkg/logging"
)

// ServiceConfig holds the addressing policy for lead emails.
type ServiceConfig struct {
	AdminEmail string
	SiteURL    string
	// Production gates where the confirmation goes: the submitter in
	// production, the admin inbox otherwise (sandbox provider accounts
	// only deliver to verified addresses).
	Production  bool
	SendTimeout time.Duration
}

// Service sends the two lead emails: the internal notification and the
// submitter confirmation.
type Service struct {
	sender  EmailSender
	cfg     ServiceConfig
	logger  *logging.Logger
	metrics *metrics.IntakeMetrics

	wg sync.WaitGroup
}

// NewService creates a notification service. metrics may be nil.
func NewService(sender EmailSender, cfg ServiceConfig, logger *logging.Logger, m *metrics.IntakeMetrics) *Service {
	if sender == nil {
		sender = NewLogSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 30 * time.Second
	}
	return &Service{sender: sender, cfg: cfg, logger: logger, metrics: m}
}

// DispatchResult reports the per-message outcome of one lead dispatch.
type DispatchResult struct {
	Admin        error
	Confirmation error
}

// SendLeadEmails sends the admin notification and the confirmation
// concurrently and waits for both. One failing never cancels the other;
// failures are reported per message, not returned as a combined error,
// because the caller's policy is to log and move on.
func (s *Service) SendLeadEmails(ctx context.Context, lead *leads.Lead) DispatchResult {
	confirmTo := s.cfg.AdminEmail
	if s.cfg.Production {
		confirmTo = lead.Email
	}

	var res DispatchResult
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		res.Admin = s.sender.Send(ctx, AdminNotificationEmail(lead, s.cfg.AdminEmail))
		s.observe("admin", res.Admin)
	}()
	go func() {
		defer wg.Done()
		res.Confirmation = s.sender.Send(ctx, ConfirmationEmail(lead, confirmTo, s.cfg.SiteURL))
		s.observe("confirmation", res.Confirmation)
	}()

	wg.Wait()
	return res
}

// Dispatch sends both lead emails in a detached goroutine so the HTTP
// response never waits on the email provider. Failures land in the log only.
func (s *Service) Dispatch(lead *leads.Lead) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SendTimeout)
		defer cancel()

		res := s.SendLeadEmails(ctx, lead)
		if res.Admin != nil {
			s.logger.Error("admin notification failed", "error", res.Admin, "lead_id", lead.ID)
		}
		if res.Confirmation != nil {
			s.logger.Error("confirmation email failed", "error", res.Confirmation, "lead_id", lead.ID)
		}
	}()
}

// Wait blocks until all in-flight dispatches finish. Called on shutdown and
// in tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) observe(kind string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	s.metrics.ObserveEmail(kind, status)
}
