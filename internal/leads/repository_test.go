package leads

import (
	"context"
	"testing"
	"time"
)

func seedLead(t *testing.T, repo *InMemoryRepository, email string) *Lead {
	t.Helper()
	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		Name:    "Juan Pérez",
		Email:   email,
		Message: "Necesito un chatbot para mi tienda",
		Source:  DefaultSource,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return lead
}

func TestInMemoryCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	created := seedLead(t, repo, "juan@example.com")

	if created.ID == "" {
		t.Error("expected lead ID to be set")
	}
	if created.Status != StatusNew {
		t.Errorf("expected status %q, got %q", StatusNew, created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	found, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "juan@example.com" {
		t.Errorf("unexpected email %q", found.Email)
	}
}

func TestInMemoryGetNotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.GetByID(context.Background(), "nonexistent"); err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestInMemoryListNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	first := seedLead(t, repo, "a@example.com")
	// Force distinct creation times.
	repo.leads[first.ID].CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := seedLead(t, repo, "b@example.com")

	list, total, err := repo.List(context.Background(), ListLeadsFilter{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 leads, got total=%d len=%d", total, len(list))
	}
	if list[0].ID != second.ID {
		t.Error("expected newest lead first")
	}
}

func TestInMemoryListPagination(t *testing.T) {
	repo := NewInMemoryRepository()
	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		l := seedLead(t, repo, email)
		repo.leads[l.ID].CreatedAt = time.Now().UTC().Add(-time.Duration(i) * time.Minute)
	}

	list, total, err := repo.List(context.Background(), ListLeadsFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 lead on last page, got %d", len(list))
	}

	list, _, _ = repo.List(context.Background(), ListLeadsFilter{Limit: 2, Offset: 10})
	if len(list) != 0 {
		t.Errorf("offset past the end should return empty, got %d", len(list))
	}
}

func TestInMemoryListStatusFilter(t *testing.T) {
	repo := NewInMemoryRepository()
	lead := seedLead(t, repo, "a@x.com")
	seedLead(t, repo, "b@x.com")

	status := StatusContacted
	if _, err := repo.Update(context.Background(), lead.ID, LeadUpdate{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, total, err := repo.List(context.Background(), ListLeadsFilter{Status: StatusContacted, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != lead.ID {
		t.Fatalf("expected only the contacted lead, got total=%d len=%d", total, len(list))
	}
}

func TestInMemoryUpdatePartial(t *testing.T) {
	repo := NewInMemoryRepository()
	lead := seedLead(t, repo, "a@x.com")

	notes := "llamar el lunes"
	contacted := time.Now().UTC().Truncate(time.Second)
	updated, err := repo.Update(context.Background(), lead.ID, LeadUpdate{Notes: &notes, ContactedAt: &contacted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("expected notes %q, got %q", notes, updated.Notes)
	}
	if updated.ContactedAt == nil || !updated.ContactedAt.Equal(contacted) {
		t.Errorf("expected contactedAt %v, got %v", contacted, updated.ContactedAt)
	}
	// Untouched fields stay.
	if updated.Status != StatusNew {
		t.Errorf("status should be untouched, got %q", updated.Status)
	}
}

func TestInMemoryUpdateNotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.Update(context.Background(), "missing", LeadUpdate{}); err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestInMemoryDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	lead := seedLead(t, repo, "a@x.com")

	if err := repo.Delete(context.Background(), lead.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), lead.ID); err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound after delete, got %v", err)
	}
	if err := repo.Delete(context.Background(), lead.ID); err != ErrLeadNotFound {
		t.Errorf("expected ErrLeadNotFound on double delete, got %v", err)
	}
}

func TestInMemoryHasRecentSubmission(t *testing.T) {
	repo := NewInMemoryRepository()
	lead := seedLead(t, repo, "dup@example.com")

	dup, err := repo.HasRecentSubmission(context.Background(), "dup@example.com", 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dup {
		t.Error("expected recent submission to be detected")
	}

	dup, _ = repo.HasRecentSubmission(context.Background(), "otro@example.com", 24*time.Hour)
	if dup {
		t.Error("different email should not be a duplicate")
	}

	// Age the lead past the window.
	repo.leads[lead.ID].CreatedAt = time.Now().UTC().Add(-25 * time.Hour)
	dup, _ = repo.HasRecentSubmission(context.Background(), "dup@example.com", 24*time.Hour)
	if dup {
		t.Error("submission outside the window should not be a duplicate")
	}
}
