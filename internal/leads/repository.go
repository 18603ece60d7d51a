package leads

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LeadUpdate carries the parsed fields of a partial update. Nil means keep.
type LeadUpdate struct {
	Status      *string
	Notes       *string
	ContactedAt *time.Time
}

// Repository defines the interface for lead storage
type Repository interface {
	Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter ListLeadsFilter) ([]*Lead, int, error)
	Update(ctx context.Context, id string, upd LeadUpdate) (*Lead, error)
	Delete(ctx context.Context, id string) error
	HasRecentSubmission(ctx context.Context, email string, window time.Duration) (bool, error)
}

// InMemoryRepository keeps leads in a map. Used in dev mode when no
// DATABASE_URL is configured, and in handler tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{leads: make(map[string]*Lead)}
}

// Create stores a new lead. The request must already be validated.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	now := time.Now().UTC()
	lead := &Lead{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Service:   req.Service,
		Budget:    req.Budget,
		Message:   req.Message,
		Source:    req.Source,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.mu.Unlock()

	return lead, nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	cp := *lead
	return &cp, nil
}

// List returns leads newest-first along with the total matching count.
func (r *InMemoryRepository) List(ctx context.Context, filter ListLeadsFilter) ([]*Lead, int, error) {
	r.mu.RLock()
	all := make([]*Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		cp := *l
		all = append(all, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if filter.Offset >= total {
		return []*Lead{}, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

// Update applies a partial update. Last write wins.
func (r *InMemoryRepository) Update(ctx context.Context, id string, upd LeadUpdate) (*Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	if upd.Status != nil {
		lead.Status = *upd.Status
	}
	if upd.Notes != nil {
		lead.Notes = *upd.Notes
	}
	if upd.ContactedAt != nil {
		t := upd.ContactedAt.UTC()
		lead.ContactedAt = &t
	}
	lead.UpdatedAt = time.Now().UTC()

	cp := *lead
	return &cp, nil
}

// Delete removes a lead by ID
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok {
		return ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

// HasRecentSubmission reports whether the email submitted within the window.
func (r *InMemoryRepository) HasRecentSubmission(ctx context.Context, email string, window time.Duration) (bool, error) {
	cutoff := time.Now().UTC().Add(-window)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.leads {
		if l.Email == email && l.CreatedAt.After(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

var _ Repository = (*InMemoryRepository)(nil)
