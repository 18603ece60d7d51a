package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const leadColumns = `id, name, email, phone, company, service, budget, message, source, status, notes, contacted_at, created_at, updated_at`

// Create inserts a new row. The request must already be validated.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (id, name, email, phone, company, service, budget, message, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Company,
		req.Service,
		req.Budget,
		req.Message,
		req.Source,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:        id.String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Service:   req.Service,
		Budget:    req.Budget,
		Message:   req.Message,
		Source:    req.Source,
		Status:    StatusNew,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// List returns a page of leads newest-first plus the total matching count.
func (r *PostgresRepository) List(ctx context.Context, filter ListLeadsFilter) ([]*Lead, int, error) {
	where := ""
	args := []any{}
	if filter.Status != "" {
		where = "WHERE status = $1"
		args = append(args, filter.Status)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("leads: count failed: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM leads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		leadColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("leads: rows failed: %w", err)
	}
	return out, total, nil
}

// Update applies a partial update and returns the updated row. Last write
// wins, no optimistic locking.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd LeadUpdate) (*Lead, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if upd.Notes != nil {
		args = append(args, *upd.Notes)
		sets = append(sets, fmt.Sprintf("notes = $%d", len(args)))
	}
	if upd.ContactedAt != nil {
		args = append(args, upd.ContactedAt.UTC())
		sets = append(sets, fmt.Sprintf("contacted_at = $%d", len(args)))
	}

	query := fmt.Sprintf(
		"UPDATE leads SET %s WHERE id = $1 RETURNING %s",
		strings.Join(sets, ", "), leadColumns,
	)
	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: update failed: %w", err)
	}
	return lead, nil
}

// Delete removes a lead by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("leads: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// HasRecentSubmission reports whether the email submitted within the window.
func (r *PostgresRepository) HasRecentSubmission(ctx context.Context, email string, window time.Duration) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM leads WHERE email = $1 AND created_at >= $2)`
	cutoff := time.Now().UTC().Add(-window)

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, cutoff).Scan(&exists); err != nil {
		return false, fmt.Errorf("leads: duplicate check failed: %w", err)
	}
	return exists, nil
}

func scanLead(row pgx.Row) (*Lead, error) {
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Company,
		&lead.Service,
		&lead.Budget,
		&lead.Message,
		&lead.Source,
		&lead.Status,
		&lead.Notes,
		&lead.ContactedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

var _ Repository = (*PostgresRepository)(nil)
