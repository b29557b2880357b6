package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// PolicyRepository implements usecase.PolicyRepository.
type PolicyRepository struct {
	pool *pgxpool.Pool
}

// NewPolicyRepository creates a new PolicyRepository.
func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{pool: pool}
}

const policyColumns = `id, owner_id, type, premium, coverage, status, decided_by, decided_at, created_at`

// Create creates a new insurance application.
func (r *PolicyRepository) Create(ctx context.Context, policy *domain.Policy) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO policies (owner_id, type, premium, coverage, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		policy.OwnerID, policy.Type, policy.Premium.Units(), policy.Coverage.Units(),
		string(policy.Status), policy.CreatedAt,
	).Scan(&policy.ID)
}

// GetByID retrieves an insurance application by ID.
func (r *PolicyRepository) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+policyColumns+` FROM policies WHERE id = $1`, id)

	return scanPolicy(row)
}

// GetByIDForUpdate retrieves an insurance application with a FOR UPDATE lock.
func (r *PolicyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Policy, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx,
		`SELECT `+policyColumns+` FROM policies WHERE id = $1 FOR UPDATE`, id)

	return scanPolicy(row)
}

// UpdateStatus records the decision on an insurance application.
func (r *PolicyRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE policies SET status = $2, decided_by = $3, decided_at = $4 WHERE id = $1`,
		id, string(status), decidedBy, decidedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}

	return nil
}

// ListByOwner lists the owner's insurance applications, oldest first.
func (r *PolicyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Policy, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+policyColumns+` FROM policies WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPolicies(rows)
}

// List lists all insurance applications, newest first.
func (r *PolicyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Policy, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+policyColumns+` FROM policies ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPolicies(rows)
}

// CountByStatus returns a per-status count of insurance applications.
func (r *PolicyRepository) CountByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM policies GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ApplicationStatus]int64)
	for rows.Next() {
		var (
			status string
			count  int64
		)

		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}

		counts[domain.ApplicationStatus(status)] = count
	}

	return counts, rows.Err()
}

func scanPolicy(row pgx.Row) (*domain.Policy, error) {
	var (
		policy   domain.Policy
		premium  int64
		coverage int64
		status   string
	)

	err := row.Scan(&policy.ID, &policy.OwnerID, &policy.Type, &premium, &coverage,
		&status, &policy.DecidedBy, &policy.DecidedAt, &policy.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPolicyNotFound
		}

		return nil, err
	}

	policy.Premium = domain.MoneyFromUnits(premium)
	policy.Coverage = domain.MoneyFromUnits(coverage)
	policy.Status = domain.ApplicationStatus(status)

	return &policy, nil
}

func collectPolicies(rows pgx.Rows) ([]*domain.Policy, error) {
	var policies []*domain.Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}

		policies = append(policies, policy)
	}

	return policies, rows.Err()
}
