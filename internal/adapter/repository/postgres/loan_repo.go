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

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

const loanColumns = `id, owner_id, amount, tenure_months, status, decided_by, decided_at, created_at`

// Create creates a new loan application.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO loans (owner_id, amount, tenure_months, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		loan.OwnerID, loan.Amount.Units(), loan.TenureMonths, string(loan.Status), loan.CreatedAt,
	).Scan(&loan.ID)
}

// GetByID retrieves a loan application by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = $1`, id)

	return scanLoan(row)
}

// GetByIDForUpdate retrieves a loan application with a FOR UPDATE lock.
// The lock serializes concurrent decisions on the same application.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Loan, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = $1 FOR UPDATE`, id)

	return scanLoan(row)
}

// UpdateStatus records the decision on a loan application.
func (r *LoanRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE loans SET status = $2, decided_by = $3, decided_at = $4 WHERE id = $1`,
		id, string(status), decidedBy, decidedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

// ListByOwner lists the owner's loan applications, oldest first.
func (r *LoanRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLoans(rows)
}

// List lists all loan applications, newest first.
func (r *LoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+loanColumns+` FROM loans ORDER BY id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLoans(rows)
}

// CountByStatus returns a per-status count of loan applications.
func (r *LoanRepository) CountByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM loans GROUP BY status`)
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

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var (
		loan   domain.Loan
		amount int64
		status string
	)

	err := row.Scan(&loan.ID, &loan.OwnerID, &amount, &loan.TenureMonths, &status,
		&loan.DecidedBy, &loan.DecidedAt, &loan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	loan.Amount = domain.MoneyFromUnits(amount)
	loan.Status = domain.ApplicationStatus(status)

	return &loan, nil
}

func collectLoans(rows pgx.Rows) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}

		loans = append(loans, loan)
	}

	return loans, rows.Err()
}
