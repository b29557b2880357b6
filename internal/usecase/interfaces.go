package usecase

import (
	"context"
	"time"

	"github.com/iho/corebank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	// GetByIDForUpdate locks the account row for the duration of tx.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Account, error)
	// GetByIDsForUpdate locks multiple rows in ascending id order
	// regardless of the order ids are given in.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	// GetPrimaryByOwnerForUpdate locks the owner's oldest account.
	GetPrimaryByOwnerForUpdate(ctx context.Context, tx Transaction, ownerID int64) (*domain.Account, error)
	// UpdateBalance must only be called while the caller holds the row
	// lock acquired in the same transaction.
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance domain.Money, updatedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error)
}

// EntryRepository defines data access for the append-only transaction
// log. There are no update or delete operations.
type EntryRepository interface {
	Append(ctx context.Context, tx Transaction, entries ...*domain.Entry) error
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
}

// LoanRepository defines data access for loan applications.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Loan, error)
	UpdateStatus(ctx context.Context, tx Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Loan, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	CountByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error)
}

// PolicyRepository defines data access for insurance applications.
type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.Policy) error
	GetByID(ctx context.Context, id int64) (*domain.Policy, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Policy, error)
	UpdateStatus(ctx context.Context, tx Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Policy, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Policy, error)
	CountByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// NumberGenerator generates externally visible account numbers.
type NumberGenerator interface {
	AccountNumber() string
}

// Retrier re-runs an operation when storage reports a retryable
// failure. Operations passed to it must be idempotent.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
