package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Without overrides it behaves as an in-memory store.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account
	nextID   int64

	CreateFunc                     func(ctx context.Context, account *domain.Account) error
	CreateTxFunc                   func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc                    func(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdateFunc           func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdateFunc          func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error)
	GetPrimaryByOwnerForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID int64) (*domain.Account, error)
	UpdateBalanceFunc              func(ctx context.Context, tx usecase.Transaction, id int64, balance domain.Money, updatedAt time.Time) error
	ListByOwnerFunc                func(ctx context.Context, ownerID int64) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[int64]*domain.Account),
	}
}

// Seed stores an account directly, bypassing Create hooks.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}

	m.accounts[account.ID] = account
}

// Get returns the stored account for assertions.
func (m *MockAccountRepository) Get(id int64) *domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.accounts[id]
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}

	m.Seed(account)

	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}

	m.Seed(account)

	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	copied := *account

	return &copied, nil
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}

	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}

	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		account, err := m.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (m *MockAccountRepository) GetPrimaryByOwnerForUpdate(ctx context.Context, tx usecase.Transaction, ownerID int64) (*domain.Account, error) {
	if m.GetPrimaryByOwnerForUpdateFunc != nil {
		return m.GetPrimaryByOwnerForUpdateFunc(ctx, tx, ownerID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var primary *domain.Account
	for _, account := range m.accounts {
		if account.OwnerID != ownerID {
			continue
		}

		if primary == nil || account.ID < primary.ID {
			primary = account
		}
	}

	if primary == nil {
		return nil, domain.ErrAccountNotFound
	}

	copied := *primary

	return &copied, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance domain.Money, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	account.Balance = balance
	account.UpdatedAt = updatedAt

	return nil
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Account
	for _, account := range m.accounts {
		if account.OwnerID == ownerID {
			copied := *account
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry
	nextID  int64

	AppendFunc        func(ctx context.Context, tx usecase.Transaction, entries ...*domain.Entry) error
	ListByAccountFunc func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Append(ctx context.Context, tx usecase.Transaction, entries ...*domain.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entries...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range entries {
		m.nextID++
		entry.ID = m.nextID
		m.entries = append(m.entries, entry)
	}

	return nil
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Entry
	for _, entry := range m.entries {
		if entry.AccountID == accountID {
			out = append(out, entry)
		}
	}

	return out, nil
}

// Entries returns every appended entry for assertions.
func (m *MockEntryRepository) Entries() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*domain.Entry(nil), m.entries...)
}

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mu     sync.RWMutex
	loans  map[int64]*domain.Loan
	nextID int64

	CreateFunc           func(ctx context.Context, loan *domain.Loan) error
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Loan, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Loan, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{loans: make(map[int64]*domain.Loan)}
}

func (m *MockLoanRepository) Seed(loan *domain.Loan) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if loan.ID == 0 {
		m.nextID++
		loan.ID = m.nextID
	} else if loan.ID > m.nextID {
		m.nextID = loan.ID
	}

	m.loans[loan.ID] = loan
}

func (m *MockLoanRepository) Get(id int64) *domain.Loan {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loans[id]
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, loan)
	}

	m.Seed(loan)

	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	loan, ok := m.loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}

	copied := *loan

	return &copied, nil
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}

	return m.GetByID(ctx, id)
}

func (m *MockLoanRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, decidedBy, decidedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loan, ok := m.loans[id]
	if !ok {
		return domain.ErrLoanNotFound
	}

	loan.Status = status
	loan.DecidedBy = &decidedBy
	loan.DecidedAt = &decidedAt

	return nil
}

func (m *MockLoanRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Loan
	for _, loan := range m.loans {
		if loan.OwnerID == ownerID {
			copied := *loan
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (m *MockLoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Loan
	for _, loan := range m.loans {
		copied := *loan
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (m *MockLoanRepository) CountByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[domain.ApplicationStatus]int64)
	for _, loan := range m.loans {
		counts[loan.Status]++
	}

	return counts, nil
}

// MockPolicyRepository is a mock implementation of PolicyRepository.
type MockPolicyRepository struct {
	mu       sync.RWMutex
	policies map[int64]*domain.Policy
	nextID   int64

	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Policy, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error
}

func NewMockPolicyRepository() *MockPolicyRepository {
	return &MockPolicyRepository{policies: make(map[int64]*domain.Policy)}
}

func (m *MockPolicyRepository) Seed(policy *domain.Policy) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if policy.ID == 0 {
		m.nextID++
		policy.ID = m.nextID
	} else if policy.ID > m.nextID {
		m.nextID = policy.ID
	}

	m.policies[policy.ID] = policy
}

func (m *MockPolicyRepository) Get(id int64) *domain.Policy {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.policies[id]
}

func (m *MockPolicyRepository) Create(ctx context.Context, policy *domain.Policy) error {
	m.Seed(policy)

	return nil
}

func (m *MockPolicyRepository) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	policy, ok := m.policies[id]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}

	copied := *policy

	return &copied, nil
}

func (m *MockPolicyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Policy, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}

	return m.GetByID(ctx, id)
}

func (m *MockPolicyRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id int64, status domain.ApplicationStatus, decidedBy int64, decidedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, decidedBy, decidedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	policy, ok := m.policies[id]
	if !ok {
		return domain.ErrPolicyNotFound
	}

	policy.Status = status
	policy.DecidedBy = &decidedBy
	policy.DecidedAt = &decidedAt

	return nil
}

func (m *MockPolicyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Policy
	for _, policy := range m.policies {
		if policy.OwnerID == ownerID {
			copied := *policy
			out = append(out, &copied)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (m *MockPolicyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Policy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Policy
	for _, policy := range m.policies {
		copied := *policy
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (m *MockPolicyRepository) CountByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[domain.ApplicationStatus]int64)
	for _, policy := range m.policies {
		counts[policy.Status]++
	}

	return counts, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}

	m.Committed = true

	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}

	if !m.Committed {
		m.RolledBack = true
	}

	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu  sync.Mutex
	txs []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &MockTransaction{}
	m.txs = append(m.txs, tx)

	return tx, nil
}

// Transactions returns every transaction handed out so far.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]*MockTransaction(nil), m.txs...)
}

// MockNumberGenerator is a mock implementation of NumberGenerator.
type MockNumberGenerator struct {
	mu      sync.Mutex
	counter int

	AccountNumberFunc func() string
}

func NewMockNumberGenerator() *MockNumberGenerator {
	return &MockNumberGenerator{}
}

func (m *MockNumberGenerator) AccountNumber() string {
	if m.AccountNumberFunc != nil {
		return m.AccountNumberFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++

	return fmt.Sprintf("ACTEST%04d", m.counter)
}

// MockRetrier is a pass-through Retrier that runs the operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}

	return operation()
}
