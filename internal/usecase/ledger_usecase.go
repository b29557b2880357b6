package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// LedgerUseCase is the ledger engine. Deposit, Withdraw and Transfer
// each run as a single database transaction: row locks are taken first,
// every check happens before the first write, and the balance update
// commits together with its ledger entries or not at all.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		metrics:     metrics,
	}
}

// TransferResult carries both post-transfer balances.
type TransferResult struct {
	From *domain.Account
	To   *domain.Account
}

// Deposit credits an account and appends one deposit entry. The actor
// must own the account or be elevated.
func (uc *LedgerUseCase) Deposit(ctx context.Context, accountID int64, amount string, actor domain.Actor) (*domain.Account, error) {
	m, err := domain.ParseMoney(amount)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, domain.MarkTransient(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if err := authorize(account, actor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newBalance := account.Balance.Add(m)

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		AccountID:   account.ID,
		Kind:        domain.KindDeposit,
		Amount:      m,
		ToAccount:   account.Number,
		Description: "Deposit",
		CreatedAt:   now,
	}
	if err := uc.entryRepo.Append(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, domain.MarkTransient(err)
	}

	account.Balance = newBalance
	account.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.Deposits.Inc()
		uc.metrics.OperationAmount.WithLabelValues(string(domain.KindDeposit)).Observe(float64(m.Units()) / 100)
	}

	return account, nil
}

// Withdraw debits an account and appends one withdraw entry. Fails with
// ErrInsufficientFunds before any write when the balance does not cover
// the amount.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, accountID int64, amount string, actor domain.Actor) (*domain.Account, error) {
	m, err := domain.ParseMoney(amount)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, domain.MarkTransient(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if err := authorize(account, actor); err != nil {
		return nil, err
	}

	newBalance, ok := account.Balance.Sub(m)
	if !ok {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		AccountID:   account.ID,
		Kind:        domain.KindWithdraw,
		Amount:      m,
		FromAccount: account.Number,
		Description: "Withdraw",
		CreatedAt:   now,
	}
	if err := uc.entryRepo.Append(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, domain.MarkTransient(err)
	}

	account.Balance = newBalance
	account.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.Withdrawals.Inc()
		uc.metrics.OperationAmount.WithLabelValues(string(domain.KindWithdraw)).Observe(float64(m.Units()) / 100)
	}

	return account, nil
}

// Transfer moves money between two accounts. Both rows are locked in
// ascending id order so two concurrent transfers over the same pair can
// never form a circular wait, whichever way round their arguments are.
func (uc *LedgerUseCase) Transfer(ctx context.Context, fromID, toID int64, amount string, actor domain.Actor) (*TransferResult, error) {
	if fromID == toID {
		return nil, domain.ErrSameAccount
	}

	m, err := domain.ParseMoney(amount)
	if err != nil {
		return nil, err
	}

	ids := []int64{fromID, toID}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, domain.MarkTransient(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	accounts, err := uc.accountRepo.GetByIDsForUpdate(txCtx, tx, ids)
	if err != nil {
		return nil, err
	}

	var from, to *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case fromID:
			from = a
		case toID:
			to = a
		}
	}

	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := authorize(from, actor); err != nil {
		return nil, err
	}

	fromBalance, ok := from.Balance.Sub(m)
	if !ok {
		return nil, domain.ErrInsufficientFunds
	}
	toBalance := to.Balance.Add(m)

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, from.ID, fromBalance, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, to.ID, toBalance, now); err != nil {
		return nil, err
	}

	outEntry := &domain.Entry{
		AccountID:   from.ID,
		Kind:        domain.KindTransfer,
		Amount:      m,
		FromAccount: from.Number,
		ToAccount:   to.Number,
		Description: "Transfer out",
		CreatedAt:   now,
	}
	inEntry := &domain.Entry{
		AccountID:   to.ID,
		Kind:        domain.KindTransfer,
		Amount:      m,
		FromAccount: from.Number,
		ToAccount:   to.Number,
		Description: "Transfer in",
		CreatedAt:   now,
	}
	if err := uc.entryRepo.Append(txCtx, tx, outEntry, inEntry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, domain.MarkTransient(err)
	}

	from.Balance = fromBalance
	from.UpdatedAt = now
	to.Balance = toBalance
	to.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.Transfers.Inc()
		uc.metrics.OperationAmount.WithLabelValues(string(domain.KindTransfer)).Observe(float64(m.Units()) / 100)
	}

	return &TransferResult{From: from, To: to}, nil
}

// authorize allows the account owner and elevated actors.
func authorize(account *domain.Account, actor domain.Actor) error {
	if actor.Elevated() || account.OwnedBy(actor) {
		return nil
	}

	return domain.ErrForbidden
}
