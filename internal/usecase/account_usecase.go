package usecase

import (
	"context"
	"time"

	"github.com/iho/corebank/internal/domain"
)

// AccountUseCase handles account creation and the read-only query
// layer (balance and history lookups).
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	numberGen   NumberGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository, numberGen NumberGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		numberGen:   numberGen,
	}
}

// CreateAccount opens an additional zero-balance account for the actor.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, actor domain.Actor) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		OwnerID:   actor.UserID,
		Number:    uc.numberGen.AccountNumber(),
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetBalance returns the account with its current balance. The actor
// must own the account or be elevated.
func (uc *AccountUseCase) GetBalance(ctx context.Context, accountID int64, actor domain.Actor) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := authorize(account, actor); err != nil {
		return nil, err
	}

	return account, nil
}

// GetHistoryInput represents input for listing account history.
type GetHistoryInput struct {
	AccountID int64
	Limit     int
	Offset    int
}

// GetHistory lists ledger entries for an account, newest first.
func (uc *AccountUseCase) GetHistory(ctx context.Context, input GetHistoryInput, actor domain.Actor) ([]*domain.Entry, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := authorize(account, actor); err != nil {
		return nil, err
	}

	limit := clampLimit(input.Limit)

	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	return uc.entryRepo.ListByAccount(ctx, account.ID, limit, offset)
}

// ListAccounts lists the actor's own accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, actor domain.Actor) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, actor.UserID)
}
