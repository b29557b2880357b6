package usecase

import (
	"context"
	"time"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// LoanUseCase handles the loan application workflow. Approval credits
// the applicant's primary account; the lock-then-status-guard in decide
// makes the transition idempotent, so concurrent or repeated approvals
// can never disburse twice.
type LoanUseCase struct {
	txManager   TransactionManager
	loanRepo    LoanRepository
	accountRepo AccountRepository
	entryRepo   EntryRepository
	userRepo    UserRepository
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TransactionManager,
	loanRepo LoanRepository,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	userRepo UserRepository,
	retrier Retrier,
	metrics *metrics.Metrics,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:   txManager,
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		userRepo:    userRepo,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// Apply submits a loan application in the pending state.
func (uc *LoanUseCase) Apply(ctx context.Context, ownerID int64, amount string, tenureMonths int) (*domain.Loan, error) {
	m, err := domain.ParseMoney(amount)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateTenure(tenureMonths); err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		OwnerID:      ownerID,
		Amount:       m,
		TenureMonths: tenureMonths,
		Status:       domain.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	return loan, nil
}

// Decide approves or rejects a pending loan. The actor's elevation is
// re-read from the user store rather than trusted from the token.
// Retried on retryable storage errors; the status guard makes the
// retry safe.
func (uc *LoanUseCase) Decide(ctx context.Context, loanID int64, decision domain.Decision, actor domain.Actor) (*domain.Loan, error) {
	if !decision.Valid() {
		return nil, domain.ErrInvalidDecision
	}

	if err := requireElevated(ctx, uc.userRepo, actor); err != nil {
		return nil, err
	}

	var loan *domain.Loan

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		loan, err = uc.decide(ctx, loanID, decision, actor)

		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoansDecided.WithLabelValues(string(decision)).Inc()
	}

	return loan, nil
}

func (uc *LoanUseCase) decide(ctx context.Context, loanID int64, decision domain.Decision, actor domain.Actor) (*domain.Loan, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, domain.MarkTransient(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	loan, err := uc.loanRepo.GetByIDForUpdate(txCtx, tx, loanID)
	if err != nil {
		return nil, err
	}

	if !loan.CanDecide() {
		return nil, domain.ErrAlreadyProcessed
	}

	now := time.Now().UTC()

	if decision == domain.DecisionReject {
		if err := uc.loanRepo.UpdateStatus(txCtx, tx, loan.ID, domain.StatusRejected, actor.UserID, now); err != nil {
			return nil, err
		}

		if err := tx.Commit(txCtx); err != nil {
			return nil, domain.MarkTransient(err)
		}

		loan.Status = domain.StatusRejected
		loan.DecidedBy = &actor.UserID
		loan.DecidedAt = &now

		return loan, nil
	}

	// Approval creates money on the house side: no funds check, the
	// credit is unconditional.
	account, err := uc.accountRepo.GetPrimaryByOwnerForUpdate(txCtx, tx, loan.OwnerID)
	if err != nil {
		return nil, err
	}

	newBalance := account.Balance.Add(loan.Amount)

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		AccountID:   account.ID,
		Kind:        domain.KindLoanDisbursement,
		Amount:      loan.Amount,
		FromAccount: domain.HouseAccountNumber,
		ToAccount:   account.Number,
		Description: "Loan disbursement",
		CreatedAt:   now,
	}
	if err := uc.entryRepo.Append(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.loanRepo.UpdateStatus(txCtx, tx, loan.ID, domain.StatusApproved, actor.UserID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, domain.MarkTransient(err)
	}

	loan.Status = domain.StatusApproved
	loan.DecidedBy = &actor.UserID
	loan.DecidedAt = &now

	return loan, nil
}

// ListByOwner lists the owner's loan applications.
func (uc *LoanUseCase) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Loan, error) {
	return uc.loanRepo.ListByOwner(ctx, ownerID)
}

// ListAll lists all loan applications, newest first. Elevated only.
func (uc *LoanUseCase) ListAll(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Loan, error) {
	if err := requireElevated(ctx, uc.userRepo, actor); err != nil {
		return nil, err
	}

	limit = clampLimit(limit)

	return uc.loanRepo.List(ctx, limit, offset)
}

// Stats returns a per-status count of loan applications. Elevated only.
func (uc *LoanUseCase) Stats(ctx context.Context, actor domain.Actor) (map[domain.ApplicationStatus]int64, error) {
	if err := requireElevated(ctx, uc.userRepo, actor); err != nil {
		return nil, err
	}

	return uc.loanRepo.CountByStatus(ctx)
}

// requireElevated checks administrative authority against the user
// store instead of the actor's claims, so a revoked admin loses the
// capability immediately.
func requireElevated(ctx context.Context, userRepo UserRepository, actor domain.Actor) error {
	user, err := userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return domain.ErrForbidden
	}

	if user.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}

	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}

	return limit
}
