package usecase

import (
	"context"
	"time"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/metrics"
)

// PolicyUseCase handles the insurance application workflow. Activation
// collects the first premium from the applicant's primary account; an
// activation that fails the funds check rolls back and leaves the
// application pending so it can be retried or rejected later.
type PolicyUseCase struct {
	txManager   TransactionManager
	policyRepo  PolicyRepository
	accountRepo AccountRepository
	entryRepo   EntryRepository
	userRepo    UserRepository
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewPolicyUseCase creates a new PolicyUseCase.
func NewPolicyUseCase(
	txManager TransactionManager,
	policyRepo PolicyRepository,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	userRepo UserRepository,
	retrier Retrier,
	metrics *metrics.Metrics,
) *PolicyUseCase {
	return &PolicyUseCase{
		txManager:   txManager,
		policyRepo:  policyRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		userRepo:    userRepo,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// Apply submits an insurance application in the pending state.
func (uc *PolicyUseCase) Apply(ctx context.Context, ownerID int64, policyType, premium, coverage string) (*domain.Policy, error) {
	p, err := domain.ParseMoney(premium)
	if err != nil {
		return nil, err
	}

	c, err := domain.ParseMoney(coverage)
	if err != nil {
		return nil, err
	}

	policy := &domain.Policy{
		OwnerID:   ownerID,
		Type:      policyType,
		Premium:   p,
		Coverage:  c,
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}

	return policy, nil
}

// Decide approves or rejects a pending insurance application.
func (uc *PolicyUseCase) Decide(ctx context.Context, policyID int64, decision domain.Decision, actor domain.Actor) (*domain.Policy, error) {
	if !decision.Valid() {
		return nil, domain.ErrInvalidDecision
	}

	if err := requireElevated(ctx, uc.userRepo, actor); err != nil {
		return nil, err
	}

	var policy *domain.Policy

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		policy, err = uc.decide(ctx, policyID, decision, actor)

		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PoliciesDecided.WithLabelValues(string(decision)).Inc()
	}

	return policy, nil
}

func (uc *PolicyUseCase) decide(ctx context.Context, policyID int64, decision domain.Decision, actor domain.Actor) (*domain.Policy, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, domain.MarkTransient(err)
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	policy, err := uc.policyRepo.GetByIDForUpdate(txCtx, tx, policyID)
	if err != nil {
		return nil, err
	}

	if !policy.CanDecide() {
		return nil, domain.ErrAlreadyProcessed
	}

	now := time.Now().UTC()

	if decision == domain.DecisionReject {
		if err := uc.policyRepo.UpdateStatus(txCtx, tx, policy.ID, domain.StatusRejected, actor.UserID, now); err != nil {
			return nil, err
		}

		if err := tx.Commit(txCtx); err != nil {
			return nil, domain.MarkTransient(err)
		}

		policy.Status = domain.StatusRejected
		policy.DecidedBy = &actor.UserID
		policy.DecidedAt = &now

		return policy, nil
	}

	account, err := uc.accountRepo.GetPrimaryByOwnerForUpdate(txCtx, tx, policy.OwnerID)
	if err != nil {
		return nil, err
	}

	// Funds check before any write: a failed check rolls back with the
	// application still pending, never silently rejected.
	newBalance, ok := account.Balance.Sub(policy.Premium)
	if !ok {
		return nil, domain.ErrInsufficientFunds
	}

	if err := uc.accountRepo.UpdateBalance(txCtx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		AccountID:   account.ID,
		Kind:        domain.KindInsurancePremium,
		Amount:      policy.Premium,
		FromAccount: account.Number,
		ToAccount:   domain.HouseAccountNumber,
		Description: "Insurance premium",
		CreatedAt:   now,
	}
	if err := uc.entryRepo.Append(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.policyRepo.UpdateStatus(txCtx, tx, policy.ID, domain.StatusActive, actor.UserID, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, domain.MarkTransient(err)
	}

	policy.Status = domain.StatusActive
	policy.DecidedBy = &actor.UserID
	policy.DecidedAt = &now

	return policy, nil
}

// ListByOwner lists the owner's insurance applications.
func (uc *PolicyUseCase) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Policy, error) {
	return uc.policyRepo.ListByOwner(ctx, ownerID)
}

// ListAll lists all insurance applications, newest first. Elevated only.
func (uc *PolicyUseCase) ListAll(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Policy, error) {
	if err := requireElevated(ctx, uc.userRepo, actor); err != nil {
		return nil, err
	}

	limit = clampLimit(limit)

	return uc.policyRepo.List(ctx, limit, offset)
}

// Stats returns a per-status count of insurance applications. Elevated only.
func (uc *PolicyUseCase) Stats(ctx context.Context, actor domain.Actor) (map[domain.ApplicationStatus]int64, error) {
	if err := requireElevated(ctx, uc.userRepo, actor); err != nil {
		return nil, err
	}

	return uc.policyRepo.CountByStatus(ctx)
}
