package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
	"github.com/iho/corebank/internal/usecase/mocks"
)

type loanFixture struct {
	uc        *usecase.LoanUseCase
	loanRepo  *mocks.MockLoanRepository
	accRepo   *mocks.MockAccountRepository
	entryRepo *mocks.MockEntryRepository
	userRepo  *mocks.MockUserRepository
}

func newLoanFixture(t *testing.T) *loanFixture {
	ctrl := gomock.NewController(t)
	loanRepo := mocks.NewMockLoanRepository()
	accRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	userRepo := mocks.NewMockUserRepository(ctrl)

	uc := usecase.NewLoanUseCase(
		mocks.NewMockTransactionManager(),
		loanRepo,
		accRepo,
		entryRepo,
		userRepo,
		mocks.NewMockRetrier(),
		nil,
	)

	return &loanFixture{uc: uc, loanRepo: loanRepo, accRepo: accRepo, entryRepo: entryRepo, userRepo: userRepo}
}

func (f *loanFixture) expectAdmin(userID int64) {
	f.userRepo.EXPECT().
		GetByID(gomock.Any(), userID).
		Return(&domain.User{ID: userID, Role: domain.RoleAdmin}, nil).
		AnyTimes()
}

func (f *loanFixture) expectCustomer(userID int64) {
	f.userRepo.EXPECT().
		GetByID(gomock.Any(), userID).
		Return(&domain.User{ID: userID, Role: domain.RoleCustomer}, nil).
		AnyTimes()
}

func TestLoanUseCase_Apply(t *testing.T) {
	f := newLoanFixture(t)

	loan, err := f.uc.Apply(context.Background(), 10, "5000.00", 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loan.ID == 0 {
		t.Error("expected assigned id")
	}
	if loan.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", loan.Status)
	}
	if loan.Amount != domain.MoneyFromUnits(500000) {
		t.Errorf("expected amount 500000, got %d", loan.Amount.Units())
	}

	if _, err := f.uc.Apply(context.Background(), 10, "-5", 24); !errors.Is(err, domain.ErrNonPositiveAmount) {
		t.Errorf("expected ErrNonPositiveAmount, got %v", err)
	}

	if _, err := f.uc.Apply(context.Background(), 10, "5000.00", 0); !errors.Is(err, domain.ErrInvalidTenure) {
		t.Errorf("expected ErrInvalidTenure, got %v", err)
	}
}

func TestLoanUseCase_Decide_Approve(t *testing.T) {
	f := newLoanFixture(t)
	f.expectAdmin(1)

	f.accRepo.Seed(&domain.Account{ID: 7, OwnerID: 10, Number: "AC007", Balance: domain.MoneyFromUnits(10000)})
	f.loanRepo.Seed(&domain.Loan{ID: 1, OwnerID: 10, Amount: domain.MoneyFromUnits(500000), TenureMonths: 24, Status: domain.StatusPending})

	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	loan, err := f.uc.Decide(context.Background(), 1, domain.DecisionApprove, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loan.Status != domain.StatusApproved {
		t.Errorf("expected approved, got %s", loan.Status)
	}
	if loan.DecidedBy == nil || *loan.DecidedBy != 1 {
		t.Error("expected decided_by to record the deciding admin")
	}

	if got := f.accRepo.Get(7).Balance; got != domain.MoneyFromUnits(510000) {
		t.Errorf("expected balance 510000 after disbursement, got %d", got.Units())
	}

	entries := f.entryRepo.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one disbursement entry, got %d", len(entries))
	}
	if entries[0].Kind != domain.KindLoanDisbursement {
		t.Errorf("expected loan_disbursement entry, got %s", entries[0].Kind)
	}
	if entries[0].FromAccount != domain.HouseAccountNumber {
		t.Errorf("expected entry from %s, got %s", domain.HouseAccountNumber, entries[0].FromAccount)
	}
}

func TestLoanUseCase_Decide_Reject(t *testing.T) {
	f := newLoanFixture(t)
	f.expectAdmin(1)

	f.accRepo.Seed(&domain.Account{ID: 7, OwnerID: 10, Number: "AC007", Balance: domain.MoneyFromUnits(10000)})
	f.loanRepo.Seed(&domain.Loan{ID: 1, OwnerID: 10, Amount: domain.MoneyFromUnits(500000), Status: domain.StatusPending})

	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	loan, err := f.uc.Decide(context.Background(), 1, domain.DecisionReject, admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loan.Status != domain.StatusRejected {
		t.Errorf("expected rejected, got %s", loan.Status)
	}
	if got := f.accRepo.Get(7).Balance; got != domain.MoneyFromUnits(10000) {
		t.Errorf("rejection moved money: %d", got.Units())
	}
	if got := len(f.entryRepo.Entries()); got != 0 {
		t.Errorf("rejection wrote %d entries", got)
	}
}

func TestLoanUseCase_Decide_Idempotent(t *testing.T) {
	f := newLoanFixture(t)
	f.expectAdmin(1)

	f.accRepo.Seed(&domain.Account{ID: 7, OwnerID: 10, Number: "AC007", Balance: domain.MoneyFromUnits(0)})
	f.loanRepo.Seed(&domain.Loan{ID: 1, OwnerID: 10, Amount: domain.MoneyFromUnits(500000), Status: domain.StatusPending})

	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	if _, err := f.uc.Decide(context.Background(), 1, domain.DecisionApprove, admin); err != nil {
		t.Fatalf("first decide failed: %v", err)
	}

	// Second approval, and a late reject, must both refuse.
	if _, err := f.uc.Decide(context.Background(), 1, domain.DecisionApprove, admin); !errors.Is(err, domain.ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
	if _, err := f.uc.Decide(context.Background(), 1, domain.DecisionReject, admin); !errors.Is(err, domain.ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}

	if got := f.accRepo.Get(7).Balance; got != domain.MoneyFromUnits(500000) {
		t.Errorf("repeated decide changed balance: %d", got.Units())
	}
	if got := len(f.entryRepo.Entries()); got != 1 {
		t.Errorf("expected a single disbursement entry, got %d", got)
	}
}

func TestLoanUseCase_Decide_Forbidden(t *testing.T) {
	f := newLoanFixture(t)
	f.expectCustomer(10)

	f.loanRepo.Seed(&domain.Loan{ID: 1, OwnerID: 10, Amount: domain.MoneyFromUnits(500000), Status: domain.StatusPending})

	// The token says admin but the user store says customer; the store wins.
	impostor := domain.Actor{UserID: 10, Role: domain.RoleAdmin}

	if _, err := f.uc.Decide(context.Background(), 1, domain.DecisionApprove, impostor); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if got := f.loanRepo.Get(1).Status; got != domain.StatusPending {
		t.Errorf("forbidden decide changed status to %s", got)
	}
}

func TestLoanUseCase_Decide_InvalidDecision(t *testing.T) {
	f := newLoanFixture(t)

	if _, err := f.uc.Decide(context.Background(), 1, domain.Decision("maybe"), domain.Actor{UserID: 1}); !errors.Is(err, domain.ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestLoanUseCase_Stats(t *testing.T) {
	f := newLoanFixture(t)
	f.expectAdmin(1)

	f.loanRepo.Seed(&domain.Loan{ID: 1, OwnerID: 10, Status: domain.StatusPending})
	f.loanRepo.Seed(&domain.Loan{ID: 2, OwnerID: 11, Status: domain.StatusApproved})
	f.loanRepo.Seed(&domain.Loan{ID: 3, OwnerID: 12, Status: domain.StatusApproved})

	stats, err := f.uc.Stats(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats[domain.StatusPending] != 1 || stats[domain.StatusApproved] != 2 {
		t.Errorf("unexpected stats: %v", stats)
	}
}
