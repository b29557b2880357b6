package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/iho/corebank/internal/domain"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:        1,
		OwnerID:   7,
		Number:    "AC001",
		Balance:   domain.MoneyFromUnits(12345),
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Number != "AC001" || resp.Balance != account.Balance {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if !strings.Contains(string(data), `"balance":"123.45"`) {
		t.Fatalf("expected balance as fixed two-decimal string, got %s", data)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestLoanFromDomain(t *testing.T) {
	now := time.Now()
	decidedBy := int64(1)
	loan := &domain.Loan{
		ID:           3,
		OwnerID:      7,
		Amount:       domain.MoneyFromUnits(500000),
		TenureMonths: 24,
		Status:       domain.StatusApproved,
		DecidedBy:    &decidedBy,
		DecidedAt:    &now,
		CreatedAt:    now,
	}

	resp := LoanFromDomain(loan)
	if resp.ID != loan.ID || resp.Status != "approved" || resp.DecidedBy == nil || *resp.DecidedBy != 1 {
		t.Fatalf("unexpected loan response: %+v", resp)
	}

	list := LoansFromDomain([]*domain.Loan{loan})
	if len(list) != 1 || list[0].ID != loan.ID {
		t.Fatalf("LoansFromDomain returned %+v", list)
	}
}

func TestPolicyFromDomain_PendingOmitsDecision(t *testing.T) {
	policy := &domain.Policy{
		ID:       5,
		OwnerID:  7,
		Type:     "health",
		Premium:  domain.MoneyFromUnits(12050),
		Coverage: domain.MoneyFromUnits(5000000),
		Status:   domain.StatusPending,
	}

	resp := PolicyFromDomain(policy)
	if resp.DecidedBy != nil || resp.DecidedAt != nil {
		t.Fatalf("expected nil decision fields for pending policy: %+v", resp)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if strings.Contains(string(data), "decided_by") {
		t.Fatalf("expected decided_by omitted for pending policy, got %s", data)
	}
}

func TestStatsFromDomain(t *testing.T) {
	resp := StatsFromDomain(map[domain.ApplicationStatus]int64{
		domain.StatusPending:  3,
		domain.StatusApproved: 1,
	})

	if resp.Counts["pending"] != 3 || resp.Counts["approved"] != 1 {
		t.Fatalf("unexpected stats response: %+v", resp)
	}
}
