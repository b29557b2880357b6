package domain

import "testing"

func TestApplicationStatusTerminal(t *testing.T) {
	tests := []struct {
		status   ApplicationStatus
		terminal bool
	}{
		{StatusPending, false},
		{StatusApproved, true},
		{StatusActive, true},
		{StatusRejected, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("Terminal(%s) = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestLoanCanDecide(t *testing.T) {
	loan := &Loan{Status: StatusPending}
	if !loan.CanDecide() {
		t.Error("pending loan should be decidable")
	}

	for _, s := range []ApplicationStatus{StatusApproved, StatusRejected} {
		loan.Status = s
		if loan.CanDecide() {
			t.Errorf("loan in state %s should not be decidable", s)
		}
	}
}

func TestPolicyCanDecide(t *testing.T) {
	policy := &Policy{Status: StatusPending}
	if !policy.CanDecide() {
		t.Error("pending policy should be decidable")
	}

	for _, s := range []ApplicationStatus{StatusActive, StatusRejected} {
		policy.Status = s
		if policy.CanDecide() {
			t.Errorf("policy in state %s should not be decidable", s)
		}
	}
}

func TestDecisionValid(t *testing.T) {
	if !DecisionApprove.Valid() || !DecisionReject.Valid() {
		t.Error("approve and reject should be valid decisions")
	}

	if Decision("maybe").Valid() {
		t.Error("unknown decision should be invalid")
	}
}

func TestAccountCanDebit(t *testing.T) {
	acc := &Account{Balance: MoneyFromUnits(10000)}

	if !acc.CanDebit(MoneyFromUnits(10000)) {
		t.Error("exact-balance debit should be allowed")
	}

	if acc.CanDebit(MoneyFromUnits(10001)) {
		t.Error("overdraft debit should not be allowed")
	}
}

func TestActorElevated(t *testing.T) {
	if (Actor{UserID: 1, Role: RoleCustomer}).Elevated() {
		t.Error("customer should not be elevated")
	}

	if !(Actor{UserID: 2, Role: RoleAdmin}).Elevated() {
		t.Error("admin should be elevated")
	}
}
