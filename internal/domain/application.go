package domain

import "time"

// ApplicationStatus is the state of a loan or insurance application.
// pending is the only initial state; the others are terminal.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusActive   ApplicationStatus = "active"
	StatusRejected ApplicationStatus = "rejected"
)

// Terminal reports whether no further transition is permitted.
func (s ApplicationStatus) Terminal() bool {
	return s != StatusPending
}

// Decision is an administrator's verdict on a pending application.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Valid reports whether the decision is one of the known verdicts.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Loan is a loan application. Approval credits the owner's account with
// Amount and writes a loan_disbursement entry; both happen at most once.
type Loan struct {
	ID           int64
	OwnerID      int64
	Amount       Money
	TenureMonths int
	Status       ApplicationStatus
	DecidedBy    *int64
	DecidedAt    *time.Time
	CreatedAt    time.Time
}

// Policy is an insurance application. Approval debits the owner's
// account by Premium and writes an insurance_premium entry; an approval
// that fails the funds check leaves the policy pending.
type Policy struct {
	ID        int64
	OwnerID   int64
	Type      string
	Premium   Money
	Coverage  Money
	Status    ApplicationStatus
	DecidedBy *int64
	DecidedAt *time.Time
	CreatedAt time.Time
}

// CanDecide reports whether the loan is still awaiting a decision.
func (l *Loan) CanDecide() bool {
	return l.Status == StatusPending
}

// CanDecide reports whether the policy is still awaiting a decision.
func (p *Policy) CanDecide() bool {
	return p.Status == StatusPending
}
