package domain

import "time"

// EntryKind identifies what moved the money.
type EntryKind string

const (
	KindDeposit          EntryKind = "deposit"
	KindWithdraw         EntryKind = "withdraw"
	KindTransfer         EntryKind = "transfer"
	KindLoanDisbursement EntryKind = "loan_disbursement"
	KindInsurancePremium EntryKind = "insurance_premium"
)

// Entry is one immutable ledger record describing the effect of a
// money-moving operation on a single account. Amount is always positive;
// direction follows from Kind and which counterparty fields are set.
// Entries are only ever appended, never updated or deleted.
//
// A transfer writes exactly two entries, one attributed to each account,
// sharing the same amount and counterparty pair.
type Entry struct {
	ID          int64
	AccountID   int64
	Kind        EntryKind
	Amount      Money
	FromAccount string
	ToAccount   string
	Description string
	CreatedAt   time.Time
}
