package domain

import "time"

// HouseAccountNumber is the sentinel counterparty recorded on ledger
// entries for money that enters or leaves the bank's own book (loan
// disbursements, insurance premiums). No account row exists for it.
const HouseAccountNumber = "HOUSE"

// Account holds a customer balance. Balance never goes below zero; the
// only writer is the ledger engine, under a row lock inside one
// transaction.
type Account struct {
	ID        int64
	OwnerID   int64
	Number    string
	Balance   Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanDebit reports whether the account covers a debit of amount.
func (a *Account) CanDebit(amount Money) bool {
	return !a.Balance.LessThan(amount)
}

// OwnedBy reports whether the actor owns this account.
func (a *Account) OwnedBy(actor Actor) bool {
	return a.OwnerID == actor.UserID
}
