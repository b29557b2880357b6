package dto

import (
	"time"

	"github.com/iho/corebank/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses. Balance is
// a fixed two-decimal string.
type AccountResponse struct {
	ID        int64        `json:"id"`
	OwnerID   int64        `json:"owner_id"`
	Number    string       `json:"number"`
	Balance   domain.Money `json:"balance"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Number:    a.Number,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransferResponse carries both post-transfer balances.
type TransferResponse struct {
	From *AccountResponse `json:"from"`
	To   *AccountResponse `json:"to"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          int64        `json:"id"`
	AccountID   int64        `json:"account_id"`
	Kind        string       `json:"kind"`
	Amount      domain.Money `json:"amount"`
	FromAccount string       `json:"from_account,omitempty"`
	ToAccount   string       `json:"to_account,omitempty"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		Kind:        string(e.Kind),
		Amount:      e.Amount,
		FromAccount: e.FromAccount,
		ToAccount:   e.ToAccount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// LoanResponse represents a loan application in API responses.
type LoanResponse struct {
	ID           int64        `json:"id"`
	OwnerID      int64        `json:"owner_id"`
	Amount       domain.Money `json:"amount"`
	TenureMonths int          `json:"tenure_months"`
	Status       string       `json:"status"`
	DecidedBy    *int64       `json:"decided_by,omitempty"`
	DecidedAt    *time.Time   `json:"decided_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// LoanFromDomain converts domain loan to response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:           l.ID,
		OwnerID:      l.OwnerID,
		Amount:       l.Amount,
		TenureMonths: l.TenureMonths,
		Status:       string(l.Status),
		DecidedBy:    l.DecidedBy,
		DecidedAt:    l.DecidedAt,
		CreatedAt:    l.CreatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// PolicyResponse represents an insurance application in API responses.
type PolicyResponse struct {
	ID        int64        `json:"id"`
	OwnerID   int64        `json:"owner_id"`
	Type      string       `json:"type"`
	Premium   domain.Money `json:"premium"`
	Coverage  domain.Money `json:"coverage"`
	Status    string       `json:"status"`
	DecidedBy *int64       `json:"decided_by,omitempty"`
	DecidedAt *time.Time   `json:"decided_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// PolicyFromDomain converts domain policy to response.
func PolicyFromDomain(p *domain.Policy) *PolicyResponse {
	return &PolicyResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Type:      p.Type,
		Premium:   p.Premium,
		Coverage:  p.Coverage,
		Status:    string(p.Status),
		DecidedBy: p.DecidedBy,
		DecidedAt: p.DecidedAt,
		CreatedAt: p.CreatedAt,
	}
}

// PoliciesFromDomain converts domain policies to responses.
func PoliciesFromDomain(policies []*domain.Policy) []*PolicyResponse {
	result := make([]*PolicyResponse, len(policies))
	for i, p := range policies {
		result[i] = PolicyFromDomain(p)
	}
	return result
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse represents a successful registration or login.
type AuthResponse struct {
	Token   string           `json:"token"`
	User    *UserResponse    `json:"user"`
	Account *AccountResponse `json:"account,omitempty"`
}

// StatsResponse represents per-status application counts.
type StatsResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// StatsFromDomain converts per-status counts to a response.
func StatsFromDomain(counts map[domain.ApplicationStatus]int64) *StatsResponse {
	out := make(map[string]int64, len(counts))
	for status, count := range counts {
		out[string(status)] = count
	}
	return &StatsResponse{Counts: out}
}
