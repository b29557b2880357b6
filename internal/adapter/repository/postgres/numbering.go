package postgres

import (
	"github.com/oklog/ulid/v2"
)

// AccountNumberGenerator issues ULID-based account numbers. The ULID
// keeps numbers sortable by creation time while staying unguessable
// enough for display purposes.
type AccountNumberGenerator struct{}

// NewAccountNumberGenerator creates a new AccountNumberGenerator.
func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{}
}

// AccountNumber generates a new account number.
func (g *AccountNumberGenerator) AccountNumber() string {
	return "AC" + ulid.Make().String()
}
