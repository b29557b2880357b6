package dto

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation on a request.
func Validate(req any) error {
	return validate.Struct(req)
}

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Amount is a monetary request field. Clients may send it as a JSON
// string ("1,234.56") or as a raw number; either form decodes to the
// textual value, and parsing into cents happens downstream.
type Amount string

// UnmarshalJSON accepts a JSON string or number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n.String())
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*a = Amount(s)

	return nil
}

// String returns the textual value for parsing.
func (a Amount) String() string {
	return string(a)
}

// AmountRequest carries the amount for deposits, withdrawals and
// transfers.
type AmountRequest struct {
	Amount Amount `json:"amount" validate:"required"`
}

// LoanApplyRequest represents a loan application.
type LoanApplyRequest struct {
	Amount       Amount `json:"amount"        validate:"required"`
	TenureMonths int    `json:"tenure_months" validate:"required,gt=0,lte=480"`
}

// InsuranceApplyRequest represents an insurance application.
type InsuranceApplyRequest struct {
	Type     string `json:"type"     validate:"required,max=50"`
	Premium  Amount `json:"premium"  validate:"required"`
	Coverage Amount `json:"coverage" validate:"required"`
}

// DecisionRequest represents an approve/reject decision.
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}
