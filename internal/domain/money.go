package domain

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount held as an integer count of minor units
// (cents). All balance arithmetic happens on this type so no floating
// point value ever touches a balance.
type Money int64

var centsFactor = decimal.NewFromInt(100)

// ParseMoney parses user-supplied monetary input into Money.
//
// Input may be a plain number or a text form with thousands separators
// ("1,234.56"). The value must be finite and strictly greater than zero;
// it is rounded half away from zero to the nearest cent.
func ParseMoney(input string) (Money, error) {
	s := strings.TrimSpace(strings.ReplaceAll(input, ",", ""))
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	cents := d.Mul(centsFactor).Round(0)
	if cents.Sign() <= 0 {
		return 0, ErrNonPositiveAmount
	}

	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, ErrInvalidAmount
	}

	return Money(cents.IntPart()), nil
}

// MoneyFromUnits builds Money from a raw count of minor units.
func MoneyFromUnits(units int64) Money {
	return Money(units)
}

// Units returns the raw count of minor units.
func (m Money) Units() int64 {
	return int64(m)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return m + o
}

// Sub returns m - o. The second return value is false when the result
// would be negative; in that case Money(0) is returned.
func (m Money) Sub(o Money) (Money, bool) {
	if o > m {
		return 0, false
	}

	return m - o, true
}

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) bool {
	return m < o
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m > 0
}

// String formats the amount with exactly two fractional digits, e.g.
// "1234.56". This is the wire format for money values.
func (m Money) String() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}

// MarshalJSON encodes Money as a two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a JSON string or a raw number. Unlike
// ParseMoney it does not require positivity so responses round-trip.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)

	d, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if err != nil {
		return ErrInvalidAmount
	}

	cents := d.Mul(centsFactor).Round(0)
	*m = Money(cents.IntPart())

	return nil
}
