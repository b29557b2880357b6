package domain

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Money
		expectErr error
	}{
		{name: "plain integer", input: "100", want: 10000},
		{name: "two decimals", input: "1234.56", want: 123456},
		{name: "thousands separators", input: "1,234.56", want: 123456},
		{name: "leading and trailing spaces", input: "  250.00  ", want: 25000},
		{name: "single decimal digit", input: "0.5", want: 50},
		{name: "rounds half away from zero", input: "0.005", want: 1},
		{name: "rounds down below half", input: "0.004", expectErr: ErrNonPositiveAmount},
		{name: "sub-cent kept after rounding", input: "10.994", want: 1099},
		{name: "sub-cent rounded up", input: "10.995", want: 1100},
		{name: "zero rejected", input: "0", expectErr: ErrNonPositiveAmount},
		{name: "zero with decimals rejected", input: "0.00", expectErr: ErrNonPositiveAmount},
		{name: "negative rejected", input: "-5", expectErr: ErrNonPositiveAmount},
		{name: "empty rejected", input: "", expectErr: ErrInvalidAmount},
		{name: "whitespace only rejected", input: "   ", expectErr: ErrInvalidAmount},
		{name: "garbage rejected", input: "abc", expectErr: ErrInvalidAmount},
		{name: "mixed garbage rejected", input: "12.3x", expectErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected error %v, got %v", tt.expectErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %d minor units, got %d", tt.want, got)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		units int64
		want  string
	}{
		{units: 123456, want: "1234.56"},
		{units: 100, want: "1.00"},
		{units: 5, want: "0.05"},
		{units: 0, want: "0.00"},
	}

	for _, tt := range tests {
		if got := MoneyFromUnits(tt.units).String(); got != tt.want {
			t.Errorf("Money(%d).String() = %q, want %q", tt.units, got, tt.want)
		}
	}
}

func TestMoneySub(t *testing.T) {
	m := MoneyFromUnits(500)

	got, ok := m.Sub(MoneyFromUnits(200))
	if !ok || got != 300 {
		t.Fatalf("expected 300, ok; got %d, %v", got, ok)
	}

	if _, ok := m.Sub(MoneyFromUnits(501)); ok {
		t.Fatal("expected underflow to report not ok")
	}

	got, ok = m.Sub(m)
	if !ok || got != 0 {
		t.Fatalf("expected exact debit to zero, got %d, %v", got, ok)
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := MoneyFromUnits(123456).MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(b) != `"1234.56"` {
		t.Errorf("expected quoted two-decimal string, got %s", b)
	}

	var m Money
	if err := m.UnmarshalJSON([]byte(`"1,234.56"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m != 123456 {
		t.Errorf("expected 123456 minor units, got %d", m)
	}
}
