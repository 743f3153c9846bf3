package types

import "testing"

func TestTokensArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Tokens
		expected Tokens
	}{
		{"Add", func() Tokens { return Tokens(100).Add(Tokens(25)) }, Tokens(125)},
		{"Sub", func() Tokens { return Tokens(100).Sub(Tokens(10)) }, Tokens(90)},
		{"Sub below zero", func() Tokens { return Tokens(5).Sub(Tokens(10)) }, Tokens(-5)},
		{"Neg", func() Tokens { return Tokens(10).Neg() }, Tokens(-10)},
		{"Abs positive", func() Tokens { return Tokens(10).Abs() }, Tokens(10)},
		{"Abs negative", func() Tokens { return Tokens(-10).Abs() }, Tokens(10)},
		{"Chained", func() Tokens { return Tokens(100).Sub(Tokens(10)).Add(Tokens(5)) }, Tokens(95)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op(); got != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTokensPredicates(t *testing.T) {
	tests := []struct {
		name     string
		amount   Tokens
		zero     bool
		positive bool
		negative bool
	}{
		{"zero", Tokens(0), true, false, false},
		{"positive", Tokens(7), false, true, false},
		{"negative", Tokens(-7), false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amount.IsZero(); got != tt.zero {
				t.Errorf("IsZero: got %v, want %v", got, tt.zero)
			}
			if got := tt.amount.IsPositive(); got != tt.positive {
				t.Errorf("IsPositive: got %v, want %v", got, tt.positive)
			}
			if got := tt.amount.IsNegative(); got != tt.negative {
				t.Errorf("IsNegative: got %v, want %v", got, tt.negative)
			}
		})
	}
}

func TestTokensString(t *testing.T) {
	tests := []struct {
		amount Tokens
		want   string
	}{
		{Tokens(0), "0 tokens"},
		{Tokens(1), "1 token"},
		{Tokens(-1), "-1 token"},
		{Tokens(25), "25 tokens"},
		{Tokens(-90), "-90 tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.amount.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
