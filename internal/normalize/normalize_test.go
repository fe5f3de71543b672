package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipos/setval/internal/models"
)

func TestSymbol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "plain symbol", input: "CPALL", expected: "CPALL"},
		{name: "lowercase with suffix", input: "cpall.bk", expected: "CPALL"},
		{name: "whitespace trimmed", input: "  ptt  ", expected: "PTT"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
		{name: "too long", input: "TOOLONGSYM", wantErr: true},
		{name: "digits rejected", input: "AOT123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Symbol(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *models.InvalidSymbolError
				assert.ErrorAs(t, err, &invalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func validRaw() *models.RawFundamentals {
	return &models.RawFundamentals{
		Symbol:            "CPALL.BK",
		CurrentPrice:      62.5,
		EPS:               2.8,
		DividendPerShare:  1.0,
		FreeCashFlow:      28000,
		SharesOutstanding: 8983,
		PERatio:           22.3,
		PBRatio:           6.1,
		ReturnOnEquity:    24.5,
	}
}

func TestFundamentals(t *testing.T) {
	canon, err := Fundamentals(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "CPALL", canon.Symbol)
	assert.Equal(t, 62.5, canon.CurrentPrice)
	assert.InDelta(t, 62.5/6.1, canon.BookValuePerShare, 0.001)
	assert.False(t, canon.NormalizedAt.IsZero())

	// Every absent optional field is recorded.
	assert.Contains(t, canon.DefaultedFields, "total_assets")
	assert.Contains(t, canon.DefaultedFields, "net_income")
	assert.NotContains(t, canon.DefaultedFields, "dividend_per_share")
}

func TestFundamentalsRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.RawFundamentals)
		field   string
	}{
		{name: "zero eps", mutate: func(r *models.RawFundamentals) { r.EPS = 0 }, field: "eps"},
		{name: "negative eps", mutate: func(r *models.RawFundamentals) { r.EPS = -1.5 }, field: "eps"},
		{name: "zero price", mutate: func(r *models.RawFundamentals) { r.CurrentPrice = 0 }, field: "current_price"},
		{name: "NaN price", mutate: func(r *models.RawFundamentals) { r.CurrentPrice = math.NaN() }, field: "current_price"},
		{name: "infinite pe", mutate: func(r *models.RawFundamentals) { r.PERatio = math.Inf(1) }, field: "pe_ratio"},
		{name: "zero shares", mutate: func(r *models.RawFundamentals) { r.SharesOutstanding = 0 }, field: "shares_outstanding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)

			_, err := Fundamentals(raw)
			require.Error(t, err)

			var missing *models.MissingRequiredInputError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
			assert.Equal(t, "CPALL", missing.Symbol)
		})
	}
}

func TestFundamentalsInvalidSymbol(t *testing.T) {
	raw := validRaw()
	raw.Symbol = "123"

	_, err := Fundamentals(raw)
	var invalid *models.InvalidSymbolError
	assert.ErrorAs(t, err, &invalid)
}

func TestFundamentalsNoBookValueWithoutPB(t *testing.T) {
	raw := validRaw()
	raw.PBRatio = 0

	canon, err := Fundamentals(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.0, canon.BookValuePerShare)
	assert.Contains(t, canon.DefaultedFields, "pb_ratio")
}
