package trailing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePortfolio(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Portfolio
	}{
		{
			name:  "original layout",
			input: "id,tck,qty\n1,ABBV,225.000\n2,azo,5\n",
			want:  Portfolio{{"ABBV", Q(225)}, {"AZO", Q(5)}},
		},
		{
			name:  "named columns",
			input: "quantity, ticker\n12.5, BRK.B\n",
			want:  Portfolio{{"BRK.B", Q(12.5)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePortfolio(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Ticker, got[i].Ticker)
				assert.True(t, tt.want[i].Quantity.Equal(got[i].Quantity), "quantity of %s = %v, want %v", got[i].Ticker, got[i].Quantity, tt.want[i].Quantity)
			}
		})
	}
}

func TestDecodePortfolioErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "header"},
		{"no quantity column", "ticker,price\nA,1\n", "quantity column"},
		{"no position", "ticker,qty\n", "empty portfolio"},
		{"missing ticker", "ticker,qty\n,1\n", "line 2: invalid ticker"},
		{"spaced ticker", "ticker,qty\nBRK B,1\n", "line 2: invalid ticker"},
		{"long ticker", "ticker,qty\nABCDEFGHIJKLM,1\n", "line 2: invalid ticker"},
		{"bad quantity", "ticker,qty\nA,ten\n", "line 2: invalid quantity"},
		{"negative quantity", "ticker,qty\nA,-1\n", "negative quantity"},
		{"duplicate", "ticker,qty\nA,1\nB,2\na,3\n", "duplicate ticker"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePortfolio(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodePortfolio(t *testing.T) {
	pf := Portfolio{{"ABBV", Q(225)}, {"AZO", Q(5.5)}}
	var buf bytes.Buffer
	require.NoError(t, EncodePortfolio(&buf, pf))
	assert.Equal(t, "ticker,quantity\nABBV,225\nAZO,5.5\n", buf.String())

	got, err := DecodePortfolio(&buf)
	require.NoError(t, err)
	assert.Equal(t, pf.Tickers(), got.Tickers())
	q, ok := got.Quantity("AZO")
	assert.True(t, ok)
	assert.True(t, q.Equal(Q(5.5)))
	_, ok = got.Quantity("SPY")
	assert.False(t, ok)
}
