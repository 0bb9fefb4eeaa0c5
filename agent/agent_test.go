package agent

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/trailing"
	"github.com/etnz/trailing/renderer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// results analyzes 14 months of a single security growing 1% a month.
func results(t *testing.T) []*trailing.PeriodResult {
	t.Helper()
	start := trailing.MustParseMonth("2024-01")
	var obs []trailing.PriceObservation
	bench := new(trailing.BenchmarkSeries)
	rf := new(trailing.RiskFreeSeries)
	price := decimal.NewFromInt(100)
	for i := range 14 {
		m := start.Add(i)
		obs = append(obs, trailing.PriceObservation{Ticker: "MSFT", Month: m, Close: price, AdjustedClose: price})
		price = price.Mul(decimal.RequireFromString("1.01")).Add(decimal.NewFromInt(int64(i % 3)))
		bench.Append(m, 0.002*float64(i%4))
		rf.Append(m, 0.003)
	}
	data, err := trailing.Align(trailing.Prices{"MSFT": obs})
	require.NoError(t, err)
	res, err := trailing.Analyze(context.Background(), trailing.Portfolio{{Ticker: "MSFT", Quantity: trailing.Q(3)}}, data, bench, rf, trailing.DefaultLookbacks)
	require.NoError(t, err)
	require.Len(t, res, 2)
	return res
}

func TestNewAnalyst(t *testing.T) {
	a := NewAnalyst(results(t), renderer.ReportOptions{Benchmark: "SPY"})
	assert.Equal(t, DefaultModel, a.ModelName)

	require.NotNil(t, a.Config.SystemInstruction)
	system := a.Config.SystemInstruction.Parts[0].Text
	assert.Contains(t, system, "# Trailing Returns")
	assert.Contains(t, system, "SPY")

	require.Len(t, a.Config.Tools, 1)
	var names []string
	for _, d := range a.Config.Tools[0].FunctionDeclarations {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Window", "Documentation"}, names)
	assert.Equal(t, []string{"1y", "1y1m"}, a.Config.Tools[0].FunctionDeclarations[0].Parameters.Properties["window"].Enum)
}

func TestAskNotStarted(t *testing.T) {
	a := NewAnalyst(nil, renderer.ReportOptions{})
	_, err := a.Ask(context.Background(), "how did it go?")
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary(Tools(results(t), "SPY"))
	ctx := context.Background()

	tests := []struct {
		name    string
		call    *genai.FunctionCall
		output  string // substring of the output
		failure string // substring of the error
	}{
		{
			name:   "window",
			call:   &genai.FunctionCall{ID: "1", Name: "Window", Args: map[string]any{"window": "1y1m"}},
			output: "# 1y1m window",
		},
		{
			name:    "unknown window",
			call:    &genai.FunctionCall{ID: "2", Name: "Window", Args: map[string]any{"window": "10y"}},
			failure: "available windows are 1y, 1y1m",
		},
		{
			name:    "wrong argument type",
			call:    &genai.FunctionCall{ID: "3", Name: "Window", Args: map[string]any{"window": 3}},
			failure: "not a string",
		},
		{
			name:   "documentation",
			call:   &genai.FunctionCall{ID: "4", Name: "Documentation", Args: map[string]any{"topic": "methodology"}},
			output: "Sharpe",
		},
		{
			name:    "missing argument",
			call:    &genai.FunctionCall{ID: "5", Name: "Documentation", Args: map[string]any{}},
			failure: `missing argument "topic"`,
		},
		{
			name:    "unknown function",
			call:    &genai.FunctionCall{ID: "6", Name: "Trade"},
			failure: "unknown function Trade",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := lib(ctx, tt.call)
			assert.Equal(t, tt.call.ID, resp.ID)
			assert.Equal(t, tt.call.Name, resp.Name)
			if tt.failure != "" {
				assert.Contains(t, resp.Response["error"], tt.failure)
				return
			}
			assert.Nil(t, resp.Response["error"])
			assert.Contains(t, resp.Response["output"], tt.output)
		})
	}
}

type echo struct{ asked []string }

func (e *echo) Ask(ctx context.Context, question string) (string, error) {
	if question == "fail" {
		return "", errors.New("boom")
	}
	e.asked = append(e.asked, question)
	return "answer to " + question, nil
}

func TestSession(t *testing.T) {
	t.Run("prompts then input", func(t *testing.T) {
		var out bytes.Buffer
		asker := new(echo)
		s := NewSession(&out, strings.NewReader("\nwhy?\nbye\nignored\n"), asker)
		s.Render = strings.ToUpper

		require.NoError(t, s.Run(context.Background(), "what?", "  "))
		assert.Equal(t, []string{"what?", "why?"}, asker.asked)
		assert.Contains(t, out.String(), "ANSWER TO WHAT?")
		assert.Contains(t, out.String(), "ANSWER TO WHY?")
	})

	t.Run("end of input", func(t *testing.T) {
		var out bytes.Buffer
		asker := new(echo)
		require.NoError(t, NewSession(&out, strings.NewReader("last"), asker).Run(context.Background()))
		assert.Equal(t, []string{"last"}, asker.asked)
	})

	t.Run("error", func(t *testing.T) {
		var out bytes.Buffer
		err := NewSession(&out, strings.NewReader(""), new(echo)).Run(context.Background(), "fail")
		assert.EqualError(t, err, "boom")
	})
}
