package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/trailing"
	"github.com/etnz/trailing/renderer"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used by the Analyst.
const DefaultModel = "gemini-2.5-pro"

// maxCalls bounds the number of function calls answered for a single question.
const maxCalls = 8

// ErrNotStarted is returned when asking an Analyst before its chat is started.
var ErrNotStarted = errors.New("analyst chat is not started")

const instructions = `You are a portfolio analyst commenting on a trailing returns report.

The report below was computed from month end adjusted closes. Every window ends on the last
month of common history. A window is truncated when the history is shorter than requested.
Annualized figures use 12 months per year, Sharpe ratios are computed on excess returns over the
risk-free rate and beta is measured against the benchmark.

Ground every number you quote in the report or in the tools. Use the tools to get the month by month
records of a window or the methodology documentation. Be concise, and answer in markdown.

`

// Analyst represents a chat with a model that knows about a trailing returns analysis.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	Library   Library
	chat      *genai.Chat
}

// NewAnalyst creates an Analyst primed with the markdown report of results.
func NewAnalyst(results []*trailing.PeriodResult, opts renderer.ReportOptions) *Analyst {
	tools := Tools(results, opts.Benchmark)
	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString(renderer.ReportMarkdown(results, opts))

	return &Analyst{
		ModelName: DefaultModel,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclarations(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: b.String()}}},
		},
		Library: NewLibrary(tools),
	}
}

// Start creates the chat session.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return fmt.Errorf("cannot start analyst chat: %w", err)
	}
	a.chat = chat
	return nil
}

// Ask sends a question and returns the text answer, answering intermediate function calls
// with the Analyst's Library.
func (a *Analyst) Ask(ctx context.Context, question string) (string, error) {
	if a.chat == nil {
		return "", ErrNotStarted
	}
	parts := []*genai.Part{{Text: question}}
	for range maxCalls {
		resp, err := a.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", errors.New("no response from analyst")
		}
		part0 := resp.Candidates[0].Content.Parts[0]
		if part0.FunctionCall == nil {
			return part0.Text, nil
		}
		if a.Library == nil {
			return "", fmt.Errorf("analyst doesn't know how to call %s", part0.FunctionCall.Name)
		}
		log.Debug().Str("function", part0.FunctionCall.Name).Interface("args", part0.FunctionCall.Args).Msg("analyst function call")
		parts = []*genai.Part{{FunctionResponse: a.Library(ctx, part0.FunctionCall)}}
	}
	return "", fmt.Errorf("analyst made more than %d function calls", maxCalls)
}
