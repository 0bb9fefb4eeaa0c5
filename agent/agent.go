package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Asker answers questions.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Session is an interactive question and answer loop.
type Session struct {
	w      io.Writer
	r      *bufio.Reader
	asker  Asker
	Render func(string) string // Formats answers, identity by default.
}

// NewSession creates a new Session reading questions from r and writing answers to w.
func NewSession(w io.Writer, r io.Reader, asker Asker) *Session {
	return &Session{
		w:      w,
		r:      bufio.NewReader(r),
		asker:  asker,
		Render: func(s string) string { return s },
	}
}

const prompt = "explain> "

// Run asks prompts first, then reads questions until "bye" or the end of input.
func (s *Session) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(s.w, "Ask anything about the report. Type 'bye' to exit.")

	for {
		fmt.Fprint(s.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(s.w, input)
		} else {
			var err error
			input, err = s.r.ReadString('\n')
			if err != nil && (err != io.EOF || strings.TrimSpace(input) == "") {
				if err == io.EOF {
					fmt.Fprintln(s.w)
					return nil // Ctrl+D
				}
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
		}

		if input == "bye" {
			return nil
		}

		answer, err := s.asker.Ask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.w, s.Render(answer))
	}
}
