package interactive

import (
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// Prompt asks the user in the terminal.
type Prompt struct {
	stdin  terminal.FileReader
	stdout terminal.FileWriter
	stderr io.Writer
}

func New(stdin terminal.FileReader, stdout terminal.FileWriter, stderr io.Writer) *Prompt {
	return &Prompt{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (p *Prompt) IsInteractive() bool {
	return true
}

func (p *Prompt) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.stdout, format, a...)
}

func (p *Prompt) Confirm(c *prompt.Confirm) bool {
	result := c.Default
	err := survey.AskOne(&survey.Confirm{
		Message: formatLabel(c.Label),
		Help:    c.Description,
		Default: c.Default,
	}, &result, p.opts()...)
	if !p.handleError(err) {
		return c.Default
	}
	return result
}

func (p *Prompt) Ask(q *prompt.Question) (result string, ok bool) {
	opts := p.opts()
	if q.Validator != nil {
		opts = append(opts, survey.WithValidator(q.Validator))
	}

	var question survey.Prompt
	if q.Hidden {
		question = &survey.Password{Message: formatLabel(q.Label), Help: q.Description}
	} else {
		question = &survey.Input{Message: formatLabel(q.Label), Help: q.Description, Default: q.Default}
	}

	err := survey.AskOne(question, &result, opts...)
	return strings.TrimSpace(result), p.handleError(err)
}

func (p *Prompt) Select(s *prompt.Select) (value string, ok bool) {
	opts := p.opts()
	if s.Validator != nil {
		opts = append(opts, survey.WithValidator(s.Validator))
	}

	question := &survey.Select{
		Message:  formatLabel(s.Label),
		Help:     s.Description,
		Options:  s.Options,
		PageSize: 15,
	}
	if s.UseDefault {
		question.Default = s.Default
	}

	err := survey.AskOne(question, &value, opts...)
	return value, p.handleError(err)
}

func (p *Prompt) opts() []survey.AskOpt {
	return []survey.AskOpt{
		survey.WithStdio(p.stdin, p.stdout, p.stderr),
		survey.WithShowCursor(true),
	}
}

// handleError returns false if the user interrupted the question.
func (p *Prompt) handleError(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, terminal.InterruptErr):
		_, _ = fmt.Fprintln(p.stderr, "Interrupted.")
		return false
	default:
		_, _ = fmt.Fprintf(p.stderr, "Cannot read input: %s\n", err)
		return false
	}
}

func formatLabel(label string) string {
	return strings.TrimSuffix(label, ":") + ":"
}
