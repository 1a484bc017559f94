package nop

import (
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt"
)

// Prompt is used in a non-interactive terminal, each question is answered by its default value.
type Prompt struct{}

func New() prompt.Prompt {
	return &Prompt{}
}

func (p *Prompt) IsInteractive() bool {
	return false
}

func (p *Prompt) Printf(_ string, _ ...any) {
	// nop
}

func (p *Prompt) Confirm(c *prompt.Confirm) bool {
	return c.Default
}

func (p *Prompt) Ask(q *prompt.Question) (result string, ok bool) {
	return q.Default, true
}

func (p *Prompt) Select(s *prompt.Select) (value string, ok bool) {
	return s.Default, s.UseDefault
}
