package nop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt"
)

func TestNopPrompt(t *testing.T) {
	t.Parallel()
	p := New()
	assert.False(t, p.IsInteractive())
	assert.True(t, p.Confirm(&prompt.Confirm{Default: true}))

	result, ok := p.Ask(&prompt.Question{Default: "foo"})
	assert.True(t, ok)
	assert.Equal(t, "foo", result)

	value, ok := p.Select(&prompt.Select{Options: []string{"a", "b"}, Default: "b"})
	assert.False(t, ok)
	assert.Equal(t, "b", value)

	value, ok = p.Select(&prompt.Select{Options: []string{"a", "b"}, Default: "b", UseDefault: true})
	assert.True(t, ok)
	assert.Equal(t, "b", value)
}
