package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPrompt_NonInteractive(t *testing.T) {
	t.Parallel()

	// Buffers are not terminals
	var stdin, stdout, stderr bytes.Buffer
	assert.False(t, NewPrompt(&stdin, &stdout, &stderr, false).IsInteractive())
	assert.False(t, NewPrompt(&stdin, &stdout, &stderr, true).IsInteractive())
}
