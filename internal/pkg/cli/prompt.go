package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt/interactive"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt/nop"
)

// NewPrompt returns the interactive prompt if both stdin and stdout are terminals, otherwise the nop prompt.
func NewPrompt(stdin io.Reader, stdout io.Writer, stderr io.Writer, nonInteractive bool) prompt.Prompt {
	if nonInteractive {
		return nop.New()
	}

	stdinFile, ok1 := stdin.(*os.File)
	stdoutFile, ok2 := stdout.(*os.File)
	if !ok1 || !ok2 || !isInteractiveTerminal(stdinFile) || !isInteractiveTerminal(stdoutFile) {
		return nop.New()
	}

	return interactive.New(stdinFile, stdoutFile, stderr)
}

func isInteractiveTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
