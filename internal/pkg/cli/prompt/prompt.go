package prompt

import (
	"strings"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

type Prompt interface {
	IsInteractive() bool
	Printf(format string, a ...any)
	Confirm(c *Confirm) bool
	Ask(q *Question) (result string, ok bool)
	Select(s *Select) (value string, ok bool)
}

type Confirm struct {
	Label       string
	Description string
	Default     bool
}

type Question struct {
	Label       string
	Description string
	Default     string
	Validator   func(val any) error
	Hidden      bool
}

type Select struct {
	Label       string
	Description string
	Options     []string
	Default     string
	UseDefault  bool
	Validator   func(val any) error
}

func ValueRequired(val any) error {
	if str, ok := val.(string); !ok || len(strings.TrimSpace(str)) == 0 {
		return errors.New("value is required")
	}
	return nil
}
