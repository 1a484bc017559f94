package query

import (
	"strings"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// Kind of the table query.
type Kind string

const (
	// KindSnapshot exports the full dataset, no time bound.
	KindSnapshot Kind = "snapshot"
	// KindIncremental exports changes since a given instant, open-ended.
	KindIncremental Kind = "incremental"
)

func Kinds() []Kind {
	return []Kind{KindSnapshot, KindIncremental}
}

func ParseKind(str string) (Kind, error) {
	switch v := Kind(strings.ToLower(strings.TrimSpace(str))); v {
	case KindSnapshot, KindIncremental:
		return v, nil
	default:
		return "", NewParameterError(errors.Errorf(`invalid query kind "%s", allowed values: snapshot, incremental`, str))
	}
}

func (k Kind) String() string {
	return string(k)
}

// DirName is the name of the output subdirectory for the kind.
func (k Kind) DirName() string {
	return string(k)
}
