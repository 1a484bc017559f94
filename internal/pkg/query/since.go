package query

import (
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/relvacode/iso8601"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// SincePattern is the strftime pattern of a normalized since timestamp.
const SincePattern = "%Y-%m-%dT%H:%M:%S+00:00"

// Naive layouts, without offset, are interpreted as UTC.
var naiveSinceLayouts = []string{ // nolint: gochecknoglobals
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSince parses the since timestamp of an incremental query and converts it to UTC.
//
// Accepted values:
//   - ISO-8601 with an offset, for example "2024-01-15T10:30:00+00:00" or "2024-01-15T10:30:00Z".
//   - ISO-8601 without an offset, for example "2024-01-15T10:30:00", interpreted as UTC.
//   - "2024-01-15 10:30:00" and "2024-01-15" (midnight), interpreted as UTC.
func ParseSince(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return time.Time{}, NewParameterError(errors.New("since timestamp is required for an incremental query"))
	}

	for _, layout := range naiveSinceLayouts {
		if t, err := time.ParseInLocation(layout, str, time.UTC); err == nil {
			return t, nil
		}
	}

	// Reduced precision, for example "2024" or "2024-01", is not accepted
	if len(str) <= len("2006-01-02") || str[len("2006-01-02")] != 'T' {
		return time.Time{}, NewParameterError(errors.Errorf(`invalid since timestamp "%s", expected ISO-8601, for example "2024-01-15T10:30:00+00:00"`, str))
	}

	t, err := iso8601.ParseString(str)
	if err != nil {
		return time.Time{}, NewParameterError(errors.Errorf(`invalid since timestamp "%s", expected ISO-8601, for example "2024-01-15T10:30:00+00:00": %w`, str, err))
	}

	return t.UTC(), nil
}

// FormatSince renders the timestamp in the normalized UTC form, for example "2024-01-15T10:30:00+00:00".
func FormatSince(t time.Time) string {
	out, err := strftime.Format(SincePattern, t.UTC())
	if err != nil {
		// The pattern is a constant, it is always valid.
		panic(errors.Errorf(`cannot format since timestamp: %w`, err))
	}
	return out
}
