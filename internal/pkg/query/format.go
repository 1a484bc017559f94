package query

import (
	"strings"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// Format of the downloaded files.
type Format string

const (
	FormatJSONL   Format = "jsonl"
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatParquet Format = "parquet"
)

func Formats() []Format {
	return []Format{FormatJSONL, FormatCSV, FormatTSV, FormatParquet}
}

func ParseFormat(str string) (Format, error) {
	switch v := Format(strings.ToLower(strings.TrimSpace(str))); v {
	case FormatJSONL, FormatCSV, FormatTSV, FormatParquet:
		return v, nil
	default:
		return "", NewParameterError(errors.Errorf(`invalid format "%s", allowed values: jsonl, csv, tsv, parquet`, str))
	}
}

func (f Format) String() string {
	return string(f)
}
