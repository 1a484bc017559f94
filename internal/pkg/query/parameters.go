package query

import (
	"context"

	goValidator "github.com/go-playground/validator/v10"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/validator"
)

// Secret is a string which is masked when printed.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "*****"
}

func (s Secret) Value() string {
	return string(s)
}

// Parameters of one query execution, constructed fresh per invocation.
type Parameters struct {
	BaseURL         string `json:"baseUrl" validate:"required,url"`
	ClientID        string `json:"clientId" validate:"required"`
	ClientSecret    Secret `json:"clientSecret" validate:"required"`
	Namespace       string `json:"namespace" validate:"required"`
	Table           string `json:"table" validate:"required,dapTable"`
	Kind            Kind   `json:"kind" validate:"required,oneof=snapshot incremental"`
	Since           string `json:"since"`
	Format          Format `json:"format" validate:"required,oneof=jsonl csv tsv parquet"`
	OutputDirectory string `json:"outputDirectory" validate:"required"`
}

func parametersValidator() validator.Validator {
	return validator.New(validator.Rule{
		Tag: "dapTable",
		Func: func(_ context.Context, fl goValidator.FieldLevel) bool {
			return IsKnownTable(fl.Field().String())
		},
		ErrorMsg: "{0} is not a known table, run \"dapq tables\" to list them",
	})
}

// Validate checks all parameters and reports all problems at once, as a ParameterError.
func (p Parameters) Validate(ctx context.Context) error {
	errs := errors.NewMultiError()

	if err := parametersValidator().Validate(ctx, p); err != nil {
		errs.Append(err)
	}

	if p.Kind == KindIncremental {
		if _, err := ParseSince(p.Since); err != nil {
			errs.Append(errors.Unwrap(err))
		}
	}

	if errs.Len() > 0 {
		return NewParameterError(errors.PrefixError(errs, "invalid parameters"))
	}
	return nil
}

// Descriptor builds the query descriptor, the parameters must be valid.
// Snapshot carries only the format, incremental carries the format and the UTC since instant.
func (p Parameters) Descriptor() (Descriptor, error) {
	switch p.Kind {
	case KindSnapshot:
		return SnapshotDescriptor(p.Format), nil
	case KindIncremental:
		since, err := ParseSince(p.Since)
		if err != nil {
			return Descriptor{}, err
		}
		return IncrementalDescriptor(p.Format, since), nil
	default:
		return Descriptor{}, NewParameterError(errors.Errorf(`unexpected query kind "%s"`, p.Kind))
	}
}
