package dialog

import (
	"context"
	"net/url"
	"strings"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/options"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// Dialogs ask the user for each value missing in flags and ENVs.
// In a non-interactive terminal, defaults are used and missing values are reported as an error.
type Dialogs struct {
	prompt.Prompt
}

func New(p prompt.Prompt) *Dialogs {
	return &Dialogs{Prompt: p}
}

// AskConnection asks for the platform URL, the credentials and the namespace.
func (d *Dialogs) AskConnection(o *options.Options) error {
	d.askConnection(o)
	return o.MissingRequired(connectionKeys()...)
}

// AskTable returns the table from the first argument or asks the user to select one.
func (d *Dialogs) AskTable(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	table, ok := d.Select(&prompt.Select{
		Label:       "Table",
		Description: "Please select the table to query.",
		Options:     query.Tables(),
	})
	if !ok || table == "" {
		return "", errors.New(`missing table, please specify it as the first argument, run "dapq tables" to list them`)
	}
	return table, nil
}

// AskDownloadParameters collects all parameters of the download command, all problems are reported at once.
func (d *Dialogs) AskDownloadParameters(ctx context.Context, o *options.Options, args []string) (query.Parameters, error) {
	d.askConnection(o)
	table, tableErr := d.AskTable(args)
	d.askKind(o)
	incremental := strings.EqualFold(strings.TrimSpace(o.GetString("kind")), query.KindIncremental.String())
	if incremental {
		d.askSince(o)
	}
	d.askFormat(o)
	d.askOutput(o)

	// Required values
	required := append(connectionKeys(), "output")
	if incremental {
		required = append(required, "since")
	}
	errs := errors.NewMultiError()
	errs.Append(o.Missing(required...))
	errs.Append(tableErr)

	// Enums
	kind, err := query.ParseKind(o.GetString("kind"))
	if err != nil {
		errs.Append(errors.Unwrap(err))
	}
	format, err := query.ParseFormat(o.GetString("format"))
	if err != nil {
		errs.Append(errors.Unwrap(err))
	}

	// Since is normalized to UTC
	since := ""
	if incremental && o.GetString("since") != "" {
		if t, err := query.ParseSince(o.GetString("since")); err == nil {
			since = query.FormatSince(t)
		} else {
			errs.Append(errors.Unwrap(err))
		}
	}

	if errs.Len() > 0 {
		return query.Parameters{}, query.NewParameterError(errors.PrefixError(errs, "invalid parameters"))
	}

	params := query.Parameters{
		BaseURL:         o.GetString("base-url"),
		ClientID:        o.GetString("client-id"),
		ClientSecret:    query.Secret(o.GetString("client-secret")),
		Namespace:       o.GetString("namespace"),
		Table:           table,
		Kind:            kind,
		Since:           since,
		Format:          format,
		OutputDirectory: filesystem.Abs(o.WorkingDir(), o.GetString("output")),
	}
	return params, params.Validate(ctx)
}

func connectionKeys() []string {
	return []string{"base-url", "client-id", "client-secret", "namespace"}
}

func (d *Dialogs) askConnection(o *options.Options) {
	d.askValue(o, "base-url", &prompt.Question{
		Label:       "Base URL",
		Description: `Please enter the DAP API gateway URL, for example "https://api-gateway.instructure.com".`,
		Validator:   BaseURLValidator,
	})
	d.askValue(o, "client-id", &prompt.Question{
		Label:       "Client ID",
		Description: "Please enter the client ID of your DAP API key.",
		Validator:   prompt.ValueRequired,
	})
	d.askValue(o, "client-secret", &prompt.Question{
		Label:       "Client Secret",
		Description: "Please enter the client secret of your DAP API key.",
		Validator:   prompt.ValueRequired,
		Hidden:      true,
	})
	d.askValue(o, "namespace", &prompt.Question{
		Label:       "Namespace",
		Description: `Please enter the namespace, for example "canvas".`,
		Validator:   prompt.ValueRequired,
	})

	if v := o.GetString("base-url"); v != "" && strings.HasSuffix(v, "/") {
		o.Set("base-url", strings.TrimRight(v, "/"))
	}
}

func (d *Dialogs) askKind(o *options.Options) {
	if !d.IsInteractive() || o.KeySetBy("kind") != options.SetByDefault {
		return
	}
	if v, ok := d.Select(&prompt.Select{
		Label:       "Query Type",
		Description: "Snapshot exports the whole table, incremental exports changes since a timestamp.",
		Options:     []string{query.KindSnapshot.String(), query.KindIncremental.String()},
		Default:     o.GetString("kind"),
		UseDefault:  true,
	}); ok {
		o.Set("kind", v)
	}
}

func (d *Dialogs) askSince(o *options.Options) {
	d.askValue(o, "since", &prompt.Question{
		Label:       "Since",
		Description: `Please enter the start of the incremental query, for example "2024-01-15T10:30:00+00:00", UTC is used if the offset is missing.`,
		Validator:   SinceValidator,
	})
}

func (d *Dialogs) askFormat(o *options.Options) {
	if !d.IsInteractive() || o.KeySetBy("format") != options.SetByDefault {
		return
	}
	values := make([]string, 0, len(query.Formats()))
	for _, f := range query.Formats() {
		values = append(values, f.String())
	}
	if v, ok := d.Select(&prompt.Select{
		Label:       "File Format",
		Description: "Please select the format of the downloaded files.",
		Options:     values,
		Default:     o.GetString("format"),
		UseDefault:  true,
	}); ok {
		o.Set("format", v)
	}
}

func (d *Dialogs) askOutput(o *options.Options) {
	d.askValue(o, "output", &prompt.Question{
		Label:       "Output Directory",
		Description: `Please enter the directory for the downloaded files, "snapshot" or "incremental" subdirectory is created in it.`,
		Validator:   prompt.ValueRequired,
	})
}

// askValue asks the question only if the option is empty.
func (d *Dialogs) askValue(o *options.Options, key string, q *prompt.Question) {
	if o.GetString(key) != "" {
		return
	}
	if v, ok := d.Ask(q); ok && v != "" {
		o.Set(key, v)
	}
}

func BaseURLValidator(val any) error {
	str, _ := val.(string)
	if len(strings.TrimSpace(str)) == 0 {
		return errors.New("value is required")
	}
	if u, err := url.Parse(str); err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(`invalid URL, expected for example "https://api-gateway.instructure.com"`)
	}
	return nil
}

func SinceValidator(val any) error {
	str, _ := val.(string)
	if _, err := query.ParseSince(str); err != nil {
		return err
	}
	return nil
}
