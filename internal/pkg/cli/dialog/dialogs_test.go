package dialog

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt/nop"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/env"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/options"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// scriptedPrompt answers questions by their labels.
type scriptedPrompt struct {
	answers map[string]string
	asked   []string
}

func (p *scriptedPrompt) IsInteractive() bool {
	return true
}

func (p *scriptedPrompt) Printf(_ string, _ ...any) {}

func (p *scriptedPrompt) Confirm(c *prompt.Confirm) bool {
	return c.Default
}

func (p *scriptedPrompt) Ask(q *prompt.Question) (string, bool) {
	p.asked = append(p.asked, q.Label)
	v, ok := p.answers[q.Label]
	if ok && q.Validator != nil {
		if err := q.Validator(v); err != nil {
			return "", false
		}
	}
	return v, ok
}

func (p *scriptedPrompt) Select(s *prompt.Select) (string, bool) {
	p.asked = append(p.asked, s.Label)
	if v, ok := p.answers[s.Label]; ok {
		return v, true
	}
	return s.Default, s.UseDefault
}

func loadOptions(t *testing.T, args ...string) *options.Options {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("working-dir", ".", "")
	flags.String("base-url", "https://api-gateway.instructure.com", "")
	flags.String("client-id", "", "")
	flags.String("client-secret", "", "")
	flags.String("namespace", "canvas", "")
	flags.String("kind", "snapshot", "")
	flags.String("since", "", "")
	flags.String("format", "jsonl", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse(args))

	o := options.New()
	require.NoError(t, o.Load(context.Background(), log.NewNopLogger(), env.Empty(), filesystem.NewMemoryFs(), flags))
	return o
}

func TestAskDownloadParameters_Flags(t *testing.T) {
	t.Parallel()

	o := loadOptions(t, "--client-id", "id", "--client-secret", "secret", "--kind", "Incremental", "--since", "2024-01-15 10:30:00", "--format", "csv", "--output", "out")
	params, err := New(nop.New()).AskDownloadParameters(context.Background(), o, []string{"courses"})
	require.NoError(t, err)

	assert.Equal(t, query.Parameters{
		BaseURL:         "https://api-gateway.instructure.com",
		ClientID:        "id",
		ClientSecret:    "secret",
		Namespace:       "canvas",
		Table:           "courses",
		Kind:            query.KindIncremental,
		Since:           "2024-01-15T10:30:00+00:00",
		Format:          query.FormatCSV,
		OutputDirectory: "out",
	}, params)
}

func TestAskDownloadParameters_NonInteractiveMissing(t *testing.T) {
	t.Parallel()

	o := loadOptions(t, "--kind", "incremental", "--format", "xml")
	_, err := New(nop.New()).AskDownloadParameters(context.Background(), o, nil)
	require.Error(t, err)

	var paramErr *query.ParameterError
	require.True(t, errors.As(err, &paramErr))

	expected := `
invalid parameters:
- missing client id, please use "--client-id" flag or ENV variable "DAP_CLIENT_ID"
- missing client secret, please use "--client-secret" flag or ENV variable "DAP_CLIENT_SECRET"
- missing output, please use "--output" flag or ENV variable "DAP_OUTPUT"
- missing since, please use "--since" flag or ENV variable "DAP_SINCE"
- missing table, please specify it as the first argument, run "dapq tables" to list them
- invalid format "xml", allowed values: jsonl, csv, tsv, parquet
`
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestAskDownloadParameters_Interactive(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompt{answers: map[string]string{
		"Client ID":        "id",
		"Client Secret":    "secret",
		"Table":            "users",
		"Query Type":       "incremental",
		"Since":            "2024-01-15T12:30:00+02:00",
		"File Format":      "parquet",
		"Output Directory": "data",
	}}
	o := loadOptions(t)
	params, err := New(p).AskDownloadParameters(context.Background(), o, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Client ID", "Client Secret", "Table", "Query Type", "Since", "File Format", "Output Directory"}, p.asked)
	assert.Equal(t, "users", params.Table)
	assert.Equal(t, query.KindIncremental, params.Kind)
	assert.Equal(t, "2024-01-15T10:30:00+00:00", params.Since)
	assert.Equal(t, query.FormatParquet, params.Format)
	assert.Equal(t, "data", params.OutputDirectory)
	assert.Equal(t, options.SetManually, o.KeySetBy("client-secret"))
}

func TestAskDownloadParameters_UnknownTable(t *testing.T) {
	t.Parallel()

	o := loadOptions(t, "--client-id", "id", "--client-secret", "secret", "--output", "out")
	_, err := New(nop.New()).AskDownloadParameters(context.Background(), o, []string{"foo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"table" is not a known table`)
}

func TestAskConnection_TrimSlash(t *testing.T) {
	t.Parallel()

	o := loadOptions(t, "--base-url", "https://dap.test/", "--client-id", "id", "--client-secret", "secret")
	require.NoError(t, New(nop.New()).AskConnection(o))
	assert.Equal(t, "https://dap.test", o.GetString("base-url"))
}

func TestBaseURLValidator(t *testing.T) {
	t.Parallel()
	require.NoError(t, BaseURLValidator("https://api-gateway.instructure.com"))
	assert.Equal(t, "value is required", BaseURLValidator("").Error())
	assert.Equal(t, `invalid URL, expected for example "https://api-gateway.instructure.com"`, BaseURLValidator("api-gateway").Error())
}

func TestSinceValidator(t *testing.T) {
	t.Parallel()
	require.NoError(t, SinceValidator("2024-01-15"))
	require.Error(t, SinceValidator("yesterday"))
}
