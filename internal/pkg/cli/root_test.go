package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt/nop"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/dap"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/env"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/ioutil"
)

type fakeClient struct {
	fs     filesystem.Fs
	config dap.Config
}

func (c *fakeClient) GetSchema(_ context.Context, _, _ string) (query.Schema, error) {
	return query.Schema{Version: 5}, nil
}

func (c *fakeClient) SubmitQuery(_ context.Context, _, _ string, _ query.Descriptor) (query.JobID, error) {
	return "job-1", nil
}

func (c *fakeClient) Download(_ context.Context, _, _ string, _ query.Descriptor, dir string, _ bool) (query.DownloadResult, error) {
	path := filesystem.Join(dir, "part-00000.csv")
	if err := c.fs.WriteFile(path, []byte("id\n1\n")); err != nil {
		return query.DownloadResult{}, err
	}
	return query.DownloadResult{Files: []string{path}}, nil
}

type testRoot struct {
	*RootCommand
	fs      filesystem.Fs
	stdout  *ioutil.AtomicWriter
	stderr  *ioutil.AtomicWriter
	clients []*fakeClient
}

func newTestRoot(t *testing.T, envs *env.Map, args ...string) *testRoot {
	t.Helper()

	r := &testRoot{fs: filesystem.NewMemoryFs(), stdout: ioutil.NewAtomicWriter(), stderr: ioutil.NewAtomicWriter()}
	factory := func(cfg dap.Config, _ log.Logger, fs filesystem.Fs, _ ...dap.Option) query.Client {
		c := &fakeClient{fs: fs, config: cfg}
		r.clients = append(r.clients, c)
		return c
	}

	r.RootCommand = NewRootCommand(&bytes.Buffer{}, r.stdout, r.stderr, envs, r.fs, WithPrompt(nop.New()), WithClientFactory(factory))
	logFile := filepath.Join(t.TempDir(), "log.txt")
	r.SetArgs(append(args, "--working-dir", ".", "--log-file", logFile))
	return r
}

func TestRootCommand_Download(t *testing.T) {
	t.Parallel()

	r := newTestRoot(t, env.Empty(), "download", "courses", "--client-id", "id", "--client-secret", "secret", "--format", "csv", "--output", "out")
	exitCode := r.Execute(context.Background())
	assert.Equal(t, 0, exitCode, r.stderr.String())

	expectedPath := filesystem.Join("out", "snapshot", "courses_part-00000.csv")
	assert.True(t, r.fs.IsFile(expectedPath))
	assert.Contains(t, r.stdout.String(), "Done.")
	assert.Contains(t, r.stdout.String(), `Table "courses" downloaded to "out/snapshot", files: 1, job: job-1`)
	assert.Contains(t, r.stdout.String(), expectedPath)
	assert.Empty(t, r.stderr.String())

	require.Len(t, r.clients, 1)
	assert.Equal(t, dap.Config{
		BaseURL:      DefaultBaseURL,
		ClientID:     "id",
		ClientSecret: "secret",
		Concurrency:  dap.DefaultConcurrency,
	}, r.clients[0].config)
}

func TestRootCommand_Download_Envs(t *testing.T) {
	t.Parallel()

	envs := env.Empty()
	envs.Set("DAP_CLIENT_ID", "env-id")
	envs.Set("DAP_CLIENT_SECRET", "env-secret")
	envs.Set("DAP_BASE_URL", "https://dap.test")
	envs.Set("DAP_KIND", "incremental")
	envs.Set("DAP_SINCE", "2024-01-15")
	r := newTestRoot(t, envs, "download", "users", "-o", "out")
	exitCode := r.Execute(context.Background())
	assert.Equal(t, 0, exitCode, r.stderr.String())

	assert.True(t, r.fs.IsFile(filesystem.Join("out", "incremental", "users_part-00000.csv")))
	require.Len(t, r.clients, 1)
	assert.Equal(t, "env-id", r.clients[0].config.ClientID)
	assert.Equal(t, "https://dap.test", r.clients[0].config.BaseURL)
}

func TestRootCommand_Download_MissingParameters(t *testing.T) {
	t.Parallel()

	r := newTestRoot(t, env.Empty(), "download", "courses", "--kind", "incremental", "--since", "yesterday")
	exitCode := r.Execute(context.Background())
	assert.Equal(t, 1, exitCode)

	stderr := r.stderr.String()
	assert.Contains(t, stderr, "invalid parameters:")
	assert.Contains(t, stderr, `missing client id, please use "--client-id" flag or ENV variable "DAP_CLIENT_ID"`)
	assert.Contains(t, stderr, `missing output, please use "--output" flag or ENV variable "DAP_OUTPUT"`)
	assert.Contains(t, stderr, `invalid since timestamp "yesterday"`)
	assert.Empty(t, r.clients)
	assert.False(t, r.fs.Exists("out"))
}

func TestRootCommand_Tables(t *testing.T) {
	t.Parallel()

	r := newTestRoot(t, env.Empty(), "tables")
	assert.Equal(t, 0, r.Execute(context.Background()))
	assert.Contains(t, r.stdout.String(), "courses")
	assert.Contains(t, r.stdout.String(), "wikis")
}

func TestRootCommand_Schema(t *testing.T) {
	t.Parallel()

	r := newTestRoot(t, env.Empty(), "schema", "courses", "--client-id", "id", "--client-secret", "secret")
	assert.Equal(t, 0, r.Execute(context.Background()), r.stderr.String())
	assert.Contains(t, r.stdout.String(), `Table "canvas.courses" schema version: 5`)
}

func TestRootCommand_Schema_UnknownTable(t *testing.T) {
	t.Parallel()

	r := newTestRoot(t, env.Empty(), "schema", "foo", "--client-id", "id", "--client-secret", "secret")
	assert.Equal(t, 1, r.Execute(context.Background()))
	assert.Contains(t, r.stderr.String(), `"foo" is not a known table`)
	assert.Empty(t, r.clients)
}

func TestRootCommand_Version(t *testing.T) {
	t.Parallel()

	r := newTestRoot(t, env.Empty(), "--version")
	assert.Equal(t, 0, r.Execute(context.Background()))
	assert.Contains(t, r.stdout.String(), "Version:    dev")
}

func TestRootCommand_Commands(t *testing.T) {
	t.Parallel()

	r := newTestRoot(t, env.Empty())
	for _, name := range []string{"download", "tables", "schema"} {
		assert.NotNil(t, r.GetCommandByName(name), name)
	}
	assert.Nil(t, r.GetCommandByName("foo"))
}
