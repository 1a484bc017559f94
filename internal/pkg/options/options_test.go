package options

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/env"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(WorkingDirOpt, "", "")
	flags.String("client-id", "", "")
	flags.String("client-secret", "", "")
	flags.String("namespace", "canvas", "")
	return flags
}

func TestOptions_Priority(t *testing.T) {
	t.Parallel()

	workingDir := filepath.Join("/", "project")
	fs := filesystem.NewMemoryFs()
	require.NoError(t, fs.MkdirAll(workingDir))
	require.NoError(t, fs.WriteFile(filepath.Join(workingDir, ".env"), []byte("DAP_CLIENT_ID=from-file\nDAP_CLIENT_SECRET=secret-from-file\n")))

	osEnvs := env.Empty()
	osEnvs.Set("DAP_CLIENT_ID", "from-os")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--working-dir", workingDir, "--namespace", "other"}))

	o := New()
	require.NoError(t, o.Load(context.Background(), log.NewNopLogger(), osEnvs, fs, flags))

	assert.Equal(t, workingDir, o.WorkingDir())
	assert.Equal(t, "from-os", o.GetString("client-id"))
	assert.Equal(t, SetByEnv, o.KeySetBy("client-id"))
	assert.Equal(t, "secret-from-file", o.GetString("client-secret"))
	assert.Equal(t, "other", o.GetString("namespace"))
	assert.Equal(t, SetByFlag, o.KeySetBy("namespace"))
}

func TestOptions_Default(t *testing.T) {
	t.Parallel()

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--working-dir", "/project"}))

	o := New()
	require.NoError(t, o.Load(context.Background(), log.NewNopLogger(), env.Empty(), filesystem.NewMemoryFs(), flags))
	assert.Equal(t, "canvas", o.GetString("namespace"))
	assert.Equal(t, SetByDefault, o.KeySetBy("namespace"))

	o.Set("namespace", "manual")
	assert.Equal(t, "manual", o.GetString("namespace"))
	assert.Equal(t, SetManually, o.KeySetBy("namespace"))
}

func TestOptions_MissingRequired(t *testing.T) {
	t.Parallel()

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--working-dir", "/project", "--client-id", "abc"}))

	o := New()
	require.NoError(t, o.Load(context.Background(), log.NewNopLogger(), env.Empty(), filesystem.NewMemoryFs(), flags))
	require.NoError(t, o.MissingRequired("client-id", "namespace"))

	err := o.MissingRequired("client-id", "client-secret")
	require.Error(t, err)
	assert.Equal(t, "invalid parameters:\n- missing client secret, please use \"--client-secret\" flag or ENV variable \"DAP_CLIENT_SECRET\"", err.Error())
}

func TestOptions_Dump(t *testing.T) {
	t.Parallel()

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--working-dir", "/project", "--client-id", "abc", "--client-secret", "very-secret"}))

	o := New()
	require.NoError(t, o.Load(context.Background(), log.NewNopLogger(), env.Empty(), filesystem.NewMemoryFs(), flags))

	dump := o.Dump()
	assert.Contains(t, dump, `client-id = "abc"`)
	assert.Contains(t, dump, `client-secret = "*****"`)
	assert.NotContains(t, dump, "very-secret")
}
