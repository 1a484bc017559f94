package env

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
)

func TestEnvNamingConvention(t *testing.T) {
	t.Parallel()
	n := NewNamingConvention(Prefix)
	assert.Equal(t, "DAP_FOO", n.FlagToEnv("foo"))
	assert.Equal(t, "DAP_CLIENT_ID", n.FlagToEnv("client-id"))
	assert.Equal(t, "DAP_FOO_BAR_BAZ", n.FlagToEnv("foo-Bar-BAZ"))
}

func TestEnvNamingConventionFlagNameEmpty(t *testing.T) {
	t.Parallel()
	n := NewNamingConvention(Prefix)
	assert.PanicsWithError(t, "flag name cannot be empty", func() {
		n.FlagToEnv("")
	})
}

func TestMap(t *testing.T) {
	t.Parallel()
	m := Empty()
	m.Set("foo", "bar")
	value, found := m.Lookup("FOO")
	assert.True(t, found)
	assert.Equal(t, "bar", value)
	_, found = m.Lookup("missing")
	assert.False(t, found)

	m.Merge(FromMap(map[string]string{"FOO": "other", "NEW": "1"}), false)
	assert.Equal(t, map[string]string{"FOO": "bar", "NEW": "1"}, m.ToMap())

	m.Merge(FromMap(map[string]string{"foo": "other"}), true)
	assert.Equal(t, map[string]string{"FOO": "other", "NEW": "1"}, m.ToMap())
}

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()
	logger := log.NewMemoryLogger()
	fs := filesystem.NewMemoryFs()

	osEnvs := Empty()
	osEnvs.Set(`FOO1`, `BAR1`)
	osEnvs.Set(`OS_ONLY`, `123`)
	require.NoError(t, fs.WriteFile(".env.local", []byte("FOO1=BAR2\nFOO2=BAR2\n")))
	require.NoError(t, fs.WriteFile(".env", []byte("FOO1=BAZ\nFOO3=BAR3\n")))

	envs := LoadDotEnv(context.Background(), logger, osEnvs, fs, []string{"."})

	assert.Equal(t, map[string]string{
		"OS_ONLY": "123",
		"FOO1":    "BAR1",
		"FOO2":    "BAR2",
		"FOO3":    "BAR3",
	}, envs.ToMap())
	assert.Equal(t, "INFO  Loaded env file \".env.local\".\nINFO  Loaded env file \".env\".\n", logger.AllMessages())
}

func TestLoadDotEnv_Invalid(t *testing.T) {
	t.Parallel()
	logger := log.NewMemoryLogger()
	fs := filesystem.NewMemoryFs()
	require.NoError(t, fs.WriteFile(".env.local", []byte("invalid")))

	envs := LoadDotEnv(context.Background(), logger, Empty(), fs, []string{"."})

	assert.Empty(t, envs.ToMap())
	assert.Contains(t, logger.WarnAndErrorMessages(), `cannot parse env file ".env.local"`)
}

func TestLoadEnvString_InvalidLine(t *testing.T) {
	t.Parallel()

	_, err := LoadEnvString("DAP_CLIENT_ID=abc\ngarbage line\n")
	require.Error(t, err)
	assert.Equal(t, `invalid line "garbage line"`, err.Error())

	envs, err := LoadEnvString("DAP_CLIENT_ID=abc\n# comment\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DAP_CLIENT_ID": "abc"}, envs.ToMap())
}

func TestLoadDotEnv_InvalidLine(t *testing.T) {
	t.Parallel()
	logger := log.NewMemoryLogger()
	fs := filesystem.NewMemoryFs()
	require.NoError(t, fs.WriteFile(".env", []byte("DAP_CLIENT_ID=abc\ngarbage line\n")))

	envs := LoadDotEnv(context.Background(), logger, Empty(), fs, []string{"."})

	assert.Empty(t, envs.ToMap())
	assert.Contains(t, logger.WarnAndErrorMessages(), `cannot parse env file ".env": invalid line "garbage line"`)
}
