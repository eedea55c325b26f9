package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HOSEI_DB", "HOSEI_FORMAT", "HOSEI_VERBOSE", "HOSEI_TOP"} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HOSEI_DB", "/tmp/hosei.db")
	t.Setenv("HOSEI_FORMAT", "json")
	t.Setenv("HOSEI_VERBOSE", "true")
	t.Setenv("HOSEI_TOP", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Database: "/tmp/hosei.db",
		Format:   "json",
		Verbose:  true,
		Top:      3,
	}, cfg)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("HOSEI_TOP", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "") // registers restore on cleanup
	require.NoError(t, os.Unsetenv(key))
}
