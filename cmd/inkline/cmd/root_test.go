package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/inkline/internal/config"
)

func TestResolveConfig_Defaults(t *testing.T) {
	loader := config.NewIsolatedLoader()
	_, err := loader.Load()
	require.NoError(t, err)

	cfg, err := resolveConfig(loader)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestResolveConfig_ValidatesInjectedValues(t *testing.T) {
	loader := config.NewIsolatedLoader()
	_, err := loader.Load()
	require.NoError(t, err)

	loader.Set("log_level", "loud")
	_, err = resolveConfig(loader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	loader.Set("log_level", "debug")
	loader.Set("output.format", "xml")
	_, err = resolveConfig(loader)
	require.Error(t, err)

	loader.Set("output.format", "json")
	cfg, err := resolveConfig(loader)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Output.Format)
}
