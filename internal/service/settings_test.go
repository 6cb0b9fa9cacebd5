package service_test

import (
	"testing"

	"cuadrante-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	env := newTestEnv(t)

	mode, minutes, err := env.settings.FallbackConfig()
	require.NoError(t, err)
	assert.Equal(t, models.FallbackModeZero, mode)
	assert.Equal(t, models.DefaultFallbackMinutes, minutes)

	effective, err := env.settings.FallbackMinutes()
	require.NoError(t, err)
	assert.Equal(t, 0, effective)
}

func TestSettings_ContractMode(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.settings.SetFallbackConfig(models.FallbackModeContract, 450))

	mode, minutes, err := env.settings.FallbackConfig()
	require.NoError(t, err)
	assert.Equal(t, models.FallbackModeContract, mode)
	assert.Equal(t, 450, minutes)

	effective, err := env.settings.FallbackMinutes()
	require.NoError(t, err)
	assert.Equal(t, 450, effective)
}

func TestSettings_RejectsInvalidConfig(t *testing.T) {
	env := newTestEnv(t)

	assert.Error(t, env.settings.SetFallbackConfig("bogus", 480))
	assert.Error(t, env.settings.SetFallbackConfig(models.FallbackModeContract, -10))
}

func TestSettings_UpdateOverwrites(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.settings.SetFallbackConfig(models.FallbackModeContract, 480))
	require.NoError(t, env.settings.SetFallbackConfig(models.FallbackModeZero, 0))

	mode, _, err := env.settings.FallbackConfig()
	require.NoError(t, err)
	assert.Equal(t, models.FallbackModeZero, mode)
}
