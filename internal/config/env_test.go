package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, RegistryFake, c.RegistryMode)
	assert.Equal(t, 15*time.Second, c.BackendTimeout)
	assert.True(t, c.DeployFallback)
	assert.False(t, c.StateEncrypt)
	assert.Equal(t, "testnet", c.DefaultNetwork)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REGISTRY_MODE", "http")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("FAKE_SEED", "42")
	t.Setenv("DEFAULT_NETWORK", "mainnet")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, RegistryHTTP, c.RegistryMode)
	assert.Equal(t, 3*time.Second, c.BackendTimeout)
	assert.Equal(t, uint64(42), c.FakeSeed)
	assert.Equal(t, "mainnet", c.DefaultNetwork)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("registry mode", func(t *testing.T) {
		t.Setenv("REGISTRY_MODE", "grpc")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("network", func(t *testing.T) {
		t.Setenv("DEFAULT_NETWORK", "futurenet")
		_, err := Load()
		require.Error(t, err)
	})
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("BACKEND_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestInitMovesPassphraseOutOfConfig(t *testing.T) {
	t.Setenv("STATE_PASSPHRASE", "hunter2")
	require.NoError(t, Init())
	t.Cleanup(func() { passphraseBytes = nil })

	assert.Empty(t, Get().StatePassphrase)
	assert.True(t, HasStatePassphrase())

	p, err := GetStatePassphraseBytes()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(p))
}
