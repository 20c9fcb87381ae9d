package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoKeysRunsOpen(t *testing.T) {
	a, err := NewAPIKeyAuth(nil)
	require.NoError(t, err)

	assert.True(t, a.Open())
	assert.False(t, a.IsValidKey("anything"))
}

func TestConfiguredKeysValidate(t *testing.T) {
	a, err := NewAPIKeyAuth([]string{"alpha-key", "beta-key"})
	require.NoError(t, err)

	assert.False(t, a.Open())
	assert.True(t, a.IsValidKey("alpha-key"))
	assert.True(t, a.IsValidKey("beta-key"))
	assert.False(t, a.IsValidKey("gamma-key"))
	assert.False(t, a.IsValidKey(""))
}

func TestAddKey(t *testing.T) {
	a, err := NewAPIKeyAuth(nil)
	require.NoError(t, err)

	require.NoError(t, a.AddKey("late-key"))
	assert.False(t, a.Open())
	assert.True(t, a.IsValidKey("late-key"))
}
