package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStoreRoundTrip(t *testing.T) {
	keyring.MockInit()

	store := NewStore("https://api.github.com", "octocat")

	assert.Equal(t, "ghusk:https://api.github.com", store.Service())

	_, err := store.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = store.Set("sekrit")
	require.NoError(t, err)

	secret, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "sekrit", secret)

	err = store.Delete()
	require.NoError(t, err)

	_, err = store.Get()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteMissingToken(t *testing.T) {
	keyring.MockInit()

	store := NewStore("https://api.github.com", "nobody")

	err := store.Delete()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStoresAreScopedByEndpoint(t *testing.T) {
	keyring.MockInit()

	public := NewStore("https://api.github.com", "octocat")
	enterprise := NewStore("https://github.example.com/api/v3", "octocat")

	require.NoError(t, public.Set("public-token"))
	require.NoError(t, enterprise.Set("enterprise-token"))

	secret, err := public.Get()
	require.NoError(t, err)
	assert.Equal(t, "public-token", secret)

	secret, err = enterprise.Get()
	require.NoError(t, err)
	assert.Equal(t, "enterprise-token", secret)
}
