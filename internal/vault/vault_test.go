package vault

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(data map[string]map[string]any, calls *int) *Client {
	return &Client{
		log:   zap.NewNop().Sugar(),
		cache: make(map[string]cached),
		read: func(_ context.Context, mount, rel string) (map[string]any, error) {
			*calls++
			d, ok := data[mount+"/"+rel]
			if !ok {
				return nil, errors.New("secret not found")
			}
			return d, nil
		},
	}
}

func TestParseRef(t *testing.T) {
	t.Parallel()

	path, key, err := ParseRef("vault:secret/reqvalidator/db#password")
	require.NoError(t, err)
	assert.Equal(t, "secret/reqvalidator/db", path)
	assert.Equal(t, "password", key)

	for _, bad := range []string{
		"secret/db#password",
		"vault:secret/db",
		"vault:secret#password",
		"vault:secret/db#",
		"vault:#key",
	} {
		_, _, err := ParseRef(bad)
		assert.ErrorIs(t, err, ErrBadRef, bad)
	}
}

func TestSplitMount(t *testing.T) {
	t.Parallel()

	m, r := splitMount("secret/reqvalidator/db")
	assert.Equal(t, "secret", m)
	assert.Equal(t, "reqvalidator/db", r)

	m, r = splitMount("secret")
	assert.Equal(t, "secret", m)
	assert.Empty(t, r)
}

func TestResolve_CachesWithinTTL(t *testing.T) {
	t.Parallel()

	calls := 0
	c := newTestClient(map[string]map[string]any{
		"secret/db": {"password": "s3cret", "port": 3306},
	}, &calls)
	ctx := context.Background()

	v, err := c.Resolve(ctx, "vault:secret/db#password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)

	v, err = c.Resolve(ctx, "vault:secret/db#password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)
	assert.Equal(t, 1, calls)

	_, err = c.GetKV(ctx, "secret/db", "port", time.Minute)
	assert.ErrorContains(t, err, "not a string")

	_, err = c.GetKV(ctx, "secret/db", "user", 0)
	assert.ErrorContains(t, err, "not found")

	_, err = c.GetKV(ctx, "secret/missing", "x", 0)
	assert.ErrorContains(t, err, "vault get secret/missing")
}
