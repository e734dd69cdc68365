package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestNew_EmptyAddrDisablesCache(t *testing.T) {
	assert.Nil(t, New("", "", 0))
}

func TestNilClientIsAlwaysEmpty(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)

	v, err := c.Bump(ctx, "ver")
	assert.NoError(t, err)
	assert.Zero(t, v)
	v, err = c.Version(ctx, "ver")
	assert.NoError(t, err)
	assert.Zero(t, v)
	assert.NoError(t, c.Close())
}

func TestSetGetWithTTL(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), data)

	mr.FastForward(2 * time.Minute)
	data, err = c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestVersionAndBump(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	v, err := c.Version(ctx, "ver")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	v, err = c.Bump(ctx, "ver")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = c.Version(ctx, "ver")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestRedisErrors(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	mr.SetError("ERR server unavailable")
	defer mr.SetError("")

	// plain reads and writes behave as a miss
	assert.NoError(t, c.Set(ctx, "k", []byte("w"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)

	// version operations report the failure
	_, err = c.Version(ctx, "ver")
	assert.Error(t, err)
	_, err = c.Bump(ctx, "ver")
	assert.Error(t, err)
}

func TestUnreachableRedisBehavesAsMiss(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	_, err = c.Version(ctx, "ver")
	assert.Error(t, err)
}
