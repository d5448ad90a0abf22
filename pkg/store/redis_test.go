package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/snip/pkg/block"
)

func openRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	p, err := NewRedis(RedisConfig{Addr: mr.Addr(), Namespace: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, mr
}

func TestRedisPersistence(t *testing.T) {
	testPersistence(t, func(t *testing.T) Persistence {
		p, _ := openRedis(t)
		return p
	})
}

func TestRedisKeyLayout(t *testing.T) {
	p, mr := openRedis(t)

	b, err := p.CreateBlock(context.Background(), block.Block{Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:blocks"))
	val := mr.HGet("test:blocks", b.ID)
	assert.Contains(t, val, `"title":"t"`)
}

func TestRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(RedisConfig{Addr: addr})
	assert.Error(t, err)
}
