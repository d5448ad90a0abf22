package store

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	v := viper.New()
	v.Set("driver", "sqlite")
	v.Set("path", "~/boards/snip")
	v.Set("sqlite.path", "/var/lib/snip.sqlite")
	v.Set("view.path", "~/.snip.view")
	v.Set("redis.addr", "redis:6379")
	v.Set("redis.db", 2)
	v.Set("redis.namespace", "team")

	cfg, err := configFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Driver())
	assert.Equal(t, filepath.Join(home, "boards", "snip"), cfg.BasePath())
	assert.Equal(t, "/var/lib/snip.sqlite", cfg.SQLitePath())
	assert.Equal(t, filepath.Join(home, ".snip.view"), cfg.ViewPath())
	assert.Equal(t, RedisConfig{Addr: "redis:6379", DB: 2, Namespace: "team"}, cfg.Redis())
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".snip.yaml"), "driver: redis\nredis:\n  namespace: work\n")
	t.Setenv("SNIP_CONFIG_PATH", dir)
	t.Setenv("SNIP_PATH", filepath.Join(dir, "data"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Driver())
	assert.Equal(t, "work", cfg.Redis().Namespace)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis().Addr)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.BasePath())
}
