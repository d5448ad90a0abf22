package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config selects and locates the persistence backend.
type Config interface {
	Driver() string
	BasePath() string
	SQLitePath() string
	Redis() RedisConfig
	ViewPath() string
}

// RedisConfig locates a redis server and the key namespace used on it.
type RedisConfig struct {
	Addr      string `json:"addr"`
	Password  string `json:"-"`
	DB        int    `json:"db"`
	Namespace string `json:"namespace"`
}

// LoadConfig reads .snip.yaml from $SNIP_CONFIG_PATH, the working directory or
// $HOME. Every key can be overridden with a SNIP_ environment variable.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("driver", DriverDiskv)
	v.SetDefault("path", "~/.snip.db")
	v.SetDefault("sqlite.path", "~/.snip.sqlite")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.namespace", "snip")
	v.SetDefault("view.path", "~/.snip.view")

	v.SetConfigName(".snip") // .yaml is implicit
	v.SetEnvPrefix("SNIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("SNIP_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return configFrom(v)
}

func configFrom(v *viper.Viper) (*FileConfig, error) {
	cfg := &FileConfig{
		DriverName: v.GetString("driver"),
		RedisConf: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			Namespace: v.GetString("redis.namespace"),
		},
	}
	var err error
	if cfg.Path, err = homedir.Expand(v.GetString("path")); err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	if cfg.SQLite, err = homedir.Expand(v.GetString("sqlite.path")); err != nil {
		return nil, fmt.Errorf("store: expand sqlite.path: %w", err)
	}
	if cfg.View, err = homedir.Expand(v.GetString("view.path")); err != nil {
		return nil, fmt.Errorf("store: expand view.path: %w", err)
	}
	return cfg, nil
}

// FileConfig is the Config read from .snip.yaml. Tests build it directly.
type FileConfig struct {
	DriverName string      `json:"driver"`
	Path       string      `json:"path"`
	SQLite     string      `json:"sqlite_path,omitempty"`
	RedisConf  RedisConfig `json:"redis"`
	View       string      `json:"view_path"`
}

func (f *FileConfig) Driver() string     { return f.DriverName }
func (f *FileConfig) BasePath() string   { return f.Path }
func (f *FileConfig) SQLitePath() string { return f.SQLite }
func (f *FileConfig) Redis() RedisConfig { return f.RedisConf }
func (f *FileConfig) ViewPath() string   { return f.View }
