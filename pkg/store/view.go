package store

import (
	"errors"

	"github.com/peterbourgon/diskv/v3"
)

// LoadViewStore opens the flat diskv directory that holds view state.
func LoadViewStore(cfg Config) (*diskv.Diskv, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if cfg.ViewPath() == "" {
		return nil, errors.New("store: view path required")
	}
	return diskv.New(diskv.Options{
		BasePath:     cfg.ViewPath(),
		CacheSizeMax: 64 * 1024,
	}), nil
}
