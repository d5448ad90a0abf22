package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLitePersistence(t *testing.T) {
	testPersistence(t, func(t *testing.T) Persistence {
		p, err := NewSQLite(filepath.Join(t.TempDir(), "snip.sqlite"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = p.Close() })
		return p
	})
}
