package db

import (
	"testing"
	"time"

	"uprala/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	t.Run("applies pool settings", func(t *testing.T) {
		cfg, err := PoolConfig(&types.Config{
			DatabaseURL:       "postgres://user:pw@localhost:5432/uprala?sslmode=disable",
			DBMaxConns:        20,
			DBMinConns:        2,
			DBConnLifetimeMin: 30,
			DBConnIdleMin:     5,
		})
		require.NoError(t, err)

		assert.Equal(t, Schema, cfg.ConnConfig.RuntimeParams["search_path"])
		assert.EqualValues(t, 20, cfg.MaxConns)
		assert.EqualValues(t, 2, cfg.MinConns)
		assert.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
		assert.Equal(t, 3*time.Minute, cfg.MaxConnLifetimeJitter)
		assert.Equal(t, 5*time.Minute, cfg.MaxConnIdleTime)
	})

	t.Run("keeps defaults and explicit search_path", func(t *testing.T) {
		defaults, err := PoolConfig(&types.Config{DatabaseURL: "postgres://localhost/uprala"})
		require.NoError(t, err)

		cfg, err := PoolConfig(&types.Config{
			DatabaseURL: "postgres://localhost/uprala?search_path=public",
			DBMinConns:  500,
		})
		require.NoError(t, err)

		assert.Equal(t, "public", cfg.ConnConfig.RuntimeParams["search_path"])
		assert.Equal(t, defaults.MaxConns, cfg.MaxConns)
		assert.Equal(t, defaults.MinConns, cfg.MinConns)
		assert.Equal(t, defaults.MaxConnLifetime, cfg.MaxConnLifetime)
	})

	t.Run("rejects missing or bad url", func(t *testing.T) {
		_, err := PoolConfig(&types.Config{})
		assert.Error(t, err)

		_, err = PoolConfig(&types.Config{DatabaseURL: "postgres://localhost:notaport/uprala"})
		assert.Error(t, err)
	})
}
