package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	got, err := MigrateURL("postgres://user:pw@localhost:5432/uprala?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://user:pw@localhost:5432/uprala?sslmode=disable", got)

	got, err = MigrateURL("postgresql://localhost/uprala")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://localhost/uprala", got)

	_, err = MigrateURL("mysql://localhost/uprala")
	assert.Error(t, err)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)
}
