package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/shop?sslmode=disable", "pgx5://u:p@localhost:5432/shop?sslmode=disable"},
		{"postgresql://u@db/shop", "pgx5://u@db/shop"},
		{"pgx5://u@db/shop", "pgx5://u@db/shop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MigrationDSN(tt.in))
	}
}

func TestEmbeddedMigrations_Paired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
			down := strings.TrimSuffix(e.Name(), ".up.sql") + ".down.sql"
			_, err := fs.Stat(migrationsFS, "migrations/"+down)
			assert.NoError(t, err, "missing %s", down)
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, 3, ups)
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrations_SalesRestrictProductDelete(t *testing.T) {
	body, err := fs.ReadFile(migrationsFS, "migrations/000002_create_sales.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "REFERENCES products (id) ON DELETE RESTRICT")
}
