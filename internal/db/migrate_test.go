package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pg-connect/migrations"
)

func TestReadMigrationsOrdersAndSkips(t *testing.T) {
	files := fstest.MapFS{
		"0002_indexes.sql":     {Data: []byte("CREATE INDEX a ON t (b);\n")},
		"0001_init.sql":        {Data: []byte("\n  CREATE TABLE t (b TEXT);  \n")},
		"0003_empty.sql":       {Data: []byte("  \n")},
		"README.md":            {Data: []byte("not a migration")},
		"nested/0000_skip.sql": {Data: []byte("DROP TABLE t;")},
	}

	got, err := readMigrations(files)
	require.NoError(t, err)
	assert.Equal(t, []migrationFile{
		{Name: "0001_init.sql", SQL: "CREATE TABLE t (b TEXT);"},
		{Name: "0002_indexes.sql", SQL: "CREATE INDEX a ON t (b);"},
	}, got)
}

func TestEmbeddedMigrationsCreateStateSlots(t *testing.T) {
	got, err := readMigrations(migrations.Files)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	assert.Equal(t, "0001_state_slots.sql", got[0].Name)
	assert.Contains(t, got[0].SQL, "CREATE TABLE IF NOT EXISTS state_slots")
	assert.Contains(t, got[0].SQL, "payload JSONB NOT NULL")
}
