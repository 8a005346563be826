package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RunsMigrations(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = db.Exec("INSERT INTO auth_events (kind) VALUES ('token_valid')")
	assert.NoError(t, err)

	// Running again applies nothing new
	require.NoError(t, RunMigrations(db))
	err = db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadMigrations_SortedByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_second.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_first.sql":  {Data: []byte("SELECT 1;")},
		"migrations/readme.txt":     {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001_first", migrations[0].Version)
	assert.Equal(t, "002_second.sql", migrations[1].Filename)
}

func TestLoadMigrations_Empty(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{})
	assert.Error(t, err)
}
