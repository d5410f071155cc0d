package sql

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationsAppliedOnce(t *testing.T) {
	db := InMemory()

	version, err := Version(db)
	require.NoError(t, err)

	migrations, err := embeddedMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	require.Equal(t, migrations[len(migrations)-1].order, version)

	before, after, err := migrate(db)
	require.NoError(t, err)
	require.Equal(t, version, before)
	require.Equal(t, version, after)
}

func TestMigrationsDisabled(t *testing.T) {
	db := InMemory(WithMigrationsDisabled())
	version, err := Version(db)
	require.NoError(t, err)
	require.Zero(t, version)
}

func TestVersionTooNew(t *testing.T) {
	uri := testURI(t)
	db, err := Open(uri)
	require.NoError(t, err)
	_, err = db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", 1000), nil, nil)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(uri)
	require.ErrorIs(t, err, ErrTooNew)
}
