package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "sqlite:///./ml_registry.db", want: "./ml_registry.db?_foreign_keys=1"},
		{url: "sqlite:////var/lib/registry.db", want: "/var/lib/registry.db?_foreign_keys=1"},
		{url: "sqlite:///:memory:", want: ":memory:?_foreign_keys=1"},
		{url: "sqlite:///file:abc?mode=memory&cache=shared", want: "file:abc?mode=memory&cache=shared&_foreign_keys=1"},
	}

	for _, tc := range tests {
		current := tc
		t.Run(current.url, func(t *testing.T) {
			got, err := SQLiteDSN(current.url)
			require.NoError(t, err)
			assert.Equal(t, current.want, got)
		})
	}

	_, err := SQLiteDSN("sqlite:///")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestDialector(t *testing.T) {
	dialect, d, err := Dialector("postgres://user:pw@localhost/registry?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, dialect)
	assert.Equal(t, "postgres", d.Name())

	dialect, d, err = Dialector("sqlite:///./ml_registry.db")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, dialect)
	assert.Equal(t, "sqlite", d.Name())

	_, _, err = Dialector("mysql://localhost/registry")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}

func TestConnect_MigratesSchema(t *testing.T) {
	url := "sqlite:///file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := Connect(url, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&models.Model{}))
	assert.True(t, db.Migrator().HasTable(&models.ModelVersion{}))
	assert.True(t, db.Migrator().HasIndex(&models.ModelVersion{}, "idx_model_versions_model_version"))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
