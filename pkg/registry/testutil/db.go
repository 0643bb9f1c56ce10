package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ml-registry/model-registry/pkg/registry/database"
	"gorm.io/gorm"
)

// NewTestDB opens a private, migrated in-memory SQLite database that is
// closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	url := "sqlite:///file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Connect(url, database.Options{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
