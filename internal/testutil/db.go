// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"github.com/harborline/caseflow-api/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an isolated in-memory database with the full schema
// migrated. Each call returns a fresh database, so tests never share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate schema")

	return db
}
