// Package testkit opens throwaway databases for tests.
package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"easy-matters/internal/core/database"
)

// SQLite returns a fresh in-memory database with foreign keys on, closed
// when the test ends. Callers migrate it.
func SQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: "file::memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
