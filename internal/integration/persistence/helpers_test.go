package persistence

import (
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/epiwatch/backend/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory SQLite database with every model migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	models := make([]any, 0)
	for _, m := range model.All() {
		models = append(models, m)
	}
	require.NoError(t, db.AutoMigrate(models...))
	return db
}
