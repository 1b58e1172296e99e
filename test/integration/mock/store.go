// Package mock provides in-process replacements for Postgres and Redis used
// by the integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is a shared in-memory SQLite database migrated with every model.
type Store struct {
	Conn   *gorm.DB
	models map[string]any
}

var (
	storeOnce sync.Once
	store     *Store
	storeErr  error
)

// SharedStore opens the database on first use and returns the same Store on
// every later call. models is keyed by table name.
func SharedStore(models map[string]any) (*Store, error) {
	storeOnce.Do(func() {
		store, storeErr = openStore(models)
	})
	return store, storeErr
}

func openStore(models map[string]any) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	s := &Store{Conn: conn, models: models}
	if err := conn.AutoMigrate(s.all()...); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
	}
	return s, nil
}

// Reset deletes every row from every table.
func (s *Store) Reset() error {
	for _, table := range s.tables() {
		if err := s.Conn.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// Count returns the rows of table matching every column in criteria.
func (s *Store) Count(table string, criteria map[string]any) (int64, error) {
	if _, ok := s.models[table]; !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	query := s.Conn.Table(table)
	if len(criteria) > 0 {
		query = query.Where(criteria)
	}
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (s *Store) tables() []string {
	tables := make([]string, 0, len(s.models))
	for table := range s.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

func (s *Store) all() []any {
	out := make([]any, 0, len(s.models))
	for _, table := range s.tables() {
		out = append(out, s.models[table])
	}
	return out
}
