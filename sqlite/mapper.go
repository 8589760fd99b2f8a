package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Options configures the table layout of the interactor.
type Options struct {
	// TablePrefix is prepended to every collection name.
	TablePrefix string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{TablePrefix: "portal_"}
}

// quoteIdentifier safely quotes an identifier such as a table name.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// tableName returns the unquoted table name of a collection.
func (s *SQLiteInteractor) tableName(collection string) string {
	return s.options.TablePrefix + collection
}

// ensureTable creates the collection table on first use.
func (s *SQLiteInteractor) ensureTable(ctx context.Context, collection string) (*statements, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stmts, ok := s.tables[collection]; ok {
		return stmts, nil
	}

	stmts := newStatements(quoteIdentifier(s.tableName(collection)))
	if _, err := s.db.ExecContext(ctx, stmts.createTable); err != nil {
		return nil, fmt.Errorf("failed to create table for collection %s: %w", collection, err)
	}
	s.tables[collection] = stmts
	s.logger.Debug("Ensured collection table", zap.String("collection", collection), zap.String("table", s.tableName(collection)))
	return stmts, nil
}

// CollectionExists checks if a collection table exists in the database.
func (s *SQLiteInteractor) CollectionExists(ctx context.Context, collection string) (bool, error) {
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name = ?;"

	var name string
	err := s.db.QueryRowContext(ctx, query, s.tableName(collection)).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DropCollection drops a collection table if it exists.
func (s *SQLiteInteractor) DropCollection(ctx context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := quoteIdentifier(s.tableName(collection))
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	delete(s.tables, collection)
	return nil
}
