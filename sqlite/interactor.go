// Package sqlite stores portal documents in SQLite. Each collection is a table
// of JSON documents keyed by id and kept in insertion order.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/asaidimu/go-portal/core/persistence"
	"github.com/asaidimu/go-portal/core/schema"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteInteractor implements persistence.DatabaseInteractor over a SQLite
// database. Tables are created on first use.
type SQLiteInteractor struct {
	db      *sql.DB
	logger  *zap.Logger
	options *Options
	mu      sync.Mutex
	tables  map[string]*statements
}

// Ensure SQLiteInteractor implements the persistence.DatabaseInteractor interface.
var _ persistence.DatabaseInteractor = (*SQLiteInteractor)(nil)

// NewSQLiteInteractor creates an interactor over an open database.
func NewSQLiteInteractor(db *sql.DB, logger *zap.Logger, options *Options) *SQLiteInteractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options == nil {
		options = DefaultOptions()
	}
	return &SQLiteInteractor{
		db:      db,
		logger:  logger,
		options: options,
		tables:  make(map[string]*statements),
	}
}

// Open opens the database at dsn with the sqlite3 driver. An in-memory
// database is limited to one connection, since each connection would
// otherwise see its own empty database.
func Open(dsn string, logger *zap.Logger, options *Options) (*SQLiteInteractor, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	return NewSQLiteInteractor(db, logger, options), nil
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Insert stores doc. An id already stored fails with persistence.ErrDuplicateID.
func (i *SQLiteInteractor) Insert(ctx context.Context, collection string, doc schema.Document) error {
	id := doc.RecordID()
	if id == "" {
		return fmt.Errorf("insert into %s: document has no id", collection)
	}
	stmts, err := i.ensureTable(ctx, collection)
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", id, err)
	}

	i.logger.Debug("Executing SQL INSERT", zap.String("sql", stmts.insert), zap.String("id", id))
	if _, err := i.db.ExecContext(ctx, stmts.insert, id, string(data)); err != nil {
		if isPrimaryKeyConflict(err) {
			return fmt.Errorf("insert %s into %s: %w", id, collection, persistence.ErrDuplicateID)
		}
		i.logger.Error("Failed to execute INSERT query", zap.Error(err), zap.String("sql", stmts.insert))
		return fmt.Errorf("failed to execute INSERT query: %w", err)
	}
	return nil
}

// Get returns the document stored under id.
func (i *SQLiteInteractor) Get(ctx context.Context, collection, id string) (schema.Document, error) {
	stmts, err := i.ensureTable(ctx, collection)
	if err != nil {
		return nil, err
	}

	var data string
	err = i.db.QueryRowContext(ctx, stmts.get, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s from %s: %w", id, collection, persistence.ErrNotFound)
	}
	if err != nil {
		i.logger.Error("Failed to execute SELECT query", zap.Error(err), zap.String("sql", stmts.get))
		return nil, fmt.Errorf("failed to execute SELECT query: %w", err)
	}
	return decodeDocument(data)
}

// List returns the documents of a collection in insertion order.
func (i *SQLiteInteractor) List(ctx context.Context, collection string) ([]schema.Document, error) {
	stmts, err := i.ensureTable(ctx, collection)
	if err != nil {
		return nil, err
	}

	i.logger.Debug("Executing SQL SELECT", zap.String("sql", stmts.list))
	rows, err := i.db.QueryContext(ctx, stmts.list)
	if err != nil {
		i.logger.Error("Failed to execute SELECT query", zap.Error(err), zap.String("sql", stmts.list))
		return nil, fmt.Errorf("failed to execute SELECT query: %w", err)
	}
	defer rows.Close()
	return readRows(rows)
}

// Update replaces the document stored under doc's id.
func (i *SQLiteInteractor) Update(ctx context.Context, collection string, doc schema.Document) error {
	id := doc.RecordID()
	stmts, err := i.ensureTable(ctx, collection)
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", id, err)
	}

	i.logger.Debug("Executing SQL UPDATE", zap.String("sql", stmts.update), zap.String("id", id))
	result, err := i.db.ExecContext(ctx, stmts.update, string(data), id)
	if err != nil {
		i.logger.Error("Failed to execute UPDATE query", zap.Error(err), zap.String("sql", stmts.update))
		return fmt.Errorf("failed to execute UPDATE query: %w", err)
	}
	return expectOneRow(result, fmt.Sprintf("update %s in %s", id, collection))
}

// Delete removes the document stored under id.
func (i *SQLiteInteractor) Delete(ctx context.Context, collection, id string) error {
	stmts, err := i.ensureTable(ctx, collection)
	if err != nil {
		return err
	}

	i.logger.Debug("Executing SQL DELETE", zap.String("sql", stmts.delete), zap.String("id", id))
	result, err := i.db.ExecContext(ctx, stmts.delete, id)
	if err != nil {
		i.logger.Error("Failed to execute DELETE query", zap.Error(err), zap.String("sql", stmts.delete))
		return fmt.Errorf("failed to execute DELETE query: %w", err)
	}
	return expectOneRow(result, fmt.Sprintf("delete %s from %s", id, collection))
}

// Close closes the database.
func (i *SQLiteInteractor) Close() error {
	return i.db.Close()
}

func expectOneRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, persistence.ErrNotFound)
	}
	return nil
}

func isPrimaryKeyConflict(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// readRows decodes every data column of rows.
func readRows(rows *sql.Rows) ([]schema.Document, error) {
	results := make([]schema.Document, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		doc, err := decodeDocument(data)
		if err != nil {
			return nil, err
		}
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return results, nil
}

func decodeDocument(data string) (schema.Document, error) {
	var doc schema.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}
	return doc, nil
}
