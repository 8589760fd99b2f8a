package sqlite

import "fmt"

// statements holds the SQL of one collection table. Every table has the same
// shape: the document id, an insertion sequence and the JSON document.
type statements struct {
	createTable string
	insert      string
	get         string
	list        string
	update      string
	delete      string
}

func newStatements(table string) *statements {
	return &statements{
		createTable: fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, seq INTEGER NOT NULL, data TEXT NOT NULL);", table),
		insert: fmt.Sprintf(
			"INSERT INTO %[1]s (id, seq, data) VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM %[1]s), ?);", table),
		get:    fmt.Sprintf("SELECT data FROM %s WHERE id = ?;", table),
		list:   fmt.Sprintf("SELECT data FROM %s ORDER BY seq;", table),
		update: fmt.Sprintf("UPDATE %s SET data = ? WHERE id = ?;", table),
		delete: fmt.Sprintf("DELETE FROM %s WHERE id = ?;", table),
	}
}
