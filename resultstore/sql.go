// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultstore

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"strings"
	"text/template"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vrpbench/vrpbench/solverfmt"
)

// SQLStore is a Store backed by a SQL database. It's safe for
// concurrent use by multiple goroutines.
type SQLStore struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertSet    *sql.Stmt
	insertResult *sql.Stmt
	countSet     *sql.Stmt
	selectSet    *sql.Stmt
}

var _ Store = (*SQLStore)(nil)

// OpenSQL creates a SQLStore backed by a SQL database. The parameters
// are the same as the parameters for sql.Open. Only mysql and sqlite3
// are explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*SQLStore, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	s := &SQLStore{sql: db}
	if err := s.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

var openHooks = map[string]func(*sql.DB) error{
	// Every connection to ":memory:" opens a distinct database,
	// so keep a single connection.
	"sqlite3": func(db *sql.DB) error {
		db.SetMaxOpenConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	},
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS ResultSets (
	SetID VARCHAR(255) PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS Results (
	SetID VARCHAR(255),
	Seq BIGINT,
	Algorithm VARCHAR(16),
	Instance VARCHAR(1024),
	Fields VARCHAR(1024),
	PRIMARY KEY (SetID, Seq),
	FOREIGN KEY (SetID) REFERENCES ResultSets(SetID) ON UPDATE CASCADE ON DELETE CASCADE
){{if .mysql}} ENGINE=InnoDB{{end}};
`))

// createTables creates any missing tables on the connection in
// s.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (s *SQLStore) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := s.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls s.sql.Prepare on reusable SQL statements.
func (s *SQLStore) prepareStatements() error {
	var err error
	prepare := func(q string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		stmt, err = s.sql.Prepare(q)
		return stmt
	}
	s.insertSet = prepare("INSERT INTO ResultSets(SetID) VALUES (?)")
	s.insertResult = prepare("INSERT INTO Results(SetID, Seq, Algorithm, Instance, Fields) VALUES (?, ?, ?, ?, ?)")
	s.countSet = prepare("SELECT COUNT(*) FROM ResultSets WHERE SetID = ?")
	s.selectSet = prepare("SELECT Algorithm, Instance, Fields FROM Results WHERE SetID = ? ORDER BY Seq")
	return err
}

// Has reports whether the result set has been created.
func (s *SQLStore) Has(set string) (bool, error) {
	var n int
	if err := s.countSet.QueryRow(set).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Load returns the entries of set in insertion order.
func (s *SQLStore) Load(set string) ([]Entry, error) {
	ok, err := s.Has(set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("result set %q does not exist", set)
	}
	rows, err := s.selectSet.Query(set)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var alg, instance, fields string
		if err := rows.Scan(&alg, &instance, &fields); err != nil {
			return nil, err
		}
		e, err := decodeRow(alg, instance, fields)
		if err != nil {
			return nil, fmt.Errorf("result set %q entry %d: %v", set, len(entries), err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func decodeRow(alg, instance, fields string) (Entry, error) {
	var e Entry
	a, err := solverfmt.ParseAlgorithm(alg)
	if err != nil {
		return e, err
	}
	cells, err := csv.NewReader(strings.NewReader(fields)).Read()
	if err != nil {
		return e, err
	}
	rec, err := DecodeFields(cells)
	if err != nil {
		return e, err
	}
	return Entry{Key: solverfmt.RunKey{Algorithm: a, Instance: instance}, Record: rec}, nil
}

// Create creates a new result set.
func (s *SQLStore) Create(set string) (Appender, error) {
	ok, err := s.Has(set)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, fmt.Errorf("%s: %w", set, ErrExists)
	}
	if _, err := s.insertSet.Exec(set); err != nil {
		return nil, err
	}
	return &sqlAppender{set: set, s: s}, nil
}

// sqlAppender appends to one result set.
type sqlAppender struct {
	set string
	// seq is the index of the next entry to insert.
	seq int64
	s   *SQLStore
}

// Append inserts a single entry in its own transaction.
func (a *sqlAppender) Append(e Entry) (err error) {
	tx, err := a.s.sql.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(EncodeFields(e.Record))
	w.Flush()
	fields := strings.TrimSuffix(buf.String(), "\n")
	if _, err = tx.Stmt(a.s.insertResult).Exec(a.set, a.seq, e.Key.Algorithm.String(), e.Key.Instance, fields); err != nil {
		return err
	}
	a.seq++
	return nil
}

func (a *sqlAppender) Close() error { return nil }

// Close closes the database connections, releasing any open resources.
func (s *SQLStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertSet, s.insertResult, s.countSet, s.selectSet} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return s.sql.Close()
}
