// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storetest provides databases for resultstore tests.
package storetest

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"strings"
	"testing"

	"github.com/vrpbench/vrpbench/resultstore"
)

var mysqlDSN = flag.String("mysql", "", "run SQL store tests against the MySQL server at `dsn` (user:pass@tcp(host)/) instead of in-memory SQLite")

// createEmptyMySQLDB makes a new, empty database for the test.
func createEmptyMySQLDB(t *testing.T) (dsn string, cleanup func()) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}

	name := "vrpbench_test_" + strings.NewReplacer("-", "_").Replace(base64.RawURLEncoding.EncodeToString(buf))

	prefix := *mysqlDSN
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	db, err := sql.Open("mysql", prefix)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}

	t.Logf("Using database %q", name)

	return prefix + name, func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewSQLStore makes a connection to a testing database, either
// in-memory sqlite3 or MySQL depending on the -mysql flag. The store
// is closed when the test finishes.
func NewSQLStore(t *testing.T) *resultstore.SQLStore {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	var mysqlCleanup func()
	if *mysqlDSN != "" {
		driverName = "mysql"
		dataSourceName, mysqlCleanup = createEmptyMySQLDB(t)
	}
	s, err := resultstore.OpenSQL(driverName, dataSourceName)
	if err != nil {
		if mysqlCleanup != nil {
			mysqlCleanup()
		}
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
		if mysqlCleanup != nil {
			mysqlCleanup()
		}
	})
	return s
}
