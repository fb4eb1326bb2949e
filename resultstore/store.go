// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultstore persists experiment results so that a pipeline
// invoked twice against the same result set runs the solver only once.
//
// A result set is append-only. Once it exists it is never written to
// again; deleting it is the only way to invalidate it.
package resultstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vrpbench/vrpbench/solverfmt"
)

// ErrExists is returned by Create when the result set already exists.
var ErrExists = errors.New("result set already exists")

// An Entry is one stored experiment outcome.
type Entry struct {
	Key    solverfmt.RunKey
	Record solverfmt.Record
}

// A Store holds result sets, each named by an identifier.
type Store interface {
	// Has reports whether the result set exists.
	Has(set string) (bool, error)

	// Load returns the entries of a result set in the order they
	// were appended.
	Load(set string) ([]Entry, error)

	// Create creates a new, empty result set and returns an
	// Appender for it. It fails with ErrExists if the set exists.
	Create(set string) (Appender, error)
}

// An Appender adds entries to a result set. Each Append is durable
// once it returns, so an interrupted run leaves a loadable prefix.
type Appender interface {
	Append(e Entry) error
	Close() error
}

// Open returns the Store described by spec:
//
//	"" or "file"  CSV files, one per result set
//	"sqlite3:DSN" a SQLite database
//	"mysql:DSN"   a MySQL database
//
// tagged selects the CSV layout with a leading algorithm column, used
// when both algorithms share one result set. Database stores always
// record the algorithm.
func Open(spec string, tagged bool) (Store, error) {
	if spec == "" || spec == "file" {
		return &FileStore{Tagged: tagged}, nil
	}
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("unknown store %q", spec)
	}
	switch driver {
	case "sqlite3", "mysql":
		s, err := OpenSQL(driver, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

// Records returns the records of entries.
func Records(entries []Entry) []solverfmt.Record {
	recs := make([]solverfmt.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.Record
	}
	return recs
}
