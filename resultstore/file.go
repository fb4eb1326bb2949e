// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vrpbench/vrpbench/solverfmt"
)

// A FileStore keeps each result set in its own file, named by the set
// identifier. Each line holds one record as comma-separated values in
// the fixed solverfmt.Field order:
//
//	size,distance,vehicles,avg,single,two,unused,time,memory
//
// If Tagged is set, every line starts with the algorithm name.
type FileStore struct {
	Tagged bool
}

var _ Store = (*FileStore)(nil)

// Has reports whether the file for set exists.
func (s *FileStore) Has(set string) (bool, error) {
	_, err := os.Stat(set)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads every record in the file for set. A line with the wrong
// number of columns or a non-numeric cell is a *solverfmt.SyntaxError.
func (s *FileStore) Load(set string) ([]Entry, error) {
	f, err := os.Open(set)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.read(f, set)
}

func (s *FileStore) read(r io.Reader, fileName string) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	var entries []Entry
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &solverfmt.SyntaxError{FileName: fileName, Line: pe.Line, Msg: pe.Err.Error()}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(cells) != Columns(s.Tagged) {
			msg := fmt.Sprintf("have %d columns, want %d", len(cells), Columns(s.Tagged))
			return nil, &solverfmt.SyntaxError{FileName: fileName, Line: line, Msg: msg}
		}
		e, err := decodeEntry(cells, s.Tagged)
		if err != nil {
			return nil, &solverfmt.SyntaxError{FileName: fileName, Line: line, Msg: err.Error()}
		}
		entries = append(entries, e)
	}
}

// Create creates the file for set. It never truncates an existing
// file.
func (s *FileStore) Create(set string) (Appender, error) {
	if dir := filepath.Dir(set); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(set, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%s: %w", set, ErrExists)
	} else if err != nil {
		return nil, err
	}
	return &fileAppender{f: f, tagged: s.Tagged}, nil
}

type fileAppender struct {
	f      *os.File
	tagged bool
	buf    bytes.Buffer
}

// Append writes one line and syncs it to disk.
func (a *fileAppender) Append(e Entry) error {
	a.buf.Reset()
	w := csv.NewWriter(&a.buf)
	// Writing to a buffer can't fail.
	w.Write(encodeEntry(e, a.tagged))
	w.Flush()
	if _, err := a.f.Write(a.buf.Bytes()); err != nil {
		return err
	}
	return a.f.Sync()
}

func (a *fileAppender) Close() error {
	return a.f.Close()
}
