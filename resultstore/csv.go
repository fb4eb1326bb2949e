// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vrpbench/vrpbench/solverfmt"
)

// Columns returns the number of columns of a result line.
func Columns(tagged bool) int {
	if tagged {
		return int(solverfmt.NumFields) + 1
	}
	return int(solverfmt.NumFields)
}

// EncodeFields returns the fixed-position cells of rec, one per
// solverfmt.Field. Absent fields are empty cells.
func EncodeFields(rec solverfmt.Record) []string {
	cells := make([]string, solverfmt.NumFields)
	for f := solverfmt.Field(0); f < solverfmt.NumFields; f++ {
		v, ok := rec.Get(f)
		if !ok {
			continue
		}
		cells[f] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return cells
}

// DecodeFields is the inverse of EncodeFields.
func DecodeFields(cells []string) (solverfmt.Record, error) {
	var rec solverfmt.Record
	if len(cells) != int(solverfmt.NumFields) {
		return rec, fmt.Errorf("have %d fields, want %d", len(cells), solverfmt.NumFields)
	}
	for i, c := range cells {
		f := solverfmt.Field(i)
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return rec, fmt.Errorf("parsing %s: %v", f, err.(*strconv.NumError).Err)
		}
		rec.Set(f, v)
	}
	return rec, nil
}

// encodeEntry returns the cells of one result line.
func encodeEntry(e Entry, tagged bool) []string {
	cells := EncodeFields(e.Record)
	if tagged {
		cells = append([]string{e.Key.Algorithm.String()}, cells...)
	}
	return cells
}

// decodeEntry parses the cells of one result line.
func decodeEntry(cells []string, tagged bool) (Entry, error) {
	var e Entry
	if tagged {
		if len(cells) == 0 {
			return e, fmt.Errorf("missing algorithm tag")
		}
		alg, err := solverfmt.ParseAlgorithm(strings.TrimSpace(cells[0]))
		if err != nil {
			return e, err
		}
		e.Key.Algorithm = alg
		cells = cells[1:]
	}
	rec, err := DecodeFields(cells)
	if err != nil {
		return e, err
	}
	e.Record = rec
	return e, nil
}
