// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solverfmt parses the text printed by the vehicle-routing
// solver into metric records and route sets.
//
// The solver prints two kinds of lines on standard output. Route lines
// begin with '#' and list the customers of one route:
//
//	#1 4 2 7
//
// Every other line is a metric line: a label, a value and an optional
// unit. The first character of the label selects the metric:
//
//	Overall distances 1523.4
//	Vehicles 7
//	Average number of customers 4
//	Number of routes linking only one customer 1
//	Number of routes linking only two customers 2
//	Unused capacity 35
//	Time of the algorithm 1211 microseconds
//
// Lines with an unknown tag are ignored.
package solverfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A SyntaxError represents a malformed line of solver output. Syntax
// errors are never fatal; the affected line is skipped.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// Output is everything parsed from one solver run.
type Output struct {
	Record Record
	Routes Routes

	// Errors lists the lines that were recognized but could not
	// be parsed.
	Errors []*SyntaxError
}

// RouteMarker is the first byte of every route line.
const RouteMarker = '#'

// metricTags maps the leading character of a metric line to the
// field it reports. The label is passed so that tags shared by
// several lines can tell them apart.
var metricTags = map[byte]func(label string) (Field, bool){
	'O': is(TotalDistance),
	'V': is(VehicleCount),
	'A': is(AvgCustomersPerRoute),
	'N': routeShape,
	'U': is(UnusedCapacity),
	'T': is(ElapsedTime),
}

func is(f Field) func(string) (Field, bool) {
	return func(string) (Field, bool) { return f, true }
}

// routeShape distinguishes the two "Number of routes linking only ..."
// lines, which share the 'N' tag.
func routeShape(label string) (Field, bool) {
	for _, w := range strings.Fields(strings.ToLower(label)) {
		switch w {
		case "one", "1":
			return SingleCustomerRoutes, true
		case "two", "2":
			return TwoCustomerRoutes, true
		}
	}
	return 0, false
}

// A Reader reads solver output.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
}

// NewReader constructs a reader to parse solver output from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<20)
	return &Reader{s: s, fileName: fileName}
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// Read consumes the remaining input and returns what it parsed. The
// error is non-nil only for I/O errors.
func (r *Reader) Read() (*Output, error) {
	out := new(Output)
	for r.s.Scan() {
		r.line++
		line := bytes.TrimSpace(r.s.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == RouteMarker {
			route, err := r.parseRoute(line)
			if err != nil {
				out.Errors = append(out.Errors, err)
				continue
			}
			out.Routes = append(out.Routes, route)
			continue
		}
		if err := r.parseMetric(line, &out.Record); err != nil {
			out.Errors = append(out.Errors, err)
		}
	}
	if err := r.s.Err(); err != nil {
		return out, fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return out, nil
}

// parseRoute parses a route line. The first field is the route
// number and is dropped.
func (r *Reader) parseRoute(line []byte) ([]int, *SyntaxError) {
	fields := strings.Fields(string(line))
	route := make([]int, 0, len(fields)-1)
	for _, f := range fields[1:] {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, r.newSyntaxError(fmt.Sprintf("parsing customer id %q: %v", f, err.(*strconv.NumError).Err))
		}
		route = append(route, id)
	}
	return route, nil
}

// parseMetric parses a metric line into rec. Lines with unknown tags
// are ignored.
func (r *Reader) parseMetric(line []byte, rec *Record) *SyntaxError {
	field, ok := metricTags[line[0]]
	if !ok {
		return nil
	}
	label, val, ok := MetricValue(string(line))
	if !ok {
		return r.newSyntaxError("missing measurement")
	}
	f, ok := field(label)
	if !ok {
		return nil
	}
	rec.Set(f, val)
	return nil
}

// MetricValue splits a metric line into its label and value. The value
// is the last field if it is numeric; otherwise the last field is a
// unit and the value is the field before it.
func MetricValue(line string) (label string, val float64, ok bool) {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0 && i >= len(fields)-2; i-- {
		if v, err := atof(fields[i]); err == nil {
			return strings.Join(fields[:i], " "), v, true
		}
	}
	return line, 0, false
}

// atof parses x, trying the common integer case first.
func atof(x string) (float64, error) {
	if n, err := strconv.ParseInt(x, 10, 64); err == nil {
		return float64(n), nil
	}
	return strconv.ParseFloat(x, 64)
}

// Parse parses a complete solver output.
func Parse(stdout []byte, fileName string) *Output {
	// Reading from memory can't fail.
	out, _ := NewReader(bytes.NewReader(stdout), fileName).Read()
	return out
}

// ParseRecord returns the metric view of a solver output.
func ParseRecord(stdout []byte) Record {
	return Parse(stdout, "").Record
}

// ParseRoutes returns the route view of a solver output.
func ParseRoutes(stdout []byte) Routes {
	return Parse(stdout, "").Routes
}
