// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// InstanceExt is the file extension of instance files.
const InstanceExt = ".xml"

var sizeRE = regexp.MustCompile(`n(\d+)`)

// InstanceSize extracts the number of customers from an instance file
// name such as "A-n32-k5.xml". Only the base name is inspected.
func InstanceSize(path string) (int, bool) {
	m := sizeRE.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ListInstances returns the instance files named by path. If path is a
// directory, it returns the InstanceExt files directly inside it, sorted
// by name. Otherwise path itself is the only instance.
func ListInstances(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), InstanceExt) {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
