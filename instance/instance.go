// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instance reads the parts of a VRP instance file needed to
// draw solver routes: the depot, the customers and their coordinates.
package instance

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// A Kind distinguishes the depot from customers.
type Kind int

const (
	Depot Kind = iota
	Customer
)

func (k Kind) String() string {
	if k == Depot {
		return "depot"
	}
	return "customer"
}

// A Node is one location of an instance.
type Node struct {
	Kind Kind
	ID   int
	X, Y float64
}

// An Instance is the set of nodes of one problem instance.
type Instance struct {
	Name      string
	Depot     Node
	Customers []Node

	// Capacity is the capacity of the first vehicle profile, or 0
	// if the instance declares none.
	Capacity float64

	byID map[int]int
}

type xmlInstance struct {
	Name  string    `xml:"info>name"`
	Nodes []xmlNode `xml:"network>nodes>node"`
	Fleet []struct {
		Capacity float64 `xml:"capacity"`
	} `xml:"fleet>vehicle_profile"`
}

type xmlNode struct {
	ID   int     `xml:"id,attr"`
	Type int     `xml:"type,attr"`
	X    float64 `xml:"cx"`
	Y    float64 `xml:"cy"`
}

// ErrNoDepot is returned when an instance has no node of type 0.
var ErrNoDepot = errors.New("instance has no depot")

// Load reads the instance file at path.
func Load(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// Read decodes an instance from r.
func Read(r io.Reader) (*Instance, error) {
	var doc xmlInstance
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	inst := &Instance{Name: doc.Name, byID: make(map[int]int)}
	if len(doc.Fleet) > 0 {
		inst.Capacity = doc.Fleet[0].Capacity
	}
	depot := false
	for _, n := range doc.Nodes {
		if n.Type == 0 {
			inst.Depot = Node{Kind: Depot, ID: n.ID, X: n.X, Y: n.Y}
			depot = true
			continue
		}
		if _, dup := inst.byID[n.ID]; dup {
			return nil, fmt.Errorf("duplicate customer id %d", n.ID)
		}
		inst.byID[n.ID] = len(inst.Customers)
		inst.Customers = append(inst.Customers, Node{Kind: Customer, ID: n.ID, X: n.X, Y: n.Y})
	}
	if !depot {
		return nil, ErrNoDepot
	}
	return inst, nil
}

// Customer returns the customer with the given ID.
func (inst *Instance) Customer(id int) (Node, bool) {
	i, ok := inst.byID[id]
	if !ok {
		return Node{}, false
	}
	return inst.Customers[i], true
}

// Positions returns the coordinates visited by route, a list of
// customer IDs. The depot starts and ends the path.
func (inst *Instance) Positions(route []int) (xs, ys []float64, err error) {
	xs = append(xs, inst.Depot.X)
	ys = append(ys, inst.Depot.Y)
	for _, id := range route {
		c, ok := inst.Customer(id)
		if !ok {
			return nil, nil, fmt.Errorf("route visits unknown customer %d", id)
		}
		xs = append(xs, c.X)
		ys = append(ys, c.Y)
	}
	xs = append(xs, inst.Depot.X)
	ys = append(ys, inst.Depot.Y)
	return xs, ys, nil
}
