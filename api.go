// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package busmatch assigns requesters to capacity bounded resources by
// approximate matching of their two ranked preferences against the labels
// every resource offers.
//
// Ties between equally scored candidates are broken by the global
// enumeration order: resources in the order they were given to NewRegistry,
// labels in the order they appear inside their resource. Callers that want
// reproducible results across runs must keep that order fixed.
package busmatch

import "github.com/someonegg/busmatch/similarity"

// Allocator runs a complete allocation over a batch.
type Allocator interface {
	Allocate(requesters []*Requester, registry *Registry, thresholds []int) (unassigned []string, err error)
}

// Scorer returns the similarity of two normalized strings in [0, 100].
// It must be symmetric and Score(a, a) must be 100.
type Scorer = similarity.Scorer

type Requester struct {
	ID     string
	First  string
	Second string

	// Assignment is written at most once.
	Assignment *Assignment

	Info interface{}
}

type Assignment struct {
	Resource string
	Label    string
}

func (r *Requester) Assigned() bool {
	return r.Assignment != nil
}

type Resource struct {
	ID     string
	Labels []string
	Cap    int64
	Info   interface{}
}

type Candidate struct {
	Resource string
	Label    string
	Score    int
}

type Usage struct {
	Resource string
	Cap      int64
	Rest     int64
}
