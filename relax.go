// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package busmatch

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// RelaxingAllocator returns an Allocator that runs one pass per threshold,
// each later pass restricted to the requesters still unassigned.
func RelaxingAllocator(scorer Scorer, verbose bool) Allocator {
	return fairMatcher{scorer: scorer, verbose: verbose}
}

// Run is RelaxingAllocator(scorer, false).Allocate.
func Run(scorer Scorer, requesters []*Requester, registry *Registry, thresholds []int) ([]string, error) {
	return fairMatcher{scorer: scorer}.Allocate(requesters, registry, thresholds)
}

// Allocate validates the batch, then relaxes the threshold pass by pass
// until the sequence ends or nobody is left. It returns the ids left
// unassigned, in input order.
//
// Requesters may arrive assigned only when they were assigned by an earlier
// run on the same registry; anything else is rejected as invalid input.
func (m fairMatcher) Allocate(requesters []*Requester, registry *Registry, thresholds []int) (unassigned []string, err error) {
	if verr := Validate(requesters, thresholds); verr != nil {
		err = multierror.Append(err, verr)
	}
	if aerr := validateAssignments(requesters, registry); aerr != nil {
		err = multierror.Append(err, aerr)
	}
	if err != nil {
		return nil, err
	}

	pending := requesters
	for i, threshold := range thresholds {
		if len(pending) == 0 {
			break
		}
		if m.verbose && i > 0 {
			fmt.Println("relax to", threshold, "with", len(pending), "unassigned")
		}
		m.runPass(pending, registry, threshold)
		pending = unassignedOf(pending)
	}

	return Unassigned(pending), nil
}

func unassignedOf(requesters []*Requester) []*Requester {
	var rl []*Requester
	for _, r := range requesters {
		if !r.Assigned() {
			rl = append(rl, r)
		}
	}
	return rl
}

// Unassigned returns the ids of requesters without an assignment.
func Unassigned(requesters []*Requester) []string {
	var ids []string
	for _, r := range requesters {
		if !r.Assigned() {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
