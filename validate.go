// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package busmatch

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrInvalidInput is matched (errors.Is) by every error rejecting a batch
// before a run starts.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

func validateResources(resources []Resource) error {
	var result error

	seen := make(map[string]bool, len(resources))
	for i := range resources {
		r := &resources[i]
		if r.ID == "" {
			result = multierror.Append(result, invalidf("resource #%d: empty name", i))
			continue
		}
		if seen[r.ID] {
			result = multierror.Append(result, invalidf("resource %q: duplicated name", r.ID))
		}
		seen[r.ID] = true
		if r.Cap < 0 {
			result = multierror.Append(result, invalidf("resource %q: negative capacity %d", r.ID, r.Cap))
		}
	}

	return result
}

// Validate checks a batch of requesters and a threshold sequence. All
// problems found are reported together.
func Validate(requesters []*Requester, thresholds []int) error {
	var result error

	seen := make(map[string]bool, len(requesters))
	for i, r := range requesters {
		if r == nil {
			result = multierror.Append(result, invalidf("requester #%d: nil", i))
			continue
		}
		if r.ID == "" {
			result = multierror.Append(result, invalidf("requester #%d: empty id", i))
		} else if seen[r.ID] {
			result = multierror.Append(result, invalidf("requester %q: duplicated id", r.ID))
		}
		seen[r.ID] = true
		if r.First == "" {
			result = multierror.Append(result, invalidf("requester %q: missing first preference", r.ID))
		}
		if r.Second == "" {
			result = multierror.Append(result, invalidf("requester %q: missing second preference", r.ID))
		}
	}

	if err := validateThresholds(thresholds); err != nil {
		result = multierror.Append(result, err)
	}

	return result
}

// validateAssignments accepts a pre-assigned requester only if its
// assignment names a registry resource and one of its labels, and the seats
// already consumed on every resource cover its pre-assigned requesters.
// That holds for requesters carried over from an earlier run on the same
// registry.
func validateAssignments(requesters []*Requester, registry *Registry) error {
	var result error

	count := make(map[string]int64)
	for _, r := range requesters {
		if r == nil || !r.Assigned() {
			continue
		}
		a := r.Assignment
		if !registry.has(a.Resource) {
			result = multierror.Append(result, invalidf("requester %q: assigned to unknown resource %q", r.ID, a.Resource))
			continue
		}
		if !contains(registry.Labels(a.Resource), a.Label) {
			result = multierror.Append(result, invalidf("requester %q: label %q not offered by resource %q", r.ID, a.Label, a.Resource))
		}
		count[a.Resource]++
	}

	registry.each(func(s *resourceState) {
		if n := count[s.ID]; n > s.Cap-s.rest {
			result = multierror.Append(result, invalidf("resource %q: %d requesters assigned but %d seats consumed", s.ID, n, s.Cap-s.rest))
		}
	})

	return result
}

func contains[T comparable](elements []T, element T) bool {
	for _, e := range elements {
		if element == e {
			return true
		}
	}
	return false
}

func validateThresholds(thresholds []int) error {
	if len(thresholds) == 0 {
		return invalidf("empty threshold sequence")
	}
	for i, t := range thresholds {
		if t < 0 || t > 100 {
			return invalidf("threshold %d out of range [0, 100]", t)
		}
		if i > 0 && t >= thresholds[i-1] {
			return invalidf("thresholds not strictly decreasing: %d after %d", t, thresholds[i-1])
		}
	}
	return nil
}
