// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package busmatch

import (
	"fmt"
	"sort"
)

type fairMatcher struct {
	scorer  Scorer
	verbose bool
}

// FindCandidates returns every (resource, label) pair whose label scores at
// least threshold against preference, best first. Equal scores keep the
// enumeration order. One resource may appear once per matching label.
func FindCandidates(scorer Scorer, registry *Registry, preference string, threshold int) []Candidate {
	return fairMatcher{scorer: scorer}.candidates(registry, preference, threshold)
}

// Classify splits requesters into those with exactly one feasible resource
// and all others, keeping the input order inside each bucket.
func Classify(scorer Scorer, requesters []*Requester, registry *Registry, threshold int) (constrained, flexible []*Requester) {
	return fairMatcher{scorer: scorer}.classify(requesters, registry, threshold)
}

// AttemptSeat seats r on the best candidate of its first preference that
// still has a seat, falling back to its second preference. An already
// assigned requester is left untouched and false is returned.
func AttemptSeat(scorer Scorer, r *Requester, registry *Registry, threshold int) bool {
	return fairMatcher{scorer: scorer}.attemptSeat(r, registry, threshold)
}

// RunPass runs one allocation pass: constrained requesters first, then the
// flexible ones. Assigned requesters are skipped.
func RunPass(scorer Scorer, requesters []*Requester, registry *Registry, threshold int) {
	fairMatcher{scorer: scorer}.runPass(requesters, registry, threshold)
}

func (m fairMatcher) candidates(registry *Registry, preference string, threshold int) []Candidate {
	var cl []Candidate

	registry.each(func(s *resourceState) {
		for _, label := range s.Labels {
			score := m.scorer.Score(preference, label)
			if score >= threshold {
				cl = append(cl, Candidate{Resource: s.ID, Label: label, Score: score})
			}
		}
	})

	sort.SliceStable(cl, func(i, j int) bool {
		return cl[i].Score > cl[j].Score
	})

	return cl
}

func (m fairMatcher) feasible(r *Requester, registry *Registry, threshold int) int {
	resources := make(map[string]struct{})
	for _, c := range m.candidates(registry, r.First, threshold) {
		resources[c.Resource] = struct{}{}
	}
	for _, c := range m.candidates(registry, r.Second, threshold) {
		resources[c.Resource] = struct{}{}
	}
	return len(resources)
}

func (m fairMatcher) classify(requesters []*Requester, registry *Registry, threshold int) (constrained, flexible []*Requester) {
	for _, r := range requesters {
		if m.feasible(r, registry, threshold) == 1 {
			constrained = append(constrained, r)
		} else {
			flexible = append(flexible, r)
		}
	}
	return
}

func (m fairMatcher) attemptSeat(r *Requester, registry *Registry, threshold int) bool {
	if r.Assigned() {
		return false
	}

	for _, preference := range [2]string{r.First, r.Second} {
		for _, c := range m.candidates(registry, preference, threshold) {
			if !registry.TryConsumeSeat(c.Resource) {
				continue
			}
			r.Assignment = &Assignment{Resource: c.Resource, Label: c.Label}
			if m.verbose {
				fmt.Println("  ", r.ID, "->", c.Resource, "stop:", c.Label, "score:", c.Score,
					"rest:", registry.Remaining(c.Resource))
			}
			return true
		}
	}

	if m.verbose {
		fmt.Println("  ", r.ID, "unassigned", "first:", r.First, "second:", r.Second)
	}
	return false
}

func (m fairMatcher) runPass(requesters []*Requester, registry *Registry, threshold int) {
	pending := make([]*Requester, 0, len(requesters))
	for _, r := range requesters {
		if !r.Assigned() {
			pending = append(pending, r)
		}
	}

	constrained, flexible := m.classify(pending, registry, threshold)

	if m.verbose {
		fmt.Println("threshold:", threshold, "pending:", len(pending),
			"constrained:", len(constrained), "flexible:", len(flexible))
	}

	for _, r := range constrained {
		m.attemptSeat(r, registry, threshold)
	}
	for _, r := range flexible {
		m.attemptSeat(r, registry, threshold)
	}
}
