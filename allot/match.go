// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/someonegg/busmatch"
	"github.com/someonegg/busmatch/similarity"
)

func (m *Matcher) init() {
	if len(m.Thresholds) == 0 {
		m.thresholds = DefaultThresholds
	} else {
		m.thresholds = m.Thresholds
	}

	if m.SuggestionCount == nil {
		m.sgn = DefaultSuggestionCount
	} else {
		m.sgn = *m.SuggestionCount
	}

	m.scorer = similarity.RatioScorer
	if len(m.Overrides) > 0 {
		overrides := make([]similarity.ScoreRecord, len(m.Overrides))
		for i, rec := range m.Overrides {
			rec.A, rec.B = Normalize(rec.A), Normalize(rec.B)
			overrides[i] = rec
		}
		m.scorer = similarity.NewComplexScorer(m.scorer, overrides)
	}
}

// Normalize trims and case-folds a stop name or a choice.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Match allots students to buses. Students are processed in the given order
// and buses are enumerated in the given order, which decides ties between
// equally good stops.
func (m *Matcher) Match(students []*Student, buses []*Bus) (allots []*Allotment, usage []BusUsage, summary Summary, err error) {
	m.init()

	summ := Summary{RunID: uuid.NewString()}

	for _, bus := range buses {
		if bus.Bus == NoBus {
			return nil, nil, summ, fmt.Errorf("invalid buses: name %q is reserved for unallotted students: %w",
				NoBus, busmatch.ErrInvalidInput)
		}
	}

	resources, seats := genResources(buses)
	registry, err := busmatch.NewRegistry(resources)
	if err != nil {
		return nil, nil, summ, fmt.Errorf("invalid buses: %w", err)
	}

	requesters := genRequesters(students)

	if m.Verbose {
		fmt.Printf("run: %v, students: %v, buses: %v, seats: %v, thresholds: %v\n",
			summ.RunID, len(requesters), len(resources), seats, m.thresholds)
		fmt.Println("")
	}
	summ.StudentsCount = len(requesters)
	summ.BusesCount = len(resources)
	summ.SeatsCount = seats

	unassigned, err := busmatch.RelaxingAllocator(m.scorer, m.Verbose).
		Allocate(requesters, registry, m.thresholds)
	if err != nil {
		return nil, nil, summ, fmt.Errorf("invalid students: %w", err)
	}
	if m.Verbose {
		fmt.Println()
	}

	allots = genAllots(requesters)
	if m.sgn > 0 && len(unassigned) > 0 {
		stops := allStops(resources)
		for _, a := range allots {
			if !a.Allotted() {
				a.Suggestions = suggest(stops, m.sgn, a.Choice1, a.Choice2)
			}
		}
	}

	usage = genUsage(registry)
	for _, u := range usage {
		summ.SeatsRemaining += u.Remaining
	}
	summ.Unallotted = len(unassigned)
	summ.AllottedCount = len(requesters) - len(unassigned)

	if m.Verbose && len(unassigned) > 0 {
		fmt.Println("unallotted:", strings.Join(unassigned, ", "))
		fmt.Println("")
	}

	return allots, usage, summ, nil
}

func genResources(buses []*Bus) ([]busmatch.Resource, int64) {
	var seats int64

	resources := make([]busmatch.Resource, len(buses))

	for i, bus := range buses {
		resources[i].ID = bus.Bus
		resources[i].Cap = bus.Seats
		resources[i].Info = bus
		for _, stop := range bus.Stops {
			if stop = Normalize(stop); stop != "" {
				resources[i].Labels = append(resources[i].Labels, stop)
			}
		}
		if bus.Seats > 0 {
			seats += bus.Seats
		}
	}

	return resources, seats
}

// genRequesters numbers students without an id by their 1-based position.
func genRequesters(students []*Student) []*busmatch.Requester {
	requesters := make([]*busmatch.Requester, len(students))

	for i, student := range students {
		s := *student
		if s.ID == "" {
			s.ID = strconv.Itoa(i + 1)
		}
		s.Choice1 = Normalize(s.Choice1)
		s.Choice2 = Normalize(s.Choice2)
		requesters[i] = &busmatch.Requester{
			ID:     s.ID,
			First:  s.Choice1,
			Second: s.Choice2,
			Info:   &s,
		}
	}

	return requesters
}

func genAllots(requesters []*busmatch.Requester) []*Allotment {
	allots := make([]*Allotment, len(requesters))

	for i, r := range requesters {
		allots[i] = &Allotment{Student: *r.Info.(*Student)}
		if r.Assigned() {
			allots[i].Bus = r.Assignment.Resource
			allots[i].Stop = r.Assignment.Label
		}
	}

	return allots
}

func genUsage(registry *busmatch.Registry) []BusUsage {
	ul := registry.Usage()
	usage := make([]BusUsage, len(ul))

	for i, u := range ul {
		usage[i] = BusUsage{
			Bus:        u.Resource,
			TotalSeats: u.Cap,
			Allotted:   u.Cap - u.Rest,
			Remaining:  u.Rest,
		}
	}

	return usage
}

func allStops(resources []busmatch.Resource) []string {
	var stops []string
	seen := make(map[string]bool)
	for _, r := range resources {
		for _, label := range r.Labels {
			if !seen[label] {
				seen[label] = true
				stops = append(stops, label)
			}
		}
	}
	return stops
}

// suggest returns up to n distinct stops resembling the choices, best
// matches of the first choice first.
func suggest(stops []string, n int, choices ...string) []string {
	var sl []string
	seen := make(map[string]bool)
	for _, choice := range choices {
		for _, match := range fuzzy.Find(choice, stops) {
			if len(sl) >= n {
				return sl
			}
			if !seen[match.Str] {
				seen[match.Str] = true
				sl = append(sl, match.Str)
			}
		}
	}
	return sl
}
