// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package allot

import "strings"

// NoBus stands for "unallotted" wherever a bus name is expected. Matcher
// rejects a bus carrying this name.
const NoBus = "None"

// Filter selects allotments. Empty fields select everything, non-empty
// fields must all hold.
type Filter struct {
	Years       []int
	Departments []string
	// NoBus selects the unallotted students.
	Buses []string
	// Case-insensitive substring of the allotted stop.
	StopContains   string
	UnallottedOnly bool
}

func (f Filter) Apply(allots []*Allotment) []*Allotment {
	var result []*Allotment
	for _, a := range allots {
		if f.match(a) {
			result = append(result, a)
		}
	}
	return result
}

func (f Filter) match(a *Allotment) bool {
	if len(f.Years) > 0 && !contains(f.Years, a.Year) {
		return false
	}
	if len(f.Departments) > 0 && !contains(f.Departments, a.Department) {
		return false
	}
	if len(f.Buses) > 0 && !contains(f.Buses, BusName(a)) {
		return false
	}
	if f.StopContains != "" && !strings.Contains(a.Stop, Normalize(f.StopContains)) {
		return false
	}
	if f.UnallottedOnly && a.Allotted() {
		return false
	}
	return true
}

// BusName returns the allotted bus or NoBus.
func BusName(a *Allotment) string {
	if a.Allotted() {
		return a.Bus
	}
	return NoBus
}

// StopName returns the allotted stop or NoBus.
func StopName(a *Allotment) string {
	if a.Allotted() {
		return a.Stop
	}
	return NoBus
}

func contains[T comparable](elements []T, element T) bool {
	for _, e := range elements {
		if element == e {
			return true
		}
	}
	return false
}
