// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package allot uses busmatch to allot students to buses.
package allot

import "github.com/someonegg/busmatch/similarity"

type Student struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Department string `json:"department"`
	Choice1    string `json:"choice1"`
	Choice2    string `json:"choice2"`
}

type Bus struct {
	Bus   string   `json:"bus"`
	Stops []string `json:"stops"`
	Seats int64    `json:"seats"`
}

// Allotment is the outcome for one student. Bus and Stop are empty when the
// student is unallotted.
type Allotment struct {
	Student     `json:"student"`
	Bus         string   `json:"bus,omitempty"`
	Stop        string   `json:"stop,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (a *Allotment) Allotted() bool {
	return a.Bus != ""
}

type BusUsage struct {
	Bus        string `json:"bus"`
	TotalSeats int64  `json:"total_seats"`
	Allotted   int64  `json:"allotted_count"`
	Remaining  int64  `json:"remaining_seats"`
}

var DefaultThresholds = []int{85, 70}

const DefaultSuggestionCount = 3

type Matcher struct {
	// Strictly decreasing; every value after the first is a relaxation pass
	// over the students still unallotted.
	Thresholds []int `json:"thresholds" yaml:"thresholds"`

	// Stops suggested to every unallotted student. Zero disables suggestions.
	SuggestionCount *int `json:"suggestions" yaml:"suggestions"`

	// Score records overriding the ratio score for known pairs of spellings.
	Overrides []similarity.ScoreRecord `json:"overrides" yaml:"overrides"`

	Verbose bool `json:"vv" yaml:"verbose"`

	thresholds []int
	sgn        int
	scorer     similarity.Scorer
}

type Summary struct {
	RunID          string `json:"run_id"`
	StudentsCount  int    `json:"students"`
	BusesCount     int    `json:"buses"`
	SeatsCount     int64  `json:"seats"`
	AllottedCount  int    `json:"allotted"`
	Unallotted     int    `json:"unallotted"`
	SeatsRemaining int64  `json:"seats_remaining"`
}
