// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package similarity scores how alike two free text labels are.
package similarity

const (
	MinScore = 0
	MaxScore = 100
)

type Scorer interface {
	Score(a, b string) int
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(a, b string) int

func (f ScorerFunc) Score(a, b string) int {
	return f(a, b)
}
