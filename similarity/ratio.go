// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package similarity

import (
	"math"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// indel distance: a substitution costs one deletion plus one insertion.
var ratioParams = levenshtein.NewParams().SubCost(2)

// Ratio rules:
//
//	lensum = runes(a) + runes(b)
//	ratio  = round(100 * (lensum - indel(a, b)) / lensum)
//
// Equal strings (including two empty ones) score 100. Inputs are compared
// as given, callers normalize them first.
func Ratio(a, b string) int {
	if a == b {
		return MaxScore
	}

	lensum := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if lensum == 0 {
		return MaxScore
	}

	dist := levenshtein.Distance(a, b, ratioParams)
	if dist >= lensum {
		return MinScore
	}

	return int(math.Round(float64(lensum-dist) * MaxScore / float64(lensum)))
}

// RatioScorer is Ratio as a Scorer.
var RatioScorer Scorer = ScorerFunc(Ratio)
