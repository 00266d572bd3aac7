// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package similarity

type ScoreRecord struct {
	ScoreKey `yaml:",inline"`
	ScoreVal `yaml:",inline"`
}

type ScoreKey struct {
	A string `yaml:"a" json:"a"`
	B string `yaml:"b" json:"b"`
}

type ScoreVal struct {
	Score int `yaml:"score" json:"score"`
}

type complexScorer struct {
	orig Scorer
	recs map[ScoreKey]ScoreVal
}

// NewComplexScorer serves the recorded pairs from records, in either order,
// and everything else from orig. Record scores are clamped to [0, 100].
// A record of a pair of equal strings is ignored.
func NewComplexScorer(orig Scorer, records []ScoreRecord) Scorer {
	recs := make(map[ScoreKey]ScoreVal, len(records)*2)
	for _, rec := range records {
		if rec.A == rec.B {
			continue
		}
		val := ScoreVal{Score: clamp(rec.Score)}
		recs[rec.ScoreKey] = val
		recs[ScoreKey{A: rec.B, B: rec.A}] = val
	}
	return &complexScorer{
		orig: orig,
		recs: recs,
	}
}

func (s *complexScorer) Score(a, b string) int {
	if val, ok := s.recs[ScoreKey{A: a, B: b}]; ok {
		return val.Score
	}
	return s.orig.Score(a, b)
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
