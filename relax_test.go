// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package busmatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SinglePass(t *testing.T) {
	reg := makeRegistry(t,
		makeResource("A", 1, "central"),
		makeResource("B", 1, "central"),
	)
	requesters := []*Requester{
		makeRequester("R1", "central", "central"),
		makeRequester("R2", "central", "central"),
	}

	unassigned, err := Run(ratio, requesters, reg, []int{85})
	require.NoError(t, err)
	assert.Empty(t, unassigned)
	assert.Equal(t, "A", requesters[0].Assignment.Resource)
	assert.Equal(t, "B", requesters[1].Assignment.Resource)
}

func TestRun_Relaxation(t *testing.T) {
	reg := makeRegistry(t,
		makeResource("A", 1, "central"),
		makeResource("B", 5, "centre"),
	)
	requesters := []*Requester{
		makeRequester("r1", "central", "central"),
		makeRequester("r2", "central", "central"),
		makeRequester("r3", "xyz", "qqq"),
	}

	// "central" vs "centre" 只有 77 分, 第二轮才能匹配
	unassigned, err := Run(ratio, requesters, reg, []int{85, 70})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, unassigned)
	assert.Equal(t, &Assignment{Resource: "A", Label: "central"}, requesters[0].Assignment)
	assert.Equal(t, &Assignment{Resource: "B", Label: "centre"}, requesters[1].Assignment)
	assert.Nil(t, requesters[2].Assignment)
	assert.Equal(t, int64(0), reg.Remaining("A"))
	assert.Equal(t, int64(4), reg.Remaining("B"))
}

func TestRun_NeverUnseats(t *testing.T) {
	reg := makeRegistry(t,
		makeResource("A", 1, "central"),
		makeResource("B", 1, "centre"),
	)
	first := makeRequester("r1", "centre", "central")
	second := makeRequester("r2", "central", "central")
	requesters := []*Requester{first, second}

	unassigned, err := Run(ratio, requesters, reg, []int{85, 70, 0})
	require.NoError(t, err)
	assert.Empty(t, unassigned)
	// r1 在第一轮拿到 B 后不会被后续轮次改动
	assert.Equal(t, "B", first.Assignment.Resource)
	assert.Equal(t, "A", second.Assignment.Resource)
}

func TestRun_CarriedOverAssignments(t *testing.T) {
	reg := makeRegistry(t, makeResource("A", 2, "central"))
	done := makeRequester("done", "central", "central")

	_, err := Run(ratio, []*Requester{done}, reg, []int{85})
	require.NoError(t, err)
	require.Equal(t, "A", done.Assignment.Resource)

	// 上一轮已分配的 requester 可以再次传入, 不会被改动
	requesters := []*Requester{done, makeRequester("r", "central", "central")}
	unassigned, err := Run(ratio, requesters, reg, []int{85})
	require.NoError(t, err)
	assert.Empty(t, unassigned)
	assert.Equal(t, &Assignment{Resource: "A", Label: "central"}, done.Assignment)
	assert.Equal(t, "A", requesters[1].Assignment.Resource)
	assert.Equal(t, int64(0), reg.Remaining("A"))
}

func TestRun_InvalidAssignments(t *testing.T) {
	tests := []struct {
		name       string
		assignment Assignment
		msg        string
	}{
		{"UnknownResource", Assignment{Resource: "Z", Label: "nowhere"}, "unknown resource"},
		{"UnknownLabel", Assignment{Resource: "A", Label: "market"}, "not offered"},
		// 座位未被消耗, 直接塞进来的分配会破坏容量不变式
		{"SeatNotConsumed", Assignment{Resource: "A", Label: "central"}, "seats consumed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := makeRegistry(t, makeResource("A", 1, "central"))
			ghost := makeRequester("ghost", "central", "central")
			a := tt.assignment
			ghost.Assignment = &a
			other := makeRequester("r", "central", "central")

			unassigned, err := Run(ratio, []*Requester{ghost, other}, reg, []int{85})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorContains(t, err, tt.msg)
			assert.Nil(t, unassigned)
			assert.Nil(t, other.Assignment)
			assert.Equal(t, int64(1), reg.Remaining("A"))
		})
	}
}

func TestRun_InvalidInput(t *testing.T) {
	reg := makeRegistry(t, makeResource("A", 1, "central"))
	requesters := []*Requester{makeRequester("r", "", "central")}

	unassigned, err := Run(ratio, requesters, reg, []int{85})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, unassigned)
	assert.Equal(t, int64(1), reg.Remaining("A"))
	assert.Nil(t, requesters[0].Assignment)

	_, err = Run(ratio, []*Requester{makeRequester("r", "a", "b")}, reg, []int{70, 85})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRun_Invariants(t *testing.T) {
	stops := []string{"central", "centre", "market", "station road", "railway station", "bus stand", "college"}
	prefs := []string{"central", "centrl", "markt", "station", "railway stn", "bus stand", "colege", "xyz"}

	var resources []Resource
	for i := 0; i < 5; i++ {
		resources = append(resources, makeResource(fmt.Sprintf("bus%d", i), int64(i%3),
			stops[i%len(stops)], stops[(i*3+1)%len(stops)]))
	}
	reg := makeRegistry(t, resources...)

	var requesters []*Requester
	for i := 0; i < 40; i++ {
		requesters = append(requesters, makeRequester(fmt.Sprintf("r%d", i),
			prefs[i%len(prefs)], prefs[(i*5+2)%len(prefs)]))
	}

	thresholds := []int{95, 85, 70, 50, 30}
	assigned := 0
	for i, th := range thresholds {
		// 每轮单独运行, 检查单调性
		_, err := Run(ratio, requesters, reg, []int{th})
		require.NoError(t, err, "pass %d", i)

		count := make(map[string]int64)
		now := 0
		for _, r := range requesters {
			if r.Assigned() {
				now++
				count[r.Assignment.Resource]++
				assert.Contains(t, reg.Labels(r.Assignment.Resource), r.Assignment.Label)
			}
		}
		assert.GreaterOrEqual(t, now, assigned)
		assigned = now

		for _, u := range reg.Usage() {
			assert.GreaterOrEqual(t, u.Rest, int64(0))
			assert.Equal(t, u.Cap-count[u.Resource], u.Rest, "resource %s", u.Resource)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	run := func() []Assignment {
		reg := makeRegistry(t,
			makeResource("A", 1, "central", "market"),
			makeResource("B", 2, "market", "central"),
			makeResource("C", 1, "centre"),
		)
		requesters := []*Requester{
			makeRequester("r1", "market", "central"),
			makeRequester("r2", "central", "market"),
			makeRequester("r3", "centre", "central"),
			makeRequester("r4", "central", "centre"),
			makeRequester("r5", "market", "market"),
		}
		_, err := Run(ratio, requesters, reg, []int{85, 70})
		require.NoError(t, err)

		var al []Assignment
		for _, r := range requesters {
			if r.Assigned() {
				al = append(al, *r.Assignment)
			} else {
				al = append(al, Assignment{})
			}
		}
		return al
	}

	want := run()
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, run())
	}
}

func TestRelaxingAllocator(t *testing.T) {
	reg := makeRegistry(t, makeResource("A", 1, "central"))
	requesters := []*Requester{
		makeRequester("r1", "central", "central"),
		makeRequester("r2", "central", "central"),
	}

	unassigned, err := RelaxingAllocator(ratio, false).Allocate(requesters, reg, []int{85, 50})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, unassigned)
}
