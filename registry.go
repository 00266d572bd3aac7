// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package busmatch

// Registry owns the resources of one batch and their remaining capacity.
// It is not safe for concurrent use; one run owns it at a time.
type Registry struct {
	order []*resourceState
	index map[string]*resourceState
}

type resourceState struct {
	Resource
	rest int64
}

// NewRegistry copies resources in order. That order is the global
// enumeration order used to break score ties.
func NewRegistry(resources []Resource) (*Registry, error) {
	if err := validateResources(resources); err != nil {
		return nil, err
	}

	reg := &Registry{
		order: make([]*resourceState, len(resources)),
		index: make(map[string]*resourceState, len(resources)),
	}
	for i, r := range resources {
		r.Labels = append([]string(nil), r.Labels...)
		s := &resourceState{Resource: r, rest: r.Cap}
		reg.order[i] = s
		reg.index[r.ID] = s
	}

	return reg, nil
}

func (reg *Registry) Len() int {
	return len(reg.order)
}

func (reg *Registry) has(id string) bool {
	_, ok := reg.index[id]
	return ok
}

// Labels returns the labels of a resource, nil if unknown. The result must
// not be modified.
func (reg *Registry) Labels(id string) []string {
	if s, ok := reg.index[id]; ok {
		return s.Labels
	}
	return nil
}

func (reg *Registry) Capacity(id string) int64 {
	if s, ok := reg.index[id]; ok {
		return s.Cap
	}
	return 0
}

func (reg *Registry) Remaining(id string) int64 {
	if s, ok := reg.index[id]; ok {
		return s.rest
	}
	return 0
}

// TryConsumeSeat takes one seat of a resource if any is left.
func (reg *Registry) TryConsumeSeat(id string) bool {
	s, ok := reg.index[id]
	if !ok || s.rest <= 0 {
		return false
	}
	s.rest--
	return true
}

// Usage reports every resource in enumeration order.
func (reg *Registry) Usage() []Usage {
	usage := make([]Usage, len(reg.order))
	for i, s := range reg.order {
		usage[i] = Usage{Resource: s.ID, Cap: s.Cap, Rest: s.rest}
	}
	return usage
}

func (reg *Registry) each(fn func(s *resourceState)) {
	for _, s := range reg.order {
		fn(s)
	}
}
