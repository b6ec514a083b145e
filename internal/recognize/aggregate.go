package recognize

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"slices"
)

// Aggregate is the running sum and count behind a running average.
type Aggregate struct {
	Sum   float64
	Count int
}

// Observe adds v and returns the recomputed average.
func (a *Aggregate) Observe(v float64) float64 {
	a.Sum += v
	a.Count++
	return a.Average()
}

// Average returns Sum/Count, or 0 before the first observation.
func (a *Aggregate) Average() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Sum / float64(a.Count)
}

// Aggregates holds one Aggregate per key. Entries are created on first use.
type Aggregates map[string]*Aggregate

// Observe records v under key and returns the key's new average.
func (as Aggregates) Observe(key string, v float64) float64 {
	a, ok := as[key]
	if !ok {
		a = &Aggregate{}
		as[key] = a
	}
	return a.Observe(v)
}

// Keys returns the observed keys in sorted order.
func (as Aggregates) Keys() []string {
	keys := make([]string, 0, len(as))
	for k := range as {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
