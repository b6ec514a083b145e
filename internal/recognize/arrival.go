package recognize

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// arrival events are logged by the nest systems when an ant reaches a nest, e.g.
//   <ts> INFO network::nest: ... Ant reached target nest 3 after 10 steps

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	idxArrivalKind  = 6
	idxArrivalSteps = 10
)

// ArrivalEvent is one ant reaching a destination, with the running average of
// steps for that destination kind.
type ArrivalEvent struct {
	Elapsed  float64
	Kind     string
	Steps    int
	AvgSteps float64
}

func (r ArrivalEvent) Series() string { return SeriesArrival }

func (r ArrivalEvent) Fields() []string {
	return []string{FormatFloat(r.Elapsed), r.Kind, strconv.Itoa(r.Steps), FormatFloat(r.AvgSteps)}
}

// Arrival recognizes "Ant reached" lines and keeps a running average of steps
// per destination kind.
type Arrival struct {
	totals Aggregates
}

// NewArrivalEvent returns an Arrival recognizer with empty totals.
func NewArrivalEvent() *Arrival {
	return &Arrival{totals: make(Aggregates)}
}

func (a *Arrival) Name() string { return SeriesArrival }

func (a *Arrival) Header() []string {
	return []string{"time", "dest_type", "steps", "avg_steps"}
}

// Totals exposes the per destination kind aggregates. Callers must not modify them.
func (a *Arrival) Totals() Aggregates {
	return a.totals
}

func (a *Arrival) Recognize(line string, baseline time.Time) (Record, error) {
	if !strings.Contains(line, "Ant reached") {
		return nil, nil
	}
	tokens := Tokens(line)
	stepsTok, err := token(tokens, idxArrivalSteps)
	if err != nil {
		return nil, err
	}
	steps, err := strconv.Atoi(stepsTok)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedMetricLine, "steps %q is not an integer", stepsTok)
	}
	elapsed, err := elapsedSince(tokens[idxTimestamp], baseline)
	if err != nil {
		return nil, err
	}
	// aggregates change only once the record is known to be complete
	kind := tokens[idxArrivalKind]
	avg := a.totals.Observe(kind, float64(steps))
	return ArrivalEvent{Elapsed: elapsed, Kind: kind, Steps: steps, AvgSteps: avg}, nil
}
