package recognize

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// diagnostic gauges: lines that report an instantaneous value followed by the
// average the producer computed itself, e.g.
//   <ts> INFO bevy diagnostic: fps : 60.0 (avg 59.5)

import (
	"strings"
	"time"
)

// token positions shared by the diagnostic gauge lines
const (
	idxTimestamp    = 0
	idxGaugeValue   = 7
	idxGaugeAverage = 9
)

// series names, also used as the CSV file base names
const (
	SeriesFrameRate   = "fps"
	SeriesEntityCount = "entity_count"
	SeriesArrival     = "reached_dest"
)

// FrameRate is an instantaneous frame rate with the producer's running average.
type FrameRate struct {
	Elapsed float64
	FPS     float64
	AvgFPS  float64
}

func (r FrameRate) Series() string { return SeriesFrameRate }

func (r FrameRate) Fields() []string {
	return []string{FormatFloat(r.Elapsed), FormatFloat(r.FPS), FormatFloat(r.AvgFPS)}
}

// EntityCount is an instantaneous entity count with the producer's running average.
type EntityCount struct {
	Elapsed  float64
	Count    float64
	AvgCount float64
}

func (r EntityCount) Series() string { return SeriesEntityCount }

func (r EntityCount) Fields() []string {
	return []string{FormatFloat(r.Elapsed), FormatFloat(r.Count), FormatFloat(r.AvgCount)}
}

// gauge recognizes one diagnostic gauge category. The average is taken
// verbatim from the line.
type gauge struct {
	name   string
	marker string
	header []string
	build  func(elapsed, value, avg float64) Record
}

// NewFrameRate recognizes "fps" diagnostic lines.
func NewFrameRate() Recognizer {
	return &gauge{
		name:   SeriesFrameRate,
		marker: "fps",
		header: []string{"time", "fps", "avg_fps"},
		build: func(elapsed, value, avg float64) Record {
			return FrameRate{Elapsed: elapsed, FPS: value, AvgFPS: avg}
		},
	}
}

// NewEntityCount recognizes "entity_count" diagnostic lines.
func NewEntityCount() Recognizer {
	return &gauge{
		name:   SeriesEntityCount,
		marker: "entity_count",
		header: []string{"time", "num_entities", "avg_entities"},
		build: func(elapsed, value, avg float64) Record {
			return EntityCount{Elapsed: elapsed, Count: value, AvgCount: avg}
		},
	}
}

func (g *gauge) Name() string { return g.name }

func (g *gauge) Header() []string { return g.header }

func (g *gauge) Recognize(line string, baseline time.Time) (Record, error) {
	if !strings.Contains(line, g.marker) {
		return nil, nil
	}
	tokens := Tokens(line)
	avgTok, err := token(tokens, idxGaugeAverage)
	if err != nil {
		return nil, err
	}
	value, err := parseNumber(tokens[idxGaugeValue])
	if err != nil {
		return nil, err
	}
	avg, err := parseNumber(trimLast(avgTok))
	if err != nil {
		return nil, err
	}
	elapsed, err := elapsedSince(tokens[idxTimestamp], baseline)
	if err != nil {
		return nil, err
	}
	return g.build(elapsed, value, avg), nil
}
