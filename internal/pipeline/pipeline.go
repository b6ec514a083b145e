/*
Package pipeline drives captured log lines through the recognizers and into
their series.

A Pipeline starts out waiting for its baseline. The first line that carries a
severity marker and a parseable leading timestamp sets the baseline; from that
line on, every line is offered to every stage in registration order. Lines seen
before the baseline are discarded.
*/
package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bufio"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"logseries/internal/recognize"
	"logseries/internal/timestamp"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// DefaultMarkers are the severity markers that signal the logger is up.
var DefaultMarkers = []string{"INFO", "WARN"}

// maxLineSize bounds a single log line
const maxLineSize = 1024 * 1024

// Sink receives the records of one stage.
type Sink interface {
	Write(rec recognize.Record) error
	Close() error
}

// Stage pairs a recognizer with the only sink it writes to.
type Stage struct {
	Recognizer recognize.Recognizer
	Sink       Sink
}

// State is the driver state.
type State int

const (
	AwaitingBaseline State = iota
	Streaming
)

func (s State) String() string {
	switch s {
	case AwaitingBaseline:
		return "awaiting-baseline"
	case Streaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Stats counts what happened to the lines of a run.
type Stats struct {
	Lines     int            // lines read
	Discarded int            // lines read before the baseline, plus oversized lines
	Records   map[string]int // series -> rows written
	Skipped   map[string]int // series -> matching lines that failed to parse
	Baseline  time.Time
}

// Pipeline is single use and not safe for concurrent use.
type Pipeline struct {
	stages   []Stage
	markers  []string
	state    State
	baseline time.Time
	stats    Stats
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMarkers replaces the severity markers that establish the baseline.
// Duplicates and empty markers are ignored; if none remain DefaultMarkers are kept.
func WithMarkers(markers ...string) Option {
	return func(p *Pipeline) {
		set := mapset.NewSet[string]()
		for _, m := range markers {
			if m != "" {
				set.Add(m)
			}
		}
		if set.Cardinality() == 0 {
			return
		}
		p.markers = set.ToSlice()
		slices.Sort(p.markers)
	}
}

// WithMetrics records counters as lines are processed.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger replaces slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New returns a pipeline awaiting its baseline.
func New(stages []Stage, opts ...Option) *Pipeline {
	p := &Pipeline{
		stages:  stages,
		markers: DefaultMarkers,
		logger:  slog.Default(),
		stats: Stats{
			Records: make(map[string]int),
			Skipped: make(map[string]int),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, s := range stages {
		p.stats.Records[s.Recognizer.Name()] = 0
		p.stats.Skipped[s.Recognizer.Name()] = 0
	}
	return p
}

// State returns the current driver state.
func (p *Pipeline) State() State {
	return p.state
}

// Baseline returns the baseline instant and whether it has been set.
func (p *Pipeline) Baseline() (time.Time, bool) {
	return p.baseline, p.state == Streaming
}

// Stats returns a copy of the counters so far.
func (p *Pipeline) Stats() Stats {
	stats := p.stats
	stats.Records = make(map[string]int, len(p.stats.Records))
	stats.Skipped = make(map[string]int, len(p.stats.Skipped))
	for k, v := range p.stats.Records {
		stats.Records[k] = v
	}
	for k, v := range p.stats.Skipped {
		stats.Skipped[k] = v
	}
	return stats
}

// Process handles one line. Malformed metric lines are skipped; the returned
// error is always a sink failure and ends the run.
func (p *Pipeline) Process(line string) error {
	p.stats.Lines++
	p.metrics.line()
	if p.state == AwaitingBaseline && !p.latch(line) {
		p.stats.Discarded++
		p.metrics.discarded()
		return nil
	}
	for _, stage := range p.stages {
		name := stage.Recognizer.Name()
		rec, err := stage.Recognizer.Recognize(line, p.baseline)
		if err != nil {
			p.stats.Skipped[name]++
			p.metrics.skipped(name)
			p.logger.Debug("skipping line", slog.String("series", name), slog.Int("line", p.stats.Lines), slog.String("error", err.Error()))
			continue
		}
		if rec == nil {
			continue
		}
		if err := stage.Sink.Write(rec); err != nil {
			return errors.Wrapf(err, "series %s, line %d", name, p.stats.Lines)
		}
		p.stats.Records[name]++
		p.metrics.record(name)
	}
	return nil
}

// latch sets the baseline from line if it carries a marker and a leading
// timestamp, and reports whether it did.
func (p *Pipeline) latch(line string) bool {
	if !p.hasMarker(line) {
		return false
	}
	tokens := recognize.Tokens(line)
	if len(tokens) == 0 {
		return false
	}
	instant, err := timestamp.Parse(tokens[0])
	if err != nil {
		p.logger.Debug("severity marker without timestamp", slog.Int("line", p.stats.Lines), slog.String("error", err.Error()))
		return false
	}
	p.baseline = instant
	p.stats.Baseline = instant
	p.state = Streaming
	p.logger.Info("baseline established", slog.String("baseline", instant.Format(timestamp.Layout)), slog.Int("line", p.stats.Lines))
	return true
}

func (p *Pipeline) hasMarker(line string) bool {
	for _, m := range p.markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Run processes every line of r in order and returns the final counters.
// Partial input yields partial series. Lines longer than maxLineSize are
// counted as discarded and skipped.
func (p *Pipeline) Run(r io.Reader) (Stats, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	for {
		line, oversized, err := readLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return p.Stats(), errors.Wrap(err, "failed to read log")
		}
		if oversized {
			p.stats.Lines++
			p.stats.Discarded++
			p.metrics.line()
			p.metrics.discarded()
			p.logger.Debug("skipping oversized line", slog.Int("line", p.stats.Lines), slog.Int("maxLineSize", maxLineSize))
			continue
		}
		if err := p.Process(line); err != nil {
			return p.Stats(), err
		}
	}
	if p.state == AwaitingBaseline {
		p.logger.Warn("no baseline found, all lines discarded", slog.Int("lines", p.stats.Lines))
	}
	return p.Stats(), nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is consumed whole and reported as oversized with no content.
func readLine(r *bufio.Reader) (string, bool, error) {
	var buf []byte
	oversized := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if err == io.EOF && (len(buf) > 0 || oversized) {
				return string(buf), oversized, nil
			}
			return "", false, err
		}
		if !oversized {
			if len(buf)+len(chunk) > maxLineSize {
				oversized = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), oversized, nil
		}
	}
}

// Close closes every sink, flushing buffered rows, and returns the first error.
func (p *Pipeline) Close() error {
	var first error
	for _, stage := range p.stages {
		if err := stage.Sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
