package pipeline

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "logseries_"

// Metrics are the pipeline's prometheus counters. A nil *Metrics records nothing.
type Metrics struct {
	Lines     prometheus.Counter
	Discarded prometheus.Counter
	Records   *prometheus.CounterVec
	Skipped   *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Lines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "lines_total",
			Help: "Log lines read",
		}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "lines_discarded_total",
			Help: "Log lines read before the baseline was established",
		}),
		Records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "records_total",
			Help: "Rows written per series",
		}, []string{"series"}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "lines_skipped_total",
			Help: "Lines that matched a series marker but could not be parsed",
		}, []string{"series"}),
	}
	for _, c := range []prometheus.Collector{m.Lines, m.Discarded, m.Records, m.Skipped} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// WriteTextfile writes everything gathered by g in the prometheus text format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

func (m *Metrics) line() {
	if m != nil {
		m.Lines.Inc()
	}
}

func (m *Metrics) discarded() {
	if m != nil {
		m.Discarded.Inc()
	}
}

func (m *Metrics) record(series string) {
	if m != nil {
		m.Records.WithLabelValues(series).Inc()
	}
}

func (m *Metrics) skipped(series string) {
	if m != nil {
		m.Skipped.WithLabelValues(series).Inc()
	}
}
