/*
Package recognize converts individual log lines into typed metric records.

Each Recognizer owns one category of line. It looks for a marker substring,
splits the line into whitespace-delimited tokens and reads values from fixed
token positions defined by the layout of the profiled process' log output.
*/
package recognize

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"logseries/internal/timestamp"

	"github.com/pkg/errors"
)

// ErrMalformedMetricLine is returned when a line carries a category marker but
// its tokens cannot be extracted.
var ErrMalformedMetricLine = errors.New("malformed metric line")

// Record is one structured observation extracted from a line.
type Record interface {
	// Series is the name of the series the record belongs to.
	Series() string
	// Fields are the CSV values in header order.
	Fields() []string
}

// Recognizer turns lines of one category into Records.
//
// Recognize returns (nil, nil) for lines that do not belong to the category.
// A line that carries the marker but cannot be parsed returns a nil Record and
// an error wrapping ErrMalformedMetricLine or timestamp.ErrMalformedTimestamp.
// A Recognizer must not be called before the baseline is known.
type Recognizer interface {
	Name() string
	Header() []string
	Recognize(line string, baseline time.Time) (Record, error)
}

// Tokens splits a line on runs of whitespace.
func Tokens(line string) []string {
	return strings.Fields(line)
}

// Defaults returns the recognizers in registration order: frame rate, entity
// count, arrival events.
func Defaults() []Recognizer {
	return []Recognizer{
		NewFrameRate(),
		NewEntityCount(),
		NewArrivalEvent(),
	}
}

// token returns tokens[idx] or an error naming the missing position
func token(tokens []string, idx int) (string, error) {
	if idx >= len(tokens) {
		return "", errors.Wrapf(ErrMalformedMetricLine, "need token %d, line has %d", idx, len(tokens))
	}
	return tokens[idx], nil
}

func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedMetricLine, "%q is not a number", tok)
	}
	return v, nil
}

// trimLast drops the final character, e.g., the ")" closing "(avg 59.5)".
func trimLast(tok string) string {
	_, size := utf8.DecodeLastRuneInString(tok)
	return tok[:len(tok)-size]
}

// elapsedSince parses the timestamp token and converts it to seconds after baseline
func elapsedSince(tok string, baseline time.Time) (float64, error) {
	instant, err := timestamp.Parse(tok)
	if err != nil {
		return 0, err
	}
	return timestamp.Elapsed(instant, baseline), nil
}

// FormatFloat renders v in its shortest round-trip form and always keeps a
// decimal point, so 60 is written as "60.0".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") { // NaN, Inf
		return s
	}
	return s + ".0"
}
