/*
Package timestamp parses the leading timestamp token of a log line and measures
elapsed time against a per-run baseline.
*/
package timestamp

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Layout is the fixed-width UTC layout written by the profiled process' logger.
const Layout = "2006-01-02T15:04:05.000000Z"

// ErrMalformedTimestamp is returned when a token does not match Layout after
// ANSI escape sequences have been removed.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

var (
	rxANSI  = regexp.MustCompile(`\x1b\[[0-9;]+m`)
	rxShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z$`)
)

// StripANSI removes color escape sequences of the form ESC [ <digits or ;> m
func StripANSI(text string) string {
	return rxANSI.ReplaceAllString(text, "")
}

// Parse converts a timestamp token, possibly wrapped in color escapes, into an
// absolute UTC instant.
func Parse(text string) (time.Time, error) {
	clean := StripANSI(strings.TrimSpace(text))
	// time.Parse tolerates some shapes the logger never produces, so the
	// width of every field is checked first
	if !rxShape.MatchString(clean) {
		return time.Time{}, errors.Wrapf(ErrMalformedTimestamp, "%q", clean)
	}
	instant, err := time.Parse(Layout, clean)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrMalformedTimestamp, "%q: %v", clean, err)
	}
	return instant.UTC(), nil
}

// Elapsed returns instant - baseline in fractional seconds. The result is
// negative when instant precedes the baseline.
func Elapsed(instant, baseline time.Time) float64 {
	return instant.Sub(baseline).Seconds()
}
