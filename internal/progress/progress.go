// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

/*
Package progress reports the progress of long reads on the terminal.
*/
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

var spinChars []string = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// minInterval throttles redraws
const minInterval = 100 * time.Millisecond

// Reporter draws a single status line. When the output is not a terminal only
// the final Done line is written.
type Reporter struct {
	out         io.Writer
	label       string
	interactive bool
	spinIndex   int
	lastDraw    time.Time
}

// NewReporter writes to out, animating only when out is a terminal.
func NewReporter(out *os.File, label string) *Reporter {
	return &Reporter{out: out, label: label, interactive: term.IsTerminal(int(out.Fd()))}
}

// Status redraws the status line, at most every minInterval.
func (r *Reporter) Status(status string) {
	if !r.interactive || time.Since(r.lastDraw) < minInterval {
		return
	}
	r.lastDraw = time.Now()
	fmt.Fprintf(r.out, "\r\x1b[K%-20s  %s  %s", r.label, spinChars[r.spinIndex], status)
	r.spinIndex = (r.spinIndex + 1) % len(spinChars)
}

// Done writes the final status and ends the line.
func (r *Reporter) Done(status string) {
	if r.interactive {
		fmt.Fprint(r.out, "\r\x1b[K")
	}
	fmt.Fprintf(r.out, "%-20s  %s\n", r.label, status)
}

// Reader reports the share of a known size that has been read.
type Reader struct {
	r        io.Reader
	size     int64
	read     int64
	reporter *Reporter
}

// NewReader wraps r. A size of zero or less reports bytes read instead of a percentage.
func NewReader(r io.Reader, size int64, reporter *Reporter) *Reader {
	return &Reader{r: r, size: size, reporter: reporter}
}

func (pr *Reader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)
	if pr.size > 0 {
		pr.reporter.Status(fmt.Sprintf("%3d%%", pr.read*100/pr.size))
	} else {
		pr.reporter.Status(fmt.Sprintf("%d bytes", pr.read))
	}
	return n, err
}

// BytesRead is the number of bytes read so far.
func (pr *Reader) BytesRead() int64 {
	return pr.read
}
