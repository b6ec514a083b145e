/*
Package series writes and reads the per-category CSV files produced by a run.

The files are a minimal CSV: values are numeric or short tags, so fields are
joined with commas and never quoted.
*/
package series

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bufio"
	"os"
	"strings"

	"logseries/internal/recognize"

	"github.com/pkg/errors"
)

// ErrIO marks failures to create, write or flush an output series.
var ErrIO = errors.New("series i/o")

// Writer is an append-only series file.
type Writer struct {
	file   *os.File
	buf    *bufio.Writer
	header []string
	rows   int
}

// Create truncates or creates path and writes the header line.
func Create(path string, header []string) (*Writer, error) {
	file, err := os.Create(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "create %s: %v", path, err)
	}
	w := &Writer{file: file, buf: bufio.NewWriter(file), header: header}
	if err := w.writeLine(header); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

// Write appends one row holding the record's fields.
func (w *Writer) Write(rec recognize.Record) error {
	fields := rec.Fields()
	if len(fields) != len(w.header) {
		return errors.Errorf("%s record has %d fields, series %s has %d columns", rec.Series(), len(fields), w.Path(), len(w.header))
	}
	if err := w.writeLine(fields); err != nil {
		return err
	}
	w.rows++
	return nil
}

func (w *Writer) writeLine(fields []string) error {
	if _, err := w.buf.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
		return errors.Wrapf(ErrIO, "write %s: %v", w.Path(), err)
	}
	return nil
}

// Rows is the number of data rows written, excluding the header.
func (w *Writer) Rows() int {
	return w.rows
}

// Path is the file's name as given to Create.
func (w *Writer) Path() string {
	return w.file.Name()
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return errors.Wrapf(ErrIO, "flush %s: %v", w.Path(), flushErr)
	}
	if closeErr != nil {
		return errors.Wrapf(ErrIO, "close %s: %v", w.Path(), closeErr)
	}
	return nil
}
