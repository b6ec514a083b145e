package series

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TimeColumn is the first column of every series.
const TimeColumn = "time"

// Table is a series file loaded into memory.
type Table struct {
	Name   string // series name, the file's base name without extension
	Header []string
	Rows   [][]string
}

// ReadFile loads a series file. The header line is required; rows with a
// different field count than the header are rejected.
func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrapf(ErrIO, "open %s: %v", path, err)
	}
	defer file.Close()
	table, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	table.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return table, nil
}

// Read loads a series from r.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("missing header")
	}
	if err != nil {
		return nil, err
	}
	table := &Table{Header: header}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, fields)
	}
	return table, nil
}

// Column returns the index of the named column or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Float parses the value at row, col.
func (t *Table) Float(row int, col int) (float64, error) {
	return strconv.ParseFloat(t.Rows[row][col], 64)
}

// Times returns the time column as floats.
func (t *Table) Times() ([]float64, error) {
	col := t.Column(TimeColumn)
	if col == -1 {
		return nil, fmt.Errorf("series %s has no %s column", t.Name, TimeColumn)
	}
	times := make([]float64, len(t.Rows))
	for i := range t.Rows {
		v, err := t.Float(i, col)
		if err != nil {
			return nil, fmt.Errorf("series %s row %d: %w", t.Name, i+1, err)
		}
		times[i] = v
	}
	return times, nil
}

// Filter returns a copy of t holding only the rows keep accepts.
func (t *Table) Filter(keep func(row []string) (bool, error)) (*Table, error) {
	out := &Table{Name: t.Name, Header: t.Header}
	for _, row := range t.Rows {
		ok, err := keep(row)
		if err != nil {
			return nil, err
		}
		if ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// Window keeps the rows whose time lies within startOffset seconds of the
// first row and endOffset seconds of the last row.
func (t *Table) Window(startOffset float64, endOffset float64) (*Table, error) {
	times, err := t.Times()
	if err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return &Table{Name: t.Name, Header: t.Header}, nil
	}
	first, last := times[0], times[0]
	for _, ts := range times {
		first = min(first, ts)
		last = max(last, ts)
	}
	start := first + startOffset
	end := last - endOffset
	out := &Table{Name: t.Name, Header: t.Header}
	for i, row := range t.Rows {
		if times[i] >= start && times[i] <= end {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// WriteFile writes the table in the same minimal CSV form the Writer uses.
func (t *Table) WriteFile(path string) error {
	var b strings.Builder
	b.WriteString(strings.Join(t.Header, ",") + "\n")
	for _, row := range t.Rows {
		b.WriteString(strings.Join(row, ",") + "\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil { // #nosec G306
		return errors.Wrapf(ErrIO, "write %s: %v", path, err)
	}
	return nil
}
