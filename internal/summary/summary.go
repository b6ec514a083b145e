/*
Package summary computes mean, min, max and standard deviation for the numeric
columns of a run's series.
*/
package summary

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"logseries/internal/series"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GroupColumn is the column arrival series are grouped by.
const GroupColumn = "dest_type"

// Stats summarizes one column. Stddev is the population standard deviation.
type Stats struct {
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	Stddev float64
}

// Row is the summary of one column of one series, optionally within a group.
type Row struct {
	Series string
	Group  string
	Column string
	Stats
}

// Summarize returns one Row per numeric column of t, per distinct value of
// groupBy when t has that column. The time column and non-numeric columns are
// left out.
func Summarize(t *series.Table, groupBy string) ([]Row, error) {
	groupCol := t.Column(groupBy)
	groups := []string{""}
	if groupCol != -1 {
		distinct := mapset.NewSet[string]()
		for _, row := range t.Rows {
			distinct.Add(row[groupCol])
		}
		groups = distinct.ToSlice()
		slices.Sort(groups)
	}
	var rows []Row
	for col, name := range t.Header {
		if name == series.TimeColumn || col == groupCol || !numeric(t, col) {
			continue
		}
		for _, group := range groups {
			var values []float64
			for i, row := range t.Rows {
				if groupCol != -1 && row[groupCol] != group {
					continue
				}
				v, err := t.Float(i, col)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
			rows = append(rows, Row{Series: t.Name, Group: group, Column: name, Stats: compute(values)})
		}
	}
	return rows, nil
}

// numeric reports whether every value in col parses as a number. A column
// without values counts as numeric.
func numeric(t *series.Table, col int) bool {
	for _, row := range t.Rows {
		if _, err := strconv.ParseFloat(row[col], 64); err != nil {
			return false
		}
	}
	return true
}

func compute(values []float64) Stats {
	s := Stats{Count: len(values), Mean: math.NaN(), Min: math.NaN(), Max: math.NaN(), Stddev: math.NaN()}
	if len(values) == 0 {
		return s
	}
	sum := 0.0
	s.Min, s.Max = values[0], values[0]
	for _, v := range values {
		sum += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Mean = sum / float64(len(values))
	distanceSquaredSum := 0.0
	for _, v := range values {
		distance := s.Mean - v
		distanceSquaredSum += distance * distance
	}
	s.Stddev = math.Sqrt(distanceSquaredSum / float64(len(values)))
	return s
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	var b strings.Builder
	b.WriteString("series,group,column,count,mean,min,max,stddev\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s,%s,%s,%d,%f,%f,%f,%f\n", r.Series, r.Group, r.Column, r.Count, r.Mean, r.Min, r.Max, r.Stddev))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Print writes rows as an aligned table for people, with thousands separators.
func Print(w io.Writer, rows []Row) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "SERIES\tGROUP\tCOLUMN\tCOUNT\tMEAN\tMIN\tMAX\tSTDDEV")
	for _, r := range rows {
		group := r.Group
		if group == "" {
			group = "-"
		}
		fmt.Fprint(tw, p.Sprintf("%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n", r.Series, group, r.Column, r.Count, r.Mean, r.Min, r.Max, r.Stddev))
	}
	return tw.Flush()
}
