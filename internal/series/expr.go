package series

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strconv"

	"github.com/casbin/govaluate"
)

// RowFilter is a boolean expression over a series' columns, e.g.
// "fps < 30" or "dest_type == 'target' && steps > 20". Numeric cells are
// compared as numbers, everything else as strings.
type RowFilter struct {
	expression *govaluate.EvaluableExpression
}

// NewRowFilter compiles expr.
func NewRowFilter(expr string) (*RowFilter, error) {
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expr, err)
	}
	return &RowFilter{expression: expression}, nil
}

// Applies reports whether every variable in the expression is a column of t.
func (f *RowFilter) Applies(t *Table) bool {
	for _, v := range f.expression.Vars() {
		if t.Column(v) == -1 {
			return false
		}
	}
	return true
}

// Keep returns a row predicate for t, for use with Table.Filter.
func (f *RowFilter) Keep(t *Table) func(row []string) (bool, error) {
	return func(row []string) (bool, error) {
		params := make(map[string]any, len(t.Header))
		for i, name := range t.Header {
			if v, err := strconv.ParseFloat(row[i], 64); err == nil {
				params[name] = v
			} else {
				params[name] = row[i]
			}
		}
		result, err := f.expression.Evaluate(params)
		if err != nil {
			return false, fmt.Errorf("failed to evaluate filter on series %s: %w", t.Name, err)
		}
		keep, ok := result.(bool)
		if !ok {
			return false, fmt.Errorf("filter on series %s evaluated to %v, not a boolean", t.Name, result)
		}
		return keep, nil
	}
}
