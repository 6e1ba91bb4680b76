package extract

import (
	"errors"
	"fmt"
)

// ErrRowIndexOutOfRange indicates a criteria row index outside the current
// row sequence. RemoveRow reports it rather than silently ignoring the call.
var ErrRowIndexOutOfRange = errors.New("criteria row index out of range")

// CriteriaRow is one filter condition under construction. Attributes are
// empty strings until the user fills them in.
type CriteriaRow struct {
	// Column is the owning subrecord name.
	Column string `json:"column"`
	// Field is the field name within the subrecord.
	Field string `json:"field"`
	// QueryType is the operator tag ("Equals", "Before", ...). Not required
	// for a row to be complete.
	QueryType string `json:"query_type"`
	// Query is the operand value.
	Query string `json:"query"`
}

// newCriteriaRow returns a fresh blank row. Every new row comes from here;
// rows are never cloned from a shared template.
func newCriteriaRow() *CriteriaRow {
	return &CriteriaRow{}
}

// Complete reports whether the row can be finalized: column, field, and
// query must all be set. QueryType is optional.
func (r *CriteriaRow) Complete() bool {
	return r.Column != "" && r.Field != "" && r.Query != ""
}

// RowAttribute names one of the four CriteriaRow attributes.
type RowAttribute int

const (
	AttrColumn RowAttribute = iota
	AttrField
	AttrQueryType
	AttrQuery
)

// rowAttributes is the full attribute set, in struct order.
var rowAttributes = []RowAttribute{AttrColumn, AttrField, AttrQueryType, AttrQuery}

// FinalizedCriterion is a completed row plus the conjunction tag applied
// uniformly across one compiled query.
type FinalizedCriterion struct {
	Column    string `json:"column"`
	Field     string `json:"field"`
	QueryType string `json:"query_type"`
	Query     string `json:"query"`
	Combine   string `json:"combine"`
}

// AddRow appends a fresh blank row. There is no limit on row count.
func (q *Query) AddRow() {
	q.criteria = append(q.criteria, newCriteriaRow())
}

// RemoveRow removes the row at index i, preserving the order of the rest.
// If the removed row is the selected row, the selection is cleared. The
// criteria sequence is never left empty: removing the last remaining row
// resets it to a single fresh blank row instead.
func (q *Query) RemoveRow(i int) error {
	if i < 0 || i >= len(q.criteria) {
		return fmt.Errorf("row %d of %d: %w", i, len(q.criteria), ErrRowIndexOutOfRange)
	}

	if q.selected == q.criteria[i] {
		q.selected = nil
	}

	if len(q.criteria) == 1 {
		q.RemoveAll()
		return nil
	}

	q.criteria = append(q.criteria[:i], q.criteria[i+1:]...)
	return nil
}

// RemoveAll replaces the criteria with exactly one fresh blank row.
func (q *Query) RemoveAll() {
	q.criteria = []*CriteriaRow{newCriteriaRow()}
}

// ResetRow clears every attribute of row not listed in preserve. Used when
// the user changes a row's subrecord, invalidating the downstream field,
// operator, and value choices.
func (q *Query) ResetRow(row *CriteriaRow, preserve ...RowAttribute) {
	preserved := make(map[RowAttribute]bool, len(preserve))
	for _, attr := range preserve {
		preserved[attr] = true
	}

	for _, attr := range rowAttributes {
		if preserved[attr] {
			continue
		}
		switch attr {
		case AttrColumn:
			row.Column = ""
		case AttrField:
			row.Field = ""
		case AttrQueryType:
			row.QueryType = ""
		case AttrQuery:
			row.Query = ""
		}
	}
}

// Compile produces the finalized criteria: complete rows only, in original
// order, each tagged with the conjunction-derived combine value. Incomplete
// rows are dropped silently; a trailing blank row mid-edit is normal, not an
// error. Compile copies row values and never mutates the live criteria.
func (q *Query) Compile() []FinalizedCriterion {
	combine := "and"
	if q.conjunction == ConjunctionAny {
		combine = "or"
	}

	finalized := make([]FinalizedCriterion, 0, len(q.criteria))
	for _, row := range q.criteria {
		if !row.Complete() {
			continue
		}
		finalized = append(finalized, FinalizedCriterion{
			Column:    row.Column,
			Field:     row.Field,
			QueryType: row.QueryType,
			Query:     row.Query,
			Combine:   combine,
		})
	}
	return finalized
}
