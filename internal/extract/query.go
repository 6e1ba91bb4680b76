// Package extract implements the in-progress extract query: the ordered
// filter criteria, the set of fields to pull (slices), and compilation of
// that possibly-incomplete state into a finalized, serializable form.
package extract

import (
	"fmt"

	"github.com/mgrove/cohort/internal/schema"
)

// Conjunction selects how finalized criteria combine.
type Conjunction string

const (
	// ConjunctionAll compiles to "and" on every finalized criterion.
	ConjunctionAll Conjunction = "all"
	// ConjunctionAny compiles to "or" on every finalized criterion.
	ConjunctionAny Conjunction = "any"
)

// mandatoryFieldRefs are the (subrecord, field) pairs every extract must
// include, resolved against the schema once at construction.
var mandatoryFieldRefs = [][2]string{
	{"demographics", "date_of_birth"},
	{"demographics", "sex"},
}

// Query is the owning state for one extract session. It is built
// incrementally by a single writer and is not safe for concurrent use.
type Query struct {
	criteria    []*CriteriaRow
	conjunction Conjunction
	mandatory   []*schema.FieldDescriptor
	slices      []*schema.FieldDescriptor

	// selected is the row the caller is currently editing, if any. It is
	// cleared when that row is removed.
	selected *CriteriaRow
}

// NewQuery constructs a fresh extract query against the given schema.
// Construction resolves every mandatory field up front and fails if any
// lookup fails; a Query is never usable with unresolved mandatory fields.
func NewQuery(sch *schema.Schema) (*Query, error) {
	mandatory := make([]*schema.FieldDescriptor, 0, len(mandatoryFieldRefs))
	for _, ref := range mandatoryFieldRefs {
		fd, err := sch.FindField(ref[0], ref[1])
		if err != nil {
			return nil, fmt.Errorf("resolve mandatory field: %w", err)
		}
		mandatory = append(mandatory, fd)
	}

	q := &Query{
		criteria:    []*CriteriaRow{newCriteriaRow()},
		conjunction: ConjunctionAll,
		mandatory:   mandatory,
	}
	q.slices = append(q.slices, mandatory...)
	return q, nil
}

// Conjunction returns the current conjunction.
func (q *Query) Conjunction() Conjunction {
	return q.conjunction
}

// SetConjunction sets how compiled criteria combine. Unrecognized values
// fall back to ConjunctionAll.
func (q *Query) SetConjunction(c Conjunction) {
	if c != ConjunctionAny {
		c = ConjunctionAll
	}
	q.conjunction = c
}

// Criteria returns the live criteria rows in order. Callers mutate rows in
// place while editing; Compile never does.
func (q *Query) Criteria() []*CriteriaRow {
	return q.criteria
}

// Selected returns the row currently being edited, or nil.
func (q *Query) Selected() *CriteriaRow {
	return q.selected
}

// Select marks a row as the one being edited.
func (q *Query) Select(row *CriteriaRow) {
	q.selected = row
}

// MandatoryFields returns the descriptors resolved at construction.
func (q *Query) MandatoryFields() []*schema.FieldDescriptor {
	return q.mandatory
}
