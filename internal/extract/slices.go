package extract

import "github.com/mgrove/cohort/internal/schema"

// SliceGroup is one subrecord's selected field names, in selection order.
type SliceGroup struct {
	Subrecord string   `json:"subrecord"`
	Fields    []string `json:"fields"`
}

// Slices returns the fields currently selected for extraction, in order.
func (q *Query) Slices() []*schema.FieldDescriptor {
	return q.slices
}

// AddSlice appends a field to the slice set unless an identical field is
// already present. Repeated calls with the same field are no-ops.
func (q *Query) AddSlice(fd *schema.FieldDescriptor) {
	for _, existing := range q.slices {
		if existing.Is(fd) {
			return
		}
	}
	q.slices = append(q.slices, fd)
}

// RemoveSlice removes every occurrence of the field from the slice set,
// preserving the order of the survivors. Absent fields are a no-op.
//
// RemoveSlice does not guard against removing a mandatory field; callers
// that care must check IsRequired first.
func (q *Query) RemoveSlice(fd *schema.FieldDescriptor) {
	kept := q.slices[:0]
	for _, existing := range q.slices {
		if !existing.Is(fd) {
			kept = append(kept, existing)
		}
	}
	q.slices = kept
}

// IsRequired reports whether the field is one of the mandatory fields
// resolved at construction.
func (q *Query) IsRequired(fd *schema.FieldDescriptor) bool {
	for _, m := range q.mandatory {
		if m.Is(fd) {
			return true
		}
	}
	return false
}

// GroupedByOwner groups the selected field names by owning subrecord.
// Group order follows each subrecord's first appearance in the slice set;
// within a group, field order follows first appearance too.
func (q *Query) GroupedByOwner() []SliceGroup {
	groups := make([]SliceGroup, 0, len(q.slices))
	byName := make(map[string]int)

	for _, fd := range q.slices {
		i, ok := byName[fd.Subrecord]
		if !ok {
			i = len(groups)
			byName[fd.Subrecord] = i
			groups = append(groups, SliceGroup{Subrecord: fd.Subrecord})
		}
		groups[i].Fields = append(groups[i].Fields, fd.Name)
	}

	return groups
}
