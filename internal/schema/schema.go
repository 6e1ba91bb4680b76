// Package schema describes the subrecord and field catalog an extract
// is built against.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFieldNotFound indicates a (subrecord, field) pair is not in the schema.
var ErrFieldNotFound = errors.New("field not found in schema")

// ErrSubrecordNotFound indicates the named subrecord is not in the schema.
var ErrSubrecordNotFound = errors.New("subrecord not found in schema")

// Schema is the catalog of subrecords available for slicing and filtering.
type Schema struct {
	Subrecords []*SubrecordDefinition `yaml:"subrecords" json:"subrecords"`
}

// SubrecordDefinition describes one subrecord (demographics, location, ...).
type SubrecordDefinition struct {
	Name string `yaml:"name" json:"name"`
	// Single marks singleton subrecords: at most one instance per episode.
	Single bool               `yaml:"single,omitempty" json:"single"`
	Fields []*FieldDescriptor `yaml:"fields" json:"fields"`
}

// FieldDescriptor identifies one extractable field. Identity is the
// (Subrecord, Name) pair; membership checks use Is, not pointer equality.
type FieldDescriptor struct {
	Subrecord string `yaml:"-" json:"subrecord"`
	Name      string `yaml:"name" json:"name"`
	Title     string `yaml:"title,omitempty" json:"title"`
	Type      string `yaml:"type,omitempty" json:"type,omitempty"`
}

// Is reports whether two descriptors identify the same field.
func (f *FieldDescriptor) Is(other *FieldDescriptor) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Subrecord == other.Subrecord && f.Name == other.Name
}

// DisplayTitle returns the configured title, or a title derived from the
// field name ("date_of_birth" -> "Date Of Birth").
func (f *FieldDescriptor) DisplayTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return TitleForName(f.Name)
}

// TitleForName derives a human-readable title from an api-style field name.
func TitleForName(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NewSchema creates a schema with the built-in demographics subrecord, so a
// bare construction can always resolve the mandatory extract fields.
func NewSchema() *Schema {
	return &Schema{
		Subrecords: []*SubrecordDefinition{
			{
				Name:   "demographics",
				Single: true,
				Fields: []*FieldDescriptor{
					{Subrecord: "demographics", Name: "hospital_number", Type: "string"},
					{Subrecord: "demographics", Name: "name", Type: "string"},
					{Subrecord: "demographics", Name: "date_of_birth", Type: "date"},
					{Subrecord: "demographics", Name: "sex", Type: "string"},
				},
			},
		},
	}
}

// FindSubrecord returns the named subrecord definition.
func (s *Schema) FindSubrecord(name string) (*SubrecordDefinition, error) {
	for _, sub := range s.Subrecords {
		if sub.Name == name {
			return sub, nil
		}
	}
	return nil, fmt.Errorf("subrecord '%s': %w", name, ErrSubrecordNotFound)
}

// FindField resolves a (subrecord, field) pair to its descriptor.
func (s *Schema) FindField(subrecord, field string) (*FieldDescriptor, error) {
	sub, err := s.FindSubrecord(subrecord)
	if err != nil {
		return nil, fmt.Errorf("field '%s.%s': %w", subrecord, field, ErrFieldNotFound)
	}
	for _, fd := range sub.Fields {
		if fd.Name == field {
			return fd, nil
		}
	}
	return nil, fmt.Errorf("field '%s.%s': %w", subrecord, field, ErrFieldNotFound)
}

// SubrecordNames returns subrecord names in declaration order.
func (s *Schema) SubrecordNames() []string {
	names := make([]string, 0, len(s.Subrecords))
	for _, sub := range s.Subrecords {
		names = append(names, sub.Name)
	}
	return names
}

// normalize fills in each descriptor's owning subrecord name after YAML or
// JSON decoding, where the owner is implied by nesting.
func (s *Schema) normalize() {
	for _, sub := range s.Subrecords {
		for _, fd := range sub.Fields {
			fd.Subrecord = sub.Name
		}
	}
}
