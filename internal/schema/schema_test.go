package schema

import (
	"errors"
	"testing"
)

func TestFindField(t *testing.T) {
	sch := NewSchema()

	fd, err := sch.FindField("demographics", "date_of_birth")
	if err != nil {
		t.Fatalf("FindField failed: %v", err)
	}
	if fd.Subrecord != "demographics" || fd.Name != "date_of_birth" {
		t.Errorf("unexpected descriptor: %+v", fd)
	}
}

func TestFindField_NotFound(t *testing.T) {
	sch := NewSchema()

	tests := []struct {
		subrecord, field string
	}{
		{"demographics", "favourite_colour"},
		{"imaging", "modality"},
	}

	for _, tt := range tests {
		_, err := sch.FindField(tt.subrecord, tt.field)
		if !errors.Is(err, ErrFieldNotFound) {
			t.Errorf("FindField(%s, %s): expected ErrFieldNotFound, got %v", tt.subrecord, tt.field, err)
		}
	}
}

func TestFindSubrecord_NotFound(t *testing.T) {
	sch := NewSchema()
	if _, err := sch.FindSubrecord("imaging"); !errors.Is(err, ErrSubrecordNotFound) {
		t.Errorf("expected ErrSubrecordNotFound, got %v", err)
	}
}

func TestParse_FillsOwningSubrecord(t *testing.T) {
	sch, err := Parse([]byte(`
subrecords:
  - name: demographics
    fields:
      - name: date_of_birth
      - name: sex
  - name: location
    single: true
    fields:
      - name: ward
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ward, err := sch.FindField("location", "ward")
	if err != nil {
		t.Fatalf("FindField failed: %v", err)
	}
	if ward.Subrecord != "location" {
		t.Errorf("expected owning subrecord 'location', got %q", ward.Subrecord)
	}
}

func TestParse_MergesBuiltinDemographics(t *testing.T) {
	sch, err := Parse([]byte(`
subrecords:
  - name: diagnosis
    fields:
      - name: condition
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// A schema without demographics still resolves the mandatory fields.
	if _, err := sch.FindField("demographics", "sex"); err != nil {
		t.Errorf("expected built-in demographics to be merged in: %v", err)
	}
	if _, err := sch.FindField("diagnosis", "condition"); err != nil {
		t.Errorf("expected file-defined subrecord to survive the merge: %v", err)
	}
}

func TestFieldDescriptorIs(t *testing.T) {
	a := &FieldDescriptor{Subrecord: "demographics", Name: "sex"}
	b := &FieldDescriptor{Subrecord: "demographics", Name: "sex", Title: "Sex"}
	c := &FieldDescriptor{Subrecord: "location", Name: "sex"}

	if !a.Is(b) {
		t.Error("descriptors with the same identity pair should match")
	}
	if a.Is(c) {
		t.Error("descriptors with different subrecords should not match")
	}
	if a.Is(nil) {
		t.Error("nil never matches a non-nil descriptor")
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		fd   FieldDescriptor
		want string
	}{
		{FieldDescriptor{Name: "date_of_birth"}, "Date Of Birth"},
		{FieldDescriptor{Name: "sex"}, "Sex"},
		{FieldDescriptor{Name: "ward", Title: "Ward Name"}, "Ward Name"},
	}

	for _, tt := range tests {
		if got := tt.fd.DisplayTitle(); got != tt.want {
			t.Errorf("DisplayTitle(%s) = %q, want %q", tt.fd.Name, got, tt.want)
		}
	}
}
