package render

import (
	"archive/zip"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/mgrove/cohort/internal/client"
	"github.com/mgrove/cohort/internal/extract"
	"github.com/mgrove/cohort/internal/schema"
)

func testResult() *client.ExtractResult {
	return &client.ExtractResult{
		Episodes: []client.Episode{
			{
				"demographics": []client.Record{
					{"date_of_birth": "1970-01-01", "sex": "Male"},
				},
				"diagnosis": []client.Record{
					{"condition": "Flu"},
					{"condition": []interface{}{"Cough", "Fever"}},
				},
			},
			{
				"demographics": []client.Record{
					{"date_of_birth": "1985-06-12", "sex": "Female"},
				},
			},
		},
	}
}

func readCSV(t *testing.T, zr *zip.Reader, name string) [][]string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", name, err)
		}
		defer rc.Close()
		rows, err := csv.NewReader(rc).ReadAll()
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		return rows
	}
	t.Fatalf("archive has no entry %s", name)
	return nil
}

func TestWriteArchive(t *testing.T) {
	sch, err := schema.Parse([]byte(`
subrecords:
  - name: demographics
    fields:
      - name: date_of_birth
      - name: sex
  - name: diagnosis
    fields:
      - name: condition
        title: Condition Name
`))
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}

	groups := []extract.SliceGroup{
		{Subrecord: "demographics", Fields: []string{"date_of_birth", "sex"}},
		{Subrecord: "diagnosis", Fields: []string{"condition"}},
	}

	now := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	dir := t.TempDir()

	path, err := WriteArchive(dir, "Male flu cohort", now, groups, sch, testResult())
	if err != nil {
		t.Fatalf("WriteArchive failed: %v", err)
	}
	if !strings.HasSuffix(path, "extract-male-flu-cohort-20260823-103000.zip") {
		t.Errorf("unexpected archive path: %s", path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer zr.Close()

	demographics := readCSV(t, &zr.Reader, "demographics.csv")
	wantHeader := []string{"Episode", "Date Of Birth", "Sex"}
	for i, h := range wantHeader {
		if demographics[0][i] != h {
			t.Errorf("header %d: got %q, want %q", i, demographics[0][i], h)
		}
	}
	if len(demographics) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(demographics))
	}
	if demographics[1][2] != "Male" || demographics[2][2] != "Female" {
		t.Errorf("unexpected sex values: %q, %q", demographics[1][2], demographics[2][2])
	}

	diagnosis := readCSV(t, &zr.Reader, "diagnosis.csv")
	if diagnosis[0][1] != "Condition Name" {
		t.Errorf("expected configured title, got %q", diagnosis[0][1])
	}
	// Second episode has no diagnosis records; only the first contributes.
	if len(diagnosis) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(diagnosis))
	}
	if diagnosis[2][1] != "Cough; Fever" {
		t.Errorf("list values should join with '; ', got %q", diagnosis[2][1])
	}
	if diagnosis[1][0] != "1" || diagnosis[2][0] != "1" {
		t.Errorf("episode linkage column wrong: %q, %q", diagnosis[1][0], diagnosis[2][0])
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"ward 9", "ward 9"},
		{float64(3), "3"},
		{float64(36.6), "36.6"},
		{true, "true"},
		{[]interface{}{"a", "b"}, "a; b"},
	}

	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
