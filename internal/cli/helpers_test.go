package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoadAndBuild(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	defPath := filepath.Join(dir, "flu.md")
	content := `---
name: flu-cohort
conjunction: all
criteria:
  - column: demographics
    field: sex
    query_type: Equals
    query: Male
---
# Flu cohort
`
	if err := os.WriteFile(defPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	def, q, err := loadAndBuild(defPath)
	if err != nil {
		t.Fatalf("loadAndBuild failed: %v", err)
	}

	if def.Name != "flu-cohort" {
		t.Errorf("unexpected name: %q", def.Name)
	}
	compiled := q.Compile()
	if len(compiled) != 1 || compiled[0].Combine != "and" {
		t.Errorf("unexpected compiled criteria: %+v", compiled)
	}
}

func TestLoadAndBuild_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	if _, _, err := loadAndBuild("does-not-exist.md"); err == nil {
		t.Error("expected an error for a missing definition")
	}
}

func TestLoadAndBuild_UnknownSliceField(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	defPath := filepath.Join(dir, "bad.md")
	content := `---
name: bad
slices:
  - imaging.modality
---
`
	if err := os.WriteFile(defPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}

	if _, _, err := loadAndBuild(defPath); err == nil {
		t.Error("expected an error for an unknown slice field")
	}
}
