package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SchemaFilename is the workspace-local schema file name.
const SchemaFilename = "schema.yaml"

// Load loads the schema from a workspace's schema.yaml file.
// Returns the built-in default schema if the file doesn't exist.
func Load(workspacePath string) (*Schema, error) {
	schemaPath := filepath.Join(workspacePath, SchemaFilename)

	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		return NewSchema(), nil
	}

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", schemaPath, err)
	}

	return Parse(data)
}

// Parse decodes a YAML schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	if len(s.Subrecords) == 0 {
		return NewSchema(), nil
	}

	s.normalize()

	// The mandatory extract fields must always be resolvable; merge in the
	// built-in demographics subrecord when the file omits it.
	if _, err := s.FindSubrecord("demographics"); err != nil {
		s.Subrecords = append(NewSchema().Subrecords, s.Subrecords...)
	}

	return &s, nil
}

// ParseJSON decodes a JSON schema document, as served by the extract API's
// schema endpoint.
func ParseJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	if len(s.Subrecords) == 0 {
		return NewSchema(), nil
	}

	s.normalize()
	return &s, nil
}

// CreateDefault writes a starter schema.yaml into the workspace.
func CreateDefault(workspacePath string) error {
	schemaPath := filepath.Join(workspacePath, SchemaFilename)

	if _, err := os.Stat(schemaPath); err == nil {
		return nil // Already exists
	}

	content := `# cohort schema: subrecords and their extractable fields
subrecords:
  - name: demographics
    single: true
    fields:
      - name: hospital_number
        type: string
      - name: name
        type: string
      - name: date_of_birth
        type: date
      - name: sex
        type: string
  - name: location
    single: true
    fields:
      - name: hospital
        type: string
      - name: ward
        type: string
      - name: bed
        type: string
      - name: date_of_admission
        type: date
  - name: diagnosis
    fields:
      - name: condition
        type: string
      - name: provisional
        type: boolean
      - name: date_of_diagnosis
        type: date
`

	if err := os.WriteFile(schemaPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	return nil
}
