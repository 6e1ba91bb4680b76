// Package definition loads saved extract definitions: markdown files with
// YAML frontmatter describing criteria and slices, and a prose body
// describing what the extract is for.
package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgrove/cohort/internal/extract"
	"github.com/mgrove/cohort/internal/schema"
)

// CriterionSpec is one filter row as written in frontmatter. Attributes may
// be left empty; incomplete rows are dropped at compile time, exactly as a
// half-edited row would be.
type CriterionSpec struct {
	Column    string `yaml:"column"`
	Field     string `yaml:"field"`
	QueryType string `yaml:"query_type"`
	Query     string `yaml:"query"`
}

// Definition is a parsed extract definition file.
type Definition struct {
	// Name is the frontmatter name, used for archive and history naming.
	// Falls back to the first markdown heading, then the file name.
	Name        string
	Conjunction string
	Criteria    []CriterionSpec
	// Slices are extra fields to extract, as "subrecord.field" references.
	// The mandatory fields are always included and need not be listed.
	Slices []string

	// Body is the markdown content after the frontmatter.
	Body string
}

type frontmatter struct {
	Name        string          `yaml:"name"`
	Conjunction string          `yaml:"conjunction"`
	Criteria    []CriterionSpec `yaml:"criteria"`
	Slices      []string        `yaml:"slices"`
}

// LoadFile reads and parses a definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, err)
	}

	def, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition %s: %w", path, err)
	}

	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return def, nil
}

// Parse parses definition content: a YAML frontmatter block delimited by
// '---' lines, followed by a markdown body.
func Parse(content string) (*Definition, error) {
	raw, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}

	def := &Definition{
		Name:        fm.Name,
		Conjunction: fm.Conjunction,
		Criteria:    fm.Criteria,
		Slices:      fm.Slices,
		Body:        body,
	}

	if def.Name == "" {
		def.Name = FirstHeading(body)
	}

	return def, nil
}

// splitFrontmatter separates the frontmatter block from the body. Content
// without frontmatter is all body.
func splitFrontmatter(content string) (raw, body string, err error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return "", content, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			raw = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return raw, body, nil
		}
	}

	return "", "", fmt.Errorf("unclosed frontmatter block")
}

// Build replays the definition through a fresh extract query, the same way
// an interactive session would: one row at a time, column first, with the
// row reset when the column changes underneath existing values.
func (d *Definition) Build(sch *schema.Schema) (*extract.Query, error) {
	q, err := extract.NewQuery(sch)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(d.Conjunction)) {
	case "", string(extract.ConjunctionAll):
		q.SetConjunction(extract.ConjunctionAll)
	case string(extract.ConjunctionAny):
		q.SetConjunction(extract.ConjunctionAny)
	default:
		return nil, fmt.Errorf("unknown conjunction %q (want \"all\" or \"any\")", d.Conjunction)
	}

	for i, spec := range d.Criteria {
		if i > 0 {
			q.AddRow()
		}
		rows := q.Criteria()
		row := rows[len(rows)-1]
		q.Select(row)

		row.Column = spec.Column
		q.ResetRow(row, extract.AttrColumn)
		row.Field = spec.Field
		row.QueryType = spec.QueryType
		row.Query = spec.Query
	}

	for _, ref := range d.Slices {
		subrecord, field, ok := strings.Cut(ref, ".")
		if !ok {
			return nil, fmt.Errorf("invalid slice reference %q (want \"subrecord.field\")", ref)
		}
		fd, err := sch.FindField(subrecord, field)
		if err != nil {
			return nil, err
		}
		q.AddSlice(fd)
	}

	return q, nil
}
