// Package render writes extract results to disk: one CSV per subrecord in
// the slice set, bundled into a single zip archive.
package render

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mgrove/cohort/internal/client"
	"github.com/mgrove/cohort/internal/extract"
	"github.com/mgrove/cohort/internal/schema"
	"github.com/mgrove/cohort/internal/slugs"
)

// ArchiveName returns the archive filename for a named extract run.
func ArchiveName(name string, now time.Time) string {
	return fmt.Sprintf("extract-%s-%s.zip", slugs.Component(name), now.Format("20060102-150405"))
}

// WriteArchive writes the extract result as a zip of per-subrecord CSVs
// into dir and returns the archive path. Each CSV has one row per record,
// with an episode column linking rows across subrecords.
func WriteArchive(dir, name string, now time.Time, groups []extract.SliceGroup, sch *schema.Schema, result *client.ExtractResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, ArchiveName(name, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, group := range groups {
		w, err := zw.Create(group.Subrecord + ".csv")
		if err != nil {
			return "", fmt.Errorf("create %s.csv: %w", group.Subrecord, err)
		}
		if err := writeGroupCSV(w, group, sch, result); err != nil {
			return "", fmt.Errorf("write %s.csv: %w", group.Subrecord, err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	return path, nil
}

func writeGroupCSV(w io.Writer, group extract.SliceGroup, sch *schema.Schema, result *client.ExtractResult) error {
	cw := csv.NewWriter(w)

	header := []string{"Episode"}
	for _, field := range group.Fields {
		header = append(header, fieldTitle(sch, group.Subrecord, field))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, episode := range result.Episodes {
		for _, record := range episode[group.Subrecord] {
			row := []string{strconv.Itoa(i + 1)}
			for _, field := range group.Fields {
				row = append(row, formatValue(record[field]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func fieldTitle(sch *schema.Schema, subrecord, field string) string {
	if fd, err := sch.FindField(subrecord, field); err == nil {
		return fd.DisplayTitle()
	}
	return schema.TitleForName(field)
}

// formatValue renders one cell. List values are joined with "; ".
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, "; ")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
