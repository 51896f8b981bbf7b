package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/searchlite/searchlite/pkg/domain"
	"github.com/searchlite/searchlite/pkg/registry"
)

// RenderResults writes a batch of matched records as aligned plain text, one
// block per record.
func RenderResults(w io.Writer, entityName string, records []domain.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "No results found in %s\n", entityName)
		return err
	}

	for i, record := range records {
		if _, err := fmt.Fprintf(w, "--- %s %d of %d ---\n", entityName, i+1, len(records)); err != nil {
			return err
		}
		if err := RenderRecord(w, record); err != nil {
			return err
		}
	}
	return nil
}

// RenderRecord writes one record as "field  value" lines with field names
// sorted and values aligned.
func RenderRecord(w io.Writer, record domain.Record) error {
	fields := sortedFields(record)

	width := 0
	for _, field := range fields {
		if len(field) > width {
			width = len(field)
		}
	}

	for _, field := range fields {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, field, formatValue(record[field])); err != nil {
			return err
		}
	}
	return nil
}

// RenderRelated writes the records each relation resolved to, indented under
// the record they belong to.
func RenderRelated(w io.Writer, sets []registry.RelatedSet) error {
	for _, set := range sets {
		if _, err := fmt.Fprintf(w, "  related %s (via %s):\n", set.Relation.To, set.Relation.Via); err != nil {
			return err
		}
		if len(set.Records) == 0 {
			if _, err := fmt.Fprintln(w, "    (none)"); err != nil {
				return err
			}
			continue
		}
		for _, record := range set.Records {
			if _, err := fmt.Fprintf(w, "    %s\n", renderInline(record)); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderInline formats a record as a single "field=value, ..." line.
func renderInline(record domain.Record) string {
	fields := sortedFields(record)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + "=" + formatValue(record[field])
	}
	return strings.Join(parts, ", ")
}

func sortedFields(record domain.Record) []string {
	fields := make([]string, 0, len(record))
	for field := range record {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		parts := make([]string, len(v))
		for i, element := range v {
			parts[i] = formatValue(element)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
