package header

import (
	"fmt"
	"strings"

	"csv-mapper/diagnostic"
	"csv-mapper/internal/match"
	"csv-mapper/mapping"
)

//go:generate go tool stringer -type=Status -linecomment -output=status_string.go

// Status is the outcome of matching one header column.
type Status int

const (
	StatusMatched   Status = iota // matched
	StatusDuplicate               // duplicate
	StatusUnmatched               // unmatched
)

// suggestionLimit caps the "did you mean" list of an unmatched column.
const suggestionLimit = 3

// Column describes one header cell and the field it resolved to.
type Column struct {
	// Index is the zero-based column position.
	Index int
	// Raw is the cell text as read from the file.
	Raw string
	// Name is Raw with spaces and double quotes removed.
	Name string
	// Field is the matched field, empty when unmatched.
	Field string
	Status Status
	// Shadowed is the earlier column index a duplicate replaced, or -1.
	Shadowed    int
	Suggestions []string
}

// Analyze matches every cell of a header line against field names.
// Matching is case-insensitive after normalization. When two columns match
// the same field, the later column wins and the earlier one is reported as
// shadowed on the later column.
func Analyze(line string, sep rune, fields []string) []Column {
	cells := strings.Split(match.StripBOM(line), string(sep))
	columns := make([]Column, 0, len(cells))
	seen := make(map[string]int, len(fields))

	for i, raw := range cells {
		col := Column{Index: i, Raw: raw, Name: match.NormalizeHeader(raw), Shadowed: -1}

		field, ok := match.FindFold(col.Name, fields)
		switch {
		case !ok:
			col.Status = StatusUnmatched
			col.Suggestions = match.Suggest(col.Name, fields, match.DefaultSuggestionThreshold, suggestionLimit)
		case hasIndex(seen, field):
			col.Field = field
			col.Status = StatusDuplicate
			col.Shadowed = seen[field]
			seen[field] = i
		default:
			col.Field = field
			col.Status = StatusMatched
			seen[field] = i
		}

		columns = append(columns, col)
	}

	return columns
}

// Infer builds a mapping table from a header line. Unmatched columns are
// reported to sink as warnings and never fail inference.
func Infer(line string, sep rune, fields []string, sink diagnostic.Sink) *mapping.Table {
	if sink == nil {
		sink = diagnostic.Discard
	}

	table := mapping.NewTable()

	for _, col := range Analyze(line, sep, fields) {
		switch col.Status {
		case StatusUnmatched:
			sink.Emit(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityWarning,
				Code:        diagnostic.CodeUnmatchedColumn,
				Message:     fmt.Sprintf("cannot autoset %s", col.Name),
				Column:      col.Index,
				Suggestions: col.Suggestions,
			})

			continue
		case StatusDuplicate:
			sink.Emit(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityInfo,
				Code:     diagnostic.CodeDuplicateColumn,
				Message:  fmt.Sprintf("replaces column %d", col.Shadowed),
				Column:   col.Index,
				Field:    col.Field,
			})
		}

		// Index is never negative.
		_ = table.Set(col.Field, col.Index)
	}

	return table
}

func hasIndex(m map[string]int, key string) bool {
	_, ok := m[key]
	return ok
}
