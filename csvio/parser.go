// Package csvio parses and produces the delimited files used by the data
// import/export screens. The parser is schema driven: callers declare the
// expected columns and get back typed rows plus a flat list of per-row
// error messages, so one bad line never aborts a whole import.
package csvio

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Field describes one expected CSV column.
type Field struct {
	// Header is matched case-insensitively against the file's first line.
	Header string
	// Key is the target key in the parsed row. The reserved key "date"
	// routes the value through date normalization instead of Transform.
	Key      string
	Required bool
	// Validate, when set, rejects a non-empty value before transformation.
	Validate func(string) bool
	// Transform converts the raw cell into its typed value. It receives ""
	// for optional columns left empty.
	Transform func(string) (any, error)
}

// Row is one parsed line keyed by the schema's target keys.
type Row map[string]any

// Result carries the rows that parsed cleanly and every error encountered.
// When a required header is missing entirely, Rows is empty and Errors has
// exactly one entry.
type Result struct {
	Rows   []Row
	Errors []string
}

// DateKey is the row key that triggers built-in date normalization.
const DateKey = "date"

var (
	ddmmyyyyRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	quotedRe   = regexp.MustCompile(`^"(.*)"$`)
)

var errDateFormat = errors.New("invalid date format, use DD/MM/YYYY or YYYY-MM-DD")

// NormalizeDate accepts DD/MM/YYYY or YYYY-MM-DD and returns YYYY-MM-DD.
func NormalizeDate(value string) (string, error) {
	if m := ddmmyyyyRe.FindStringSubmatch(value); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1], nil
	}
	if isoDateRe.MatchString(value) {
		return value, nil
	}
	return "", errDateFormat
}

// Parse converts raw CSV content into rows against the declared schema.
// The separator is sniffed from the first line (semicolon when present,
// comma otherwise) and applies to the whole file. Reported row numbers are
// 1-based file lines, so the first data line is row 2. Pure: no side
// effects on its inputs.
func Parse(content string, fields []Field) Result {
	lines := strings.Split(content, "\n")

	sep := byte(',')
	if strings.Contains(lines[0], ";") {
		sep = ';'
	}

	if len(lines) < 2 {
		return Result{Errors: []string{"file is empty or contains only a header"}}
	}

	headers := strings.Split(lines[0], string(sep))
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var missing []string
	for _, f := range fields {
		if f.Required && headerIndex(headers, f.Header) == -1 {
			missing = append(missing, f.Header)
		}
	}
	if len(missing) > 0 {
		return Result{Errors: []string{"missing required columns: " + strings.Join(missing, ", ")}}
	}

	var result Result
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		values := splitLine(line, sep)

		row := Row{}
		hasError := false
		for _, f := range fields {
			idx := headerIndex(headers, f.Header)
			if idx == -1 {
				if f.Required {
					result.Errors = append(result.Errors, fmt.Sprintf("Row %d: column %s missing", i+1, f.Header))
					hasError = true
				}
				continue
			}

			var value string
			if idx < len(values) {
				value = values[idx]
			}

			if f.Required && value == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing value for %s", i+1, f.Header))
				hasError = true
				continue
			}

			if value != "" && f.Validate != nil && !f.Validate(value) {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid value for %s", i+1, f.Header))
				hasError = true
				continue
			}

			switch {
			case f.Key == DateKey:
				normalized, err := NormalizeDate(value)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s for %s", i+1, err, f.Header))
					hasError = true
					continue
				}
				row[f.Key] = normalized
			case f.Transform != nil:
				v, err := f.Transform(value)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s for %s", i+1, err, f.Header))
					hasError = true
					continue
				}
				row[f.Key] = v
			default:
				row[f.Key] = value
			}
		}

		if !hasError {
			result.Rows = append(result.Rows, row)
		}
	}

	return result
}

func headerIndex(headers []string, header string) int {
	header = strings.ToLower(header)
	for i, h := range headers {
		if h == header {
			return i
		}
	}
	return -1
}

// splitLine scans character by character: the separator only delimits
// outside a quoted span, and a bare quote toggles the span. Values are
// trimmed and then cleaned of any surviving quoting (leading/trailing pair
// stripped, doubled quotes collapsed) as a separate pass.
func splitLine(line string, sep byte) []string {
	var values []string
	var current strings.Builder
	insideQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			insideQuotes = !insideQuotes
		case ch == sep && !insideQuotes:
			values = append(values, cleanValue(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	values = append(values, cleanValue(current.String()))

	return values
}

func cleanValue(v string) string {
	cleaned := strings.TrimSpace(quotedRe.ReplaceAllString(strings.TrimSpace(v), "$1"))
	return strings.ReplaceAll(cleaned, `""`, `"`)
}
