package track

import (
	"fmt"
	"strings"
)

// Splits a raw line into trimmed fields.
// A line wrapped in one pair of double quotes has them removed first.
// Commas always separate fields, there is no escaping.
func SplitLine(line string) (fields []string) {
	line = strings.TrimSpace(line)
	if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		line = line[1 : len(line)-1]
	}

	fields = strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return
}

// Pairs header names with the values of a line
func Zip(fieldnames []string, values []string) (row Row, err error) {
	if len(fieldnames) != len(values) {
		err = fmt.Errorf("%w: expected %d fields, got %d", ErrColumnMismatch, len(fieldnames), len(values))
		return
	}

	row = make(Row, len(fieldnames))
	for i, name := range fieldnames {
		row[name] = values[i]
	}
	return
}

// Value of the column resolved for role, reports false when the role or value is absent
func (row Row) Get(keys DiscoveredKeys, role Role) (value string, ok bool) {
	column, resolved := keys[role]
	if !resolved {
		return
	}
	value, ok = row[column]
	return
}
