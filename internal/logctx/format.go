package logctx

import (
	"fmt"
	"strings"
	"time"
)

// Stringify full event
func (event Event) Format() (text string) {
	var parts []string
	if !event.Timestamp.IsZero() {
		parts = append(parts, "["+padTimestamp(event.Timestamp)+"]")
	}
	if len(event.Tags) > 0 {
		parts = append(parts, "["+strings.Join(event.Tags, "/")+"]")
	}
	if event.Severity != "" {
		parts = append(parts, "["+event.Severity+"]")
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}

	// No newline, message creator determines newlines
	text = strings.Join(parts, " ")
	return
}

// Ensures fixed length strings for timestamps
func padTimestamp(timestamp time.Time) (formatted string) {
	formatted = timestamp.Format(time.RFC3339Nano)

	dot := strings.IndexByte(formatted, '.')
	if dot < 0 {
		return
	}

	// Fraction runs until the zone designator
	zoneStart := strings.IndexAny(formatted[dot:], "Z+-")
	if zoneStart < 0 {
		return
	}
	zoneStart += dot

	fraction := formatted[dot+1 : zoneStart]
	fraction += strings.Repeat("0", 9-len(fraction))

	formatted = fmt.Sprintf("%s.%s%s", formatted[:dot], fraction, formatted[zoneStart:])
	return
}
