package playback

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Parses a polling interval given in seconds ("5", "2.5").
// Rejects values that are not finite, not positive, or too small or large for a time.Duration.
func ParseSeconds(value string) (interval time.Duration, err error) {
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		err = fmt.Errorf("could not convert '%s' to a number", value)
		return
	}
	if math.IsNaN(seconds) || seconds <= 0 {
		err = fmt.Errorf("interval must be positive")
		return
	}
	if seconds > math.MaxInt64/float64(time.Second) {
		err = fmt.Errorf("interval '%s' is too large", value)
		return
	}

	interval = time.Duration(seconds * float64(time.Second))
	if interval <= 0 {
		err = fmt.Errorf("interval must be positive")
	}
	return
}

// Seconds without trailing zeros, "5" or "2.5"
func FormatSeconds(interval time.Duration) (text string) {
	text = strconv.FormatFloat(interval.Seconds(), 'f', -1, 64)
	return
}
