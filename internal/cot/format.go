package cot

import (
	"csvcot/internal/global"
	"math"
	"strconv"
	"strings"
	"time"
)

// Shortest round-trip decimal that always carries a fractional part (45 -> "45.0").
// Exponents below -4 or from 16 up switch to exponent form ("5.14444e-08", "1e+16"),
// non-finite values render as inf, -inf and nan.
func formatFloat(value float64) (text string) {
	switch {
	case math.IsNaN(value):
		text = "nan"
		return
	case math.IsInf(value, 1):
		text = "inf"
		return
	case math.IsInf(value, -1):
		text = "-inf"
		return
	}

	text = strconv.FormatFloat(value, 'e', -1, 64)
	exponent, err := strconv.Atoi(text[strings.LastIndexByte(text, 'e')+1:])
	if err == nil && (exponent < -4 || exponent >= 16) {
		return
	}

	text = strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return
}

func formatTime(t time.Time) (text string) {
	text = t.UTC().Format(global.CotTimeFormat)
	return
}
