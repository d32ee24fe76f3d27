package services

import (
	"strconv"
	"time"
)

// FormatCompact renders a magnitude with a T/B/M/K suffix at the usual
// thresholds, two-decimal precision. Zero maps to "-".
func FormatCompact(n float64) string {
	if n == 0 {
		return "-"
	}
	switch {
	case n >= 1e12:
		return strconv.FormatFloat(n/1e12, 'f', 2, 64) + "T"
	case n >= 1e9:
		return strconv.FormatFloat(n/1e9, 'f', 2, 64) + "B"
	case n >= 1e6:
		return strconv.FormatFloat(n/1e6, 'f', 2, 64) + "M"
	case n >= 1e3:
		return strconv.FormatFloat(n/1e3, 'f', 2, 64) + "K"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatAmount renders a dollar amount; undisclosed (zero) amounts get a
// fixed sentinel instead of "$-".
func FormatAmount(n float64) string {
	if n == 0 {
		return "Undisclosed"
	}
	return "$" + FormatCompact(n)
}

// FormatShortDate renders epoch seconds as a short display date.
func FormatShortDate(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format("Jan 2, 2006")
}
