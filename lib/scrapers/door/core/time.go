package core

import (
	"strings"
	"time"

	"door-backend/lib/timezone"
)

// the portal renders dates in a handful of korean-locale shapes
// depending on the page, all without an offset
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"06-01-02 15:04",
	"06-01-02",
}

// ParseDate reads one of the portal's locale date renderings into KST.
// ok is false for empty or unrecognized text: an absent date is
// absent, not the zero time.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, text, timezone.Location)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange reads a submission window rendered as
// "YY-MM-DD HH:mm ~ YY-MM-DD HH:mm".
func ParseDateRange(text string) (DateRange, bool) {
	parts := strings.SplitN(text, "~", 2)
	if len(parts) != 2 {
		return DateRange{}, false
	}
	from, ok := ParseDate(parts[0])
	if !ok {
		return DateRange{}, false
	}
	to, ok := ParseDate(parts[1])
	if !ok {
		return DateRange{}, false
	}
	return DateRange{From: from, To: to}, true
}
