package transform

import (
	"strings"
	"time"
)

// dateInputLayouts are tried in order when parsing a date value.
var dateInputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

var dateOutputLayouts = map[string]string{
	DateDMY: "02/01/2006",
	DateYMD: "2006-01-02",
	DateMDY: "01/02/2006",
	DateISO: "2006-01-02T15:04:05.000Z",
}

// ParseDate parses the layouts the integration runtime accepts, in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateInputLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

func formatDate(value any, spec Spec) (any, bool) {
	layout, ok := dateOutputLayouts[spec.OutputFormat]
	if !ok {
		return nil, false
	}

	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v.UTC()
	case string:
		t, ok = ParseDate(v)
		if !ok {
			return nil, false
		}
	default:
		return nil, false
	}

	return t.Format(layout), true
}
