// Package ical consumes read-only OTA calendar feeds. Only VEVENT
// start/end extraction is supported; this is not a general iCalendar
// implementation.
package ical

import (
	"strings"
	"time"

	"github.com/netfirms/staycal/internal/interval"
)

// Event is one busy block parsed from a feed. Start and End are calendar
// dates (midnight UTC) forming a half-open [Start, End) range.
type Event struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
	Title string    `json:"title"`
}

const defaultTitle = "OTA Booking"

// Parse extracts busy events from raw feed text. It never fails: events
// missing DTSTART are skipped, unparseable dates fall back (see
// parseDateTime), and malformed input yields an empty slice. Events keep
// source order and are not deduplicated.
func Parse(text string) []Event {
	events := make([]Event, 0)
	inEvent := false
	var cur map[string]string

	for _, line := range unfoldLines(text) {
		line = strings.TrimSpace(line)
		switch {
		case line == "BEGIN:VEVENT":
			inEvent = true
			cur = make(map[string]string)
		case line == "END:VEVENT":
			if inEvent {
				if ev, ok := buildEvent(cur); ok {
					events = append(events, ev)
				}
			}
			inEvent = false
			cur = nil
		case inEvent:
			key, val, found := strings.Cut(line, ":")
			if !found {
				continue
			}
			// DTSTART;VALUE=DATE and friends carry parameters on the
			// property name; key them by the bare property.
			norm := strings.ToUpper(strings.SplitN(key, ";", 2)[0])
			switch norm {
			case "DTSTART", "DTEND", "SUMMARY":
				cur[norm] = strings.TrimSpace(val)
			}
		}
	}
	return events
}

func buildEvent(props map[string]string) (Event, bool) {
	rawStart, ok := props["DTSTART"]
	if !ok || rawStart == "" {
		return Event{}, false
	}

	start := parseDateTime(propertyValue(rawStart))
	var end time.Time
	if rawEnd := props["DTEND"]; rawEnd != "" {
		end = parseDateTime(propertyValue(rawEnd))
	} else {
		// No DTEND: treat as a single-day block.
		end = start.AddDate(0, 0, 1)
	}

	s := interval.DateOf(start)
	e := interval.DateOf(end)
	if !e.After(s) {
		e = s.AddDate(0, 0, 1)
	}

	title := props["SUMMARY"]
	if title == "" {
		title = defaultTitle
	}
	return Event{Start: s, End: e, Title: title}, true
}

// propertyValue strips any leading parameter segments that survived the
// first colon split, keeping the text after the last colon.
func propertyValue(raw string) string {
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// parseDateTime accepts the three DTSTART/DTEND forms seen in OTA feeds:
// 20250105 (date), 20250105T120000Z (UTC) and 20250105T120000 (naive
// local). Anything else degrades to the first 8 characters as a date, and
// finally to today. It never fails.
func parseDateTime(val string) time.Time {
	v := strings.TrimSpace(val)

	if len(v) == 8 && isDigits(v) {
		if t, err := time.ParseInLocation("20060102", v, time.UTC); err == nil {
			return t
		}
	}
	if strings.HasSuffix(v, "Z") && len(v) >= 16 {
		if t, err := time.Parse("20060102T150405Z", v); err == nil {
			return t
		}
	}
	if strings.Contains(v, "T") && len(v) >= 15 {
		if t, err := time.ParseInLocation("20060102T150405", v, time.UTC); err == nil {
			return t
		}
	}
	if len(v) >= 8 {
		if t, err := time.ParseInLocation("20060102", v[:8], time.UTC); err == nil {
			return t
		}
	}
	return interval.DateOf(time.Now().UTC())
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// unfoldLines undoes RFC 5545 line folding: a line starting with a single
// space continues the previous logical line.
func unfoldLines(text string) []string {
	out := make([]string, 0)
	var prev string
	havePrev := false
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(raw, " ") && havePrev {
			prev += raw[1:]
			continue
		}
		if havePrev {
			out = append(out, prev)
		}
		prev = raw
		havePrev = true
	}
	if havePrev {
		out = append(out, prev)
	}
	return out
}
