package util

import (
	"strconv"
	"strings"
	"time"
)

// TimelineLayout is the ISO form used for timeline row dates (always UTC).
var TimelineLayout = "2006-01-02T15:04:05"

// ParseUnixSeconds parses the provider's string epoch ("1700000000").
func ParseUnixSeconds(raw string) (time.Time, error) {
	sec, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(sec), 0).UTC(), nil
}

func FormatTimeline(t time.Time) string {
	return t.UTC().Format(TimelineLayout)
}

// CountryFromHL returns the region part of a host language such as "en-US".
func CountryFromHL(hl string) string {
	if len(hl) < 2 {
		return ""
	}
	return strings.ToUpper(hl[len(hl)-2:])
}
