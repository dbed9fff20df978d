package models

import (
	"fmt"
	"strconv"
	"time"
)

var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseTime accepts a unix epoch, a date, or a date with a time of day
// (both interpreted as UTC) and returns the epoch seconds.
func ParseTime(s string) (int64, error) {
	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return epoch, nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Unix(), nil
		}
	}

	return 0, fmt.Errorf("invalid time %q", s)
}
