package models

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type InvalidSortKey struct {
	Key string
}

func (e InvalidSortKey) Error() string {
	return fmt.Sprintf("invalid sort key %q. valid sort keys are %s",
		e.Key, strings.Join(SortKeys(), ", "))
}

var sortFields = map[string]func(a, b Record) int{
	"bailiwick": func(a, b Record) int { return cmp.Compare(a.Bailiwick, b.Bailiwick) },
	"count":     func(a, b Record) int { return cmp.Compare(a.Count, b.Count) },
	"rdata": func(a, b Record) int {
		return cmp.Compare(strings.Join(a.Rdata, " "), strings.Join(b.Rdata, " "))
	},
	"rrname":          func(a, b Record) int { return cmp.Compare(a.RRName, b.RRName) },
	"rrtype":          func(a, b Record) int { return cmp.Compare(a.RRType, b.RRType) },
	"time_first":      func(a, b Record) int { return cmp.Compare(a.TimeFirst, b.TimeFirst) },
	"time_last":       func(a, b Record) int { return cmp.Compare(a.TimeLast, b.TimeLast) },
	"zone_time_first": func(a, b Record) int { return cmp.Compare(a.ZoneTimeFirst, b.ZoneTimeFirst) },
	"zone_time_last":  func(a, b Record) int { return cmp.Compare(a.ZoneTimeLast, b.ZoneTimeLast) },
}

// SortKeys returns the recognized sort keys, sorted.
func SortKeys() []string {
	keys := make([]string, 0, len(sortFields))
	for key := range sortFields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Sort orders records in place by the named field. The sort is stable
// so ties keep the server's ordering.
func Sort(records []Record, key string, reverse bool) error {
	compare, ok := sortFields[key]
	if !ok {
		return InvalidSortKey{key}
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		if reverse {
			return compare(b, a)
		}
		return compare(a, b)
	})

	return nil
}
