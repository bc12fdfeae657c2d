package seed

import (
	"strconv"
	"strings"
	"time"
)

// row is one CSV record keyed by header name.
type row map[string]string

// has reports whether the column exists in the file, even if empty.
func (r row) has(column string) bool {
	_, ok := r[column]
	return ok
}

// first returns the first non-empty value among columns, in order.
func (r row) first(columns ...string) string {
	for _, column := range columns {
		if v := strings.TrimSpace(r[column]); v != "" {
			return v
		}
	}
	return ""
}

func (r row) optional(column string) *string {
	v := strings.TrimSpace(r[column])
	if v == "" {
		return nil
	}
	return &v
}

var truthy = map[string]struct{}{
	"1":    {},
	"true": {},
	"t":    {},
	"yes":  {},
	"y":    {},
}

func parseBool(v string) bool {
	_, ok := truthy[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// boolColumn yields def when the column is absent from the file and the
// parsed value otherwise, so an empty cell reads as false.
func (r row) boolColumn(column string, def bool) bool {
	if !r.has(column) {
		return def
	}
	return parseBool(r[column])
}

// timeLayouts are tried in order; the first that parses wins.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	// ISO-8601 fallbacks
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTime returns the parsed value in UTC, or ok=false when v is empty or
// matches no layout.
func parseTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseID(v string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
