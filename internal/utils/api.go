package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ParseIntParam retrieves an int value from the provided URL query parameters.
// If the key is not present it returns def. An invalid value returns 0 and updates the fieldErrors map.
func ParseIntParam(params url.Values, key string, def int, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := strings.TrimSpace(params.Get(key))
	if val == "" {
		return def, fieldErrors
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return 0, fieldErrors
	}
	return i, fieldErrors
}

var ErrInvalidStartTime = errors.New("start time must be epoch milliseconds, RFC 3339, YYYY-MM-DDTHH:MM or HH:MM")

// ParseStartTime parses a walk start time.
// It supports epoch timestamps (in milliseconds), RFC 3339, local
// "YYYY-MM-DDTHH:MM" and "HH:MM" on the date of now. Local forms are read in
// loc. An empty value is now truncated to the minute.
func ParseStartTime(value string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	value = strings.TrimSpace(value)
	if value == "" {
		return now.Truncate(time.Minute), nil
	}

	if epochMillis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(epochMillis).In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", value, loc); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}

	return time.Time{}, ErrInvalidStartTime
}
