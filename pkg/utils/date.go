package utils

import (
	"errors"
	"fmt"
	"time"
)

var ErrEmptyDate = errors.New("date is required")

func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, ErrEmptyDate
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateStr, err)
	}

	return &date, nil
}

// ParseDateRange interpreta since/until e garante since <= until
func ParseDateRange(sinceStr, untilStr string) (time.Time, time.Time, error) {
	since, err := ParseDate(sinceStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("since: %w", err)
	}

	until, err := ParseDate(untilStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("until: %w", err)
	}

	if since.After(*until) {
		return time.Time{}, time.Time{}, fmt.Errorf("since (%s) is after until (%s)", sinceStr, untilStr)
	}

	return *since, *until, nil
}
