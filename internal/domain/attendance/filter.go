package attendance

import (
	"fmt"
	"time"
)

// FilterByRange keeps records with start <= Date <= end, preserving order.
// An empty bound is open. Bounds are calendar dates; a malformed bound is an
// error. With no bounds at all the input is returned unchanged.
func FilterByRange(records []Record, start, end string) ([]Record, error) {
	if start == "" && end == "" {
		return records, nil
	}

	from, err := parseBound(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	to, err := parseBound(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	result := make([]Record, 0, len(records))
	for _, r := range records {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		if start != "" && d.Before(from) {
			continue
		}
		if end != "" && d.After(to) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
