package attendance

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DailyTallies counts effective statuses for a single day.
type DailyTallies struct {
	Marked  int `json:"marked"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
}

// Unmarked returns how many of totalEmployees have no record, never below zero.
func (t DailyTallies) Unmarked(totalEmployees int) int {
	if totalEmployees <= t.Marked {
		return 0
	}
	return totalEmployees - t.Marked
}

// TrendPoint is one day of a trailing window.
type TrendPoint struct {
	Date         string `json:"date"`
	DayLabel     string `json:"day"`
	PresentCount int    `json:"present_count"`
}

// EffectiveTime is the instant used to order records: Timestamp when set,
// otherwise Date at midnight UTC.
func EffectiveTime(r Record) (time.Time, error) {
	if r.Timestamp != nil {
		return *r.Timestamp, nil
	}
	t, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("record %q has date %q: %w", r.ID, r.Date, ErrInvalidDate)
	}
	return t, nil
}

// LatestByEmployee keeps one record per employee: the one with the greatest
// EffectiveTime. Grouping is by employee only, across all dates; callers that
// want "latest for a day" must FilterByDate first. Records whose time cannot
// be determined are logged and dropped. Output follows the order in which
// employees first appear in records.
func LatestByEmployee(records []Record) []Record {
	type candidate struct {
		record Record
		at     time.Time
	}

	latest := make(map[string]candidate, len(records))
	order := make([]string, 0)

	for _, r := range records {
		at, err := EffectiveTime(r)
		if err != nil {
			slog.Warn("Skipping attendance record with unparseable date", "employee_id", r.EmployeeID, "error", err)
			continue
		}
		existing, ok := latest[r.EmployeeID]
		if !ok {
			order = append(order, r.EmployeeID)
			latest[r.EmployeeID] = candidate{record: r, at: at}
			continue
		}
		if at.After(existing.at) {
			latest[r.EmployeeID] = candidate{record: r, at: at}
		}
	}

	result := make([]Record, 0, len(order))
	for _, employeeID := range order {
		result = append(result, latest[employeeID].record)
	}
	return result
}

// FilterByDate keeps records whose Date equals date exactly. No normalisation
// is applied; both sides are expected in YYYY-MM-DD form.
func FilterByDate(records []Record, date string) []Record {
	result := make([]Record, 0)
	for _, r := range records {
		if r.Date == date {
			result = append(result, r)
		}
	}
	return result
}

// ComputeDailyTallies counts statuses case-insensitively. records should
// already be limited to one day and deduplicated with LatestByEmployee.
func ComputeDailyTallies(records []Record) DailyTallies {
	tallies := DailyTallies{Marked: len(records)}
	for _, r := range records {
		switch strings.ToLower(string(r.Status)) {
		case "present":
			tallies.Present++
		case "absent":
			tallies.Absent++
		case "leave":
			tallies.Leave++
		}
	}
	return tallies
}

// ComputeTrailingWindow returns windowSizeDays points, oldest first, ending on
// reference's calendar date. Days without data report zero.
func ComputeTrailingWindow(all []Record, windowSizeDays int, reference time.Time) []TrendPoint {
	if windowSizeDays <= 0 {
		return []TrendPoint{}
	}

	day := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, reference.Location())
	points := make([]TrendPoint, 0, windowSizeDays)

	for i := windowSizeDays - 1; i >= 0; i-- {
		d := day.AddDate(0, 0, -i)
		dateStr := d.Format(dateLayout)
		effective := LatestByEmployee(FilterByDate(all, dateStr))

		points = append(points, TrendPoint{
			Date:         dateStr,
			DayLabel:     d.Format("Mon"),
			PresentCount: ComputeDailyTallies(effective).Present,
		})
	}
	return points
}

// RecentActivity orders records most recent first and keeps at most limit.
// Records without a usable time sort last.
func RecentActivity(records []Record, limit int) []Record {
	type timed struct {
		record Record
		at     time.Time
		ok     bool
	}

	items := make([]timed, 0, len(records))
	for _, r := range records {
		at, err := EffectiveTime(r)
		items = append(items, timed{record: r, at: at, ok: err == nil})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ok != items[j].ok {
			return items[i].ok
		}
		return items[i].at.After(items[j].at)
	})

	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}

	result := make([]Record, 0, len(items))
	for _, item := range items {
		result = append(result, item.record)
	}
	return result
}
