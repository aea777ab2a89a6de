package impl

import (
	"strconv"
	"strings"
	"time"

	"todo/internal/domain/entity"
	"todo/internal/usecase"
)

const (
	dateLayout = "2006-01-02"
	weekDays   = 7
	monthDays  = 30
)

// dateRange is a half-open [From, To) window on creation time. A nil bound is open.
type dateRange struct {
	From *time.Time
	To   *time.Time
}

// resolveDateRange applies date, then day_group, then month. The first non-empty filter wins,
// even when it cannot be parsed, in which case no date restriction applies.
func resolveDateRange(input usecase.ListTasksInput, now time.Time, loc *time.Location) dateRange {
	switch {
	case input.Date != "":
		day, ok := parseDay(input.Date, loc)
		if !ok {
			return dateRange{}
		}

		return dayRange(day)
	case input.DayGroup != "":
		return dayGroupRange(entity.DayGroup(input.DayGroup), startOfDay(now.In(loc)))
	case input.Month != "":
		start, ok := parseMonth(input.Month, loc)
		if !ok {
			return dateRange{}
		}
		end := start.AddDate(0, 1, 0)

		return dateRange{From: &start, To: &end}
	default:
		return dateRange{}
	}
}

func dayGroupRange(group entity.DayGroup, today time.Time) dateRange {
	switch group {
	case entity.DayGroupToday:
		return dayRange(today)
	case entity.DayGroupYesterday:
		return dayRange(today.AddDate(0, 0, -1))
	case entity.DayGroupWeek:
		from := today.AddDate(0, 0, -weekDays)

		return dateRange{From: &from}
	case entity.DayGroupMonth:
		from := today.AddDate(0, 0, -monthDays)

		return dateRange{From: &from}
	default:
		return dateRange{}
	}
}

func dayRange(day time.Time) dateRange {
	end := day.AddDate(0, 0, 1)

	return dateRange{From: &day, To: &end}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// parseDay accepts YYYY-MM-DD or a full RFC 3339 timestamp and keeps only its calendar date.
func parseDay(value string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}

	return time.Time{}, false
}

// parseMonth accepts YYYY-MM. The month part may omit its leading zero.
func parseMonth(value string, loc *time.Location) (time.Time, bool) {
	yearPart, monthPart, found := strings.Cut(value, "-")
	if !found {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(yearPart))
	if err != nil || year < 1 {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(strings.TrimSpace(monthPart))
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc), true
}

// parseStatus returns nil for an empty status and false for a value outside the enum.
func parseStatus(value string) (*entity.TaskStatus, bool) {
	if value == "" {
		return nil, true
	}

	status := entity.TaskStatus(value)
	if !status.IsValid() {
		return nil, false
	}

	return &status, true
}

// pageBounds applies the default page size and clamps limit to [1, maxLimit] and skip to >= 0.
func pageBounds(skip, limit *int, defaultLimit, maxLimit int) (offset, size int) {
	size = defaultLimit
	if limit != nil {
		size = *limit
	}
	size = min(max(size, 1), maxLimit)

	if skip != nil && *skip > 0 {
		offset = *skip
	}

	return offset, size
}
