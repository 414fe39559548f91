package pathboard

import (
	"time"

	"pathboard.dev/pathboard/model"
)

// Alert schedules are evaluated against a local datetime in the
// transit system's timezone, never the device's. Manager converts
// instants before calling in; these functions only see wall-clock
// values.
//
// Alert data is externally sourced and best effort: a malformed
// schedule (no variant set, or a from date after its to date) is
// never active rather than an error.

// Reports whether the alert's schedule covers the given local
// datetime.
func IsActive(alert model.Alert, at model.DateTime) bool {
	return ScheduleActive(alert.Schedule, at)
}

// The alerts that apply to a train at a station at the given local
// datetime. Station membership, schedule activity and train filter
// must all match.
func ActiveAlertsFor(station string, train model.Train, at model.DateTime, alerts []model.Alert) []model.Alert {
	active := []model.Alert{}
	for _, alert := range alerts {
		if !coversStation(alert, station) {
			continue
		}
		if !ScheduleActive(alert.Schedule, at) {
			continue
		}
		if !alert.Trains.Matches(train.Headsign) {
			continue
		}
		active = append(active, alert)
	}
	return active
}

func ScheduleActive(s model.Schedule, at model.DateTime) bool {
	switch {
	case s.Once != nil:
		return onceActive(s.Once, at)
	case s.Daily != nil:
		return dailyActive(s.Daily, at)
	case s.Weekly != nil:
		return weeklyActive(s.Weekly, at)
	}
	return false
}

// Active iff from <= at < to.
func onceActive(w *model.OnceWindow, at model.DateTime) bool {
	return !at.Before(w.From) && at.Before(w.To)
}

func dailyActive(w *model.DailyWindow, at model.DateTime) bool {
	if w.From.After(w.To) {
		return false
	}
	if at.Date.Before(w.From) || at.Date.After(w.To) {
		return false
	}

	day := weekdayOf(at.Date)
	tod := at.Time.Minutes()
	start := w.Start.Minutes()
	end := w.End.Minutes()

	if end > start {
		return onDay(w.Days, day) && tod >= start && tod < end
	}

	// Overnight window. The early-morning tail belongs to the
	// previous day's occurrence: a Wednesday 22:00-10:00 window is
	// still active Thursday at 09:00, keyed by Wednesday's
	// membership in Days.
	if onDay(w.Days, day) && tod >= start {
		return true
	}
	previous := model.Weekday((int(day) + 6) % 7)
	return onDay(w.Days, previous) && tod < end
}

func weeklyActive(w *model.WeeklyWindow, at model.DateTime) bool {
	// The date range is the coarse gate; the weekly phase is the
	// fine gate within it.
	if w.From.After(w.To) {
		return false
	}
	if at.Date.Before(w.From) || at.Date.After(w.To) {
		return false
	}

	pos := minuteOfWeek(weekdayOf(at.Date), at.Time)
	start := minuteOfWeek(w.StartDay, w.StartTime)
	end := minuteOfWeek(w.EndDay, w.EndTime)

	if start == end {
		return false
	}
	if start < end {
		return pos >= start && pos < end
	}

	// Window wraps across the week boundary, e.g. starts Saturday
	// and ends Monday.
	return pos >= start || pos < end
}

// Position within the canonical week cycle, in minutes. The cycle
// starts Sunday 00:00.
func minuteOfWeek(day model.Weekday, t model.Clock) int {
	return int(day)*24*60 + t.Minutes()
}

func weekdayOf(d model.Date) model.Weekday {
	return model.Weekday(time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday())
}

func onDay(days []model.Weekday, day model.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func coversStation(alert model.Alert, station string) bool {
	for _, s := range alert.Stations {
		if s == station {
			return true
		}
	}
	return false
}
