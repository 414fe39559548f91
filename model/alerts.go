package model

import (
	"fmt"
	"strings"
	"time"
)

// A service alert, as published in the alerts document. Alerts are
// declarative and immutable; the whole set is replaced on refresh.
type Alert struct {
	// Station API names the alert applies to.
	Stations []string `json:"stations"`

	Schedule Schedule    `json:"schedule"`
	Trains   TrainFilter `json:"trains,omitempty"`

	Message *AlertText `json:"message,omitempty"`
	URL     *AlertText `json:"url,omitempty"`
}

// Bilingual alert text.
type AlertText struct {
	En string `json:"en"`
	Es string `json:"es,omitempty"`
}

// Filters which trains an alert applies to. An empty HeadSigns list
// matches every train.
type TrainFilter struct {
	HeadSigns []string `json:"headSigns,omitempty"`
}

// Reports whether a train with the given headsign is covered by the
// filter. Matching is case-insensitive substring containment, so a
// filter entry "33rd" covers the "33rd Street" headsign.
func (f TrainFilter) Matches(headsign string) bool {
	if len(f.HeadSigns) == 0 {
		return true
	}
	h := strings.ToLower(headsign)
	for _, label := range f.HeadSigns {
		if strings.Contains(h, strings.ToLower(label)) {
			return true
		}
	}
	return false
}

// When an alert is in effect. Exactly one of the variants should be
// set; a schedule with none set is never active.
type Schedule struct {
	Once   *OnceWindow   `json:"once,omitempty"`
	Daily  *DailyWindow  `json:"repeatingDaily,omitempty"`
	Weekly *WeeklyWindow `json:"repeatingWeekly,omitempty"`
}

// A single absolute window. Inclusive of From, exclusive of To.
type OnceWindow struct {
	From DateTime `json:"from"`
	To   DateTime `json:"to"`
}

// A window repeating on the listed weekdays, between the From and To
// dates (inclusive). End at or before Start means the window runs
// overnight into the following calendar day.
type DailyWindow struct {
	Days  []Weekday `json:"days"`
	Start Clock     `json:"start"`
	End   Clock     `json:"end"`
	From  Date      `json:"from"`
	To    Date      `json:"to"`
}

// A single contiguous window per week, from (StartDay, StartTime) to
// (EndDay, EndTime), possibly wrapping around the end of the week.
// From/To dates bound the recurrence.
type WeeklyWindow struct {
	StartDay  Weekday `json:"startDay"`
	StartTime Clock   `json:"startTime"`
	EndDay    Weekday `json:"endDay"`
	EndTime   Clock   `json:"endTime"`
	From      Date    `json:"from"`
	To        Date    `json:"to"`
}

// A calendar date, without timezone. Serialized as "2006-01-02".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) After(o Date) bool {
	return o.Before(d)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date '%s'", s)
	}
	return DateOf(t), nil
}

// A time of day, without timezone. Serialized as "15:04".
type Clock struct {
	Hour   int
	Minute int
}

func NewClock(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day '%s'", s)
	}
	return ClockOf(t), nil
}

// A date and time of day, without timezone. Serialized as
// "2006-01-02T15:04".
type DateTime struct {
	Date Date
	Time Clock
}

func NewDateTime(year int, month time.Month, day, hour, minute int) DateTime {
	return DateTime{
		Date: NewDate(year, month, day),
		Time: NewClock(hour, minute),
	}
}

func DateTimeOf(t time.Time) DateTime {
	return DateTime{Date: DateOf(t), Time: ClockOf(t)}
}

func (dt DateTime) Before(o DateTime) bool {
	if dt.Date != o.Date {
		return dt.Date.Before(o.Date)
	}
	return dt.Time.Minutes() < o.Time.Minutes()
}

func (dt DateTime) After(o DateTime) bool {
	return o.Before(dt)
}

func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	parts := strings.SplitN(s, "T", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid datetime '%s'", s)
	}
	date, err := ParseDate(parts[0])
	if err != nil {
		return err
	}
	clock, err := ParseClock(parts[1])
	if err != nil {
		return err
	}
	*dt = DateTime{Date: date, Time: clock}
	return nil
}

// A day of week. Serialized as the lowercase English name.
type Weekday time.Weekday

const (
	Sunday    = Weekday(time.Sunday)
	Monday    = Weekday(time.Monday)
	Tuesday   = Weekday(time.Tuesday)
	Wednesday = Weekday(time.Wednesday)
	Thursday  = Weekday(time.Thursday)
	Friday    = Weekday(time.Friday)
	Saturday  = Weekday(time.Saturday)
)

func (w Weekday) String() string {
	return strings.ToLower(time.Weekday(w).String())
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	return []byte(`"` + w.String() + `"`), nil
}

func (w *Weekday) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	parsed, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func ParseWeekday(s string) (Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return Weekday(d), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday '%s'", s)
}

// Every day of the week, Sunday first.
func AllWeekdays() []Weekday {
	return []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

func unquote(data []byte) (string, error) {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expected string, got %s", s)
	}
	return s[1 : len(s)-1], nil
}
