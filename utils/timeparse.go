package utils

import (
	"fmt"
	"sync"
	"time"

	"rotacare/config"
)

// All wall-clock parsing happens here, once, against the agency timezone.
// Nothing downstream re-derives date or time components from strings.

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	agencyLoc     *time.Location
	agencyLocOnce sync.Once
)

// AgencyLocation returns the timezone all wall-clock inputs are interpreted in.
func AgencyLocation() *time.Location {
	agencyLocOnce.Do(func() {
		loc, err := time.LoadLocation(config.AppConfig.Timezone)
		if err != nil {
			loc = time.UTC
		}
		agencyLoc = loc
	})
	return agencyLoc
}

// ResolveInterval converts a date ("YYYY-MM-DD") plus start/end times of day
// ("HH:mm") into absolute UTC instants. An end at or before the start is
// treated as overnight and rolls to the next day, so Start < End always holds.
func ResolveInterval(date, startTime, endTime string) (time.Time, time.Time, error) {
	start, err := ResolveInstant(date, startTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ResolveInstant(date, endTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

// ResolveInstant converts a date plus a time of day into a UTC instant.
func ResolveInstant(date, timeOfDay string) (time.Time, error) {
	loc := AgencyLocation()
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, timeOfDay, err)
	}
	return t.UTC(), nil
}

// DayWindow returns the UTC instants bounding the agency-local calendar day.
func DayWindow(date string) (time.Time, time.Time, error) {
	loc := AgencyLocation()
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}

// AddDays shifts a "YYYY-MM-DD" date by whole calendar days in agency time.
func AddDays(date string, days int) (string, error) {
	day, err := time.ParseInLocation(dateLayout, date, AgencyLocation())
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.AddDate(0, 0, days).Format(dateLayout), nil
}

// FormatDate renders an instant as the agency-local "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.In(AgencyLocation()).Format(dateLayout)
}

// FormatTimeOfDay renders an instant as the agency-local "HH:mm".
func FormatTimeOfDay(t time.Time) string {
	return t.In(AgencyLocation()).Format(timeLayout)
}
