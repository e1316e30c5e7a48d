package logparse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Serial dates outside these years are rejected, so stray numbers such as a
// bare year are not read as dates.
const (
	minSerialYear = 1970
	maxSerialYear = 2100
	// maxSerial is 9999-12-31, the last date Excel can store.
	maxSerial = 2958465
)

const secondsPerDay = 86400

// clockLayout is the 12-hour clock with seconds used by the log export.
// "3" accepts one or two hour digits.
const clockLayout = "3:04:05 PM"

// parseDate reads a calendar date from an ISO string or an Excel serial
// number. The result is a UTC midnight.
func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	if f, ok := parseSerial(v); ok && f >= 1 && f <= maxSerial {
		t, err := excelize.ExcelDateToTime(f, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", v, err)
		}
		if t.Year() < minSerialYear || t.Year() > maxSerialYear {
			return time.Time{}, fmt.Errorf("date serial %q is outside %d-%d", v, minSerialYear, maxSerialYear)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q (want YYYY-MM-DD)", v)
}

// parseClock reads a time of day from a 12-hour clock string such as
// "08:15:00 AM" or from an Excel time fraction. It returns the offset from
// midnight.
func parseClock(v string) (time.Duration, error) {
	if t, err := time.Parse(clockLayout, strings.ToUpper(v)); err == nil {
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, nil
	}
	if f, ok := parseSerial(v); ok && f >= 0 && f <= maxSerial {
		whole, frac := math.Modf(f)
		// Only 0 (midnight) may come without a fractional day part.
		if frac == 0 && whole != 0 {
			return 0, fmt.Errorf("cannot parse time %q: serial has no time of day", v)
		}
		secs := math.Round(frac * secondsPerDay)
		if secs >= secondsPerDay {
			secs = secondsPerDay - 1
		}
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("cannot parse time %q (want hh:mm:ss AM/PM)", v)
}

// parseSerial reads a finite Excel serial number.
func parseSerial(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
