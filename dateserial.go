package formula

import (
	"math"
	"time"
)

// Date/time serial constants. A date/time value is a number of days since
// the 1900 epoch, with the fractional part encoding time-of-day. The epoch
// is December 30, 1899, which keeps serials for March 1900 onward aligned
// with hosts that reproduce the historical 1900 leap year defect without
// reproducing the defect itself.
const (
	epochMs       = -2209161600000 // December 30, 1899 00:00:00 UTC in Unix ms
	msPerDay      = 86400000
	secondsPerDay = 86400
	maxSerial     = 2958465.0 // December 31, 9999
)

var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateToSerial converts calendar fields to a day serial. Month and day
// overflow normalizes the way the host application does (month 13 rolls
// into the next year). Results before the epoch are out of range.
func dateToSerial(year, month, day int64) (float64, *FormulaError) {
	if year < 0 || year > 9999 {
		return 0, errNum("year out of range")
	}
	// two-digit years are offset into the 1900s
	if year < 1900 {
		year += 1900
	}
	t := time.Date(int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
	serial := t.Sub(serialEpoch).Hours() / 24
	if serial < 0 || serial > maxSerial {
		return 0, errNum("date out of range")
	}
	return math.Floor(serial), nil
}

// serialToTime converts a day serial back to calendar time
func serialToTime(serial float64) (time.Time, *FormulaError) {
	if serial < 0 || serial > maxSerial+1 {
		return time.Time{}, errNum("serial out of range")
	}
	ms := int64(math.Round(serial * msPerDay))
	return serialEpoch.Add(time.Duration(ms) * time.Millisecond), nil
}

// timeFraction converts hours/minutes/seconds to a day fraction,
// normalizing overflow (MINUTE 90 adds an hour and a half)
func timeFraction(hour, minute, second int64) (float64, *FormulaError) {
	total := hour*3600 + minute*60 + second
	if total < 0 {
		return 0, errNum("time before midnight")
	}
	frac := float64(total%secondsPerDay) / secondsPerDay
	return frac, nil
}

// timeOfDay extracts the fractional day part of a serial as elapsed seconds
func timeOfDay(serial float64) float64 {
	frac := serial - math.Floor(serial)
	return math.Round(frac * secondsPerDay)
}
