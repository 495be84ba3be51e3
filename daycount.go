package formula

import (
	"errors"
	"time"
)

// Day-count conventions selected by a basis code, used by the financial
// date functions. Invalid input returns a Go error which calling function
// bodies map to #NUM!.
//
// basis 0: US (NASD) 30/360
// basis 1: actual/actual
// basis 2: actual/360
// basis 3: actual/365
// basis 4: European 30/360

var errBasis = errors.New("invalid basis code")

// days360US counts days between two dates under the US (NASD) 30/360
// convention
func days360US(start, end time.Time) int {
	d1, d2 := start.Day(), end.Day()
	m1, m2 := int(start.Month()), int(end.Month())
	y1, y2 := start.Year(), end.Year()

	if d1 == 31 || isLastDayOfFebruary(start) {
		d1 = 30
	}
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}
	if isLastDayOfFebruary(start) && isLastDayOfFebruary(end) {
		d2 = 30
	}
	return (y2-y1)*360 + (m2-m1)*30 + (d2 - d1)
}

// days360EU counts days under the European 30/360 convention
func days360EU(start, end time.Time) int {
	d1, d2 := start.Day(), end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 {
		d2 = 30
	}
	return (end.Year()-start.Year())*360 + (int(end.Month())-int(start.Month()))*30 + (d2 - d1)
}

func isLastDayOfFebruary(t time.Time) bool {
	return t.Month() == time.February && t.AddDate(0, 0, 1).Month() == time.March
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// yearFraction computes the fraction of a year between two dates under the
// given basis code
func yearFraction(start, end time.Time, basis int64) (float64, error) {
	if end.Before(start) {
		start, end = end, start
	}
	actualDays := end.Sub(start).Hours() / 24

	switch basis {
	case 0:
		return float64(days360US(start, end)) / 360, nil
	case 1:
		// actual/actual: denominator is the average year length over the
		// span when it crosses years, else the start year's length
		y1, y2 := start.Year(), end.Year()
		if y1 == y2 {
			if isLeapYear(y1) {
				return actualDays / 366, nil
			}
			return actualDays / 365, nil
		}
		totalDays := 0.0
		for y := y1; y <= y2; y++ {
			if isLeapYear(y) {
				totalDays += 366
			} else {
				totalDays += 365
			}
		}
		avg := totalDays / float64(y2-y1+1)
		return actualDays / avg, nil
	case 2:
		return actualDays / 360, nil
	case 3:
		return actualDays / 365, nil
	case 4:
		return float64(days360EU(start, end)) / 360, nil
	default:
		return 0, errBasis
	}
}
