// Package hijri converts between Gregorian instants and the tabular
// (arithmetic) Islamic calendar.
//
// The calendar uses a 30-year cycle with leap years 2, 5, 7, 10, 13, 16,
// 18, 21, 24, 26 and 29, and the astronomical epoch of 15 July 622
// (Julian).
package hijri

import (
	"fmt"
	"time"
)

const (
	// epochJDN is the Julian day number of 1 Muharram 1 AH.
	epochJDN = 1948439
	// unixEpochJDN is the Julian day number of 1970-01-01.
	unixEpochJDN  = 2440588
	secondsPerDay = 86400
)

var monthNames = [12]string{
	"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Shaban",
	"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
}

// Date is a day in the Islamic calendar.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-30
}

// MonthName returns the English transliteration of month m, or "" when m
// is out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// IsLeapYear reports whether year has 355 days.
func IsLeapYear(year int) bool {
	return mod(14+11*year, 30) < 11
}

// DaysInMonth returns the length of the given month.
func DaysInMonth(year, month int) int {
	if month == 12 && IsLeapYear(year) {
		return 30
	}
	if month%2 == 1 {
		return 30
	}
	return 29
}

// FromTime returns the Islamic date for the UTC calendar date of t.
func FromTime(t time.Time) Date {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	days := int(midnight.Unix()/secondsPerDay) + unixEpochJDN - epochJDN

	year := days*30/10631 + 1
	for yearStart(year+1) <= days {
		year++
	}
	for yearStart(year) > days {
		year--
	}

	rest := days - yearStart(year)
	month := 1
	for month < 12 && rest >= DaysInMonth(year, month) {
		rest -= DaysInMonth(year, month)
		month++
	}

	return Date{Year: year, Month: month, Day: rest + 1}
}

// Format returns the date as "D MonthName YYYY AH", e.g.
// "1 Ramadan 1425 AH".
func (d Date) Format() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, MonthName(d.Month), d.Year)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// yearStart returns the number of days from the epoch to 1 Muharram of year.
func yearStart(year int) int {
	return (year-1)*354 + floorDiv(3+11*year, 30)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	return a - b*floorDiv(a, b)
}
