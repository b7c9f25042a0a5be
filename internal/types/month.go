package types

import (
	"time"
)

// MonthName is the name of a calendar month as used in payroll records.
type MonthName string

const (
	January   MonthName = "January"
	February  MonthName = "February"
	March     MonthName = "March"
	April     MonthName = "April"
	May       MonthName = "May"
	June      MonthName = "June"
	July      MonthName = "July"
	August    MonthName = "August"
	September MonthName = "September"
	October   MonthName = "October"
	November  MonthName = "November"
	December  MonthName = "December"
)

// MonthNames lists all twelve months in calendar order.
var MonthNames = []MonthName{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

// Valid reports whether the name is one of the twelve months.
func (m MonthName) Valid() bool {
	for _, name := range MonthNames {
		if m == name {
			return true
		}
	}

	return false
}

// String returns the month name.
func (m MonthName) String() string {
	return string(m)
}

// Month returns the time.Month for the name. It returns 0 for
// names that are not valid months.
func (m MonthName) Month() time.Month {
	for i, name := range MonthNames {
		if m == name {
			return time.Month(i + 1)
		}
	}

	return 0
}

// MonthNameOf returns the MonthName for a time.Month.
func MonthNameOf(m time.Month) MonthName {
	return MonthNames[int(m)-1]
}
