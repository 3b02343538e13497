// Package week classifies days of the week.
package week

import (
	"fmt"
	"strings"

	"github.com/typelab/typelab/lib/infra"
)

type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	_dayMax
)

var ErrUnknownDay = infra.NewErrorStack("unknown day name")

var dayNames = [...]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (d Day) String() string {
	if d >= _dayMax {
		return fmt.Sprintf("Day(%d)", uint8(d))
	}
	return dayNames[d]
}

func (d Day) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

type Kind uint8

const (
	Workday Kind = iota
	Weekend
)

func (k Kind) String() string {
	if k == Weekend {
		return "weekend"
	}
	return "workday"
}

// Classify maps a day to its kind.
func Classify(d Day) Kind {
	switch d {
	case Saturday, Sunday:
		return Weekend
	default:
		return Workday
	}
}

// Parse resolves a case-insensitive day name.
func Parse(name string) (Day, error) {
	trimmed := strings.TrimSpace(name)
	for d, n := range dayNames {
		if strings.EqualFold(trimmed, n) {
			return Day(d), nil
		}
	}
	return _dayMax, infra.WrapErrorStackWithMessage(ErrUnknownDay, name)
}
