// Package calendar builds the year, month and day options of the birth date picker.
package calendar

import (
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-fortune/internal/config"
)

// CalendarType selects how day counts are computed.
type CalendarType int

const (
	// Solar is the Gregorian calendar.
	Solar CalendarType = iota
	// Lunar is the traditional Chinese lunisolar calendar.
	Lunar
)

// String returns the lowercase name used in logs and CLI output.
func (c CalendarType) String() string {
	if c == Lunar {
		return "lunar"
	}
	return "solar"
}

// DateSelection is the year/month/calendar triple currently chosen in the picker.
type DateSelection struct {
	Year     int
	Month    int
	Calendar CalendarType
}

// OptionBuilder computes the options offered by the date picker.
type OptionBuilder struct {
	Clock Clock
}

// NewOptionBuilder returns a builder using the given clock, or the real clock if nil.
func NewOptionBuilder(clock Clock) *OptionBuilder {
	if clock == nil {
		clock = RealClock{}
	}
	return &OptionBuilder{Clock: clock}
}

// CurrentYear is the newest selectable year.
func (b *OptionBuilder) CurrentYear() int {
	return b.Clock.Now().Year()
}

// Years lists the selectable years, newest first, down to config.MinBirthYear.
func (b *OptionBuilder) Years() []int {
	current := b.CurrentYear()
	if current < config.MinBirthYear {
		return []int{config.MinBirthYear}
	}
	years := make([]int, 0, current-config.MinBirthYear+1)
	for y := current; y >= config.MinBirthYear; y-- {
		years = append(years, y)
	}
	return years
}

// Months lists 1 through 12.
func Months() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

// Normalize clamps a selection into the supported range.
// An out-of-range year becomes the current year and an out-of-range month becomes January.
func (b *OptionBuilder) Normalize(sel DateSelection) DateSelection {
	current := b.CurrentYear()
	if sel.Year < config.MinBirthYear || sel.Year > current {
		sel.Year = current
	}
	if sel.Month < 1 || sel.Month > 12 {
		sel.Month = config.DefaultMonth
	}
	if sel.Calendar != Lunar {
		sel.Calendar = Solar
	}
	return sel
}

// ValidDays returns the selectable days 1..N for the normalized selection.
func (b *OptionBuilder) ValidDays(sel DateSelection) []int {
	sel = b.Normalize(sel)

	count := config.LunarMonthDays
	if sel.Calendar == Solar {
		count = DaysInMonth(sel.Year, sel.Month)
	}

	days := make([]int, count)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// DaysInMonth returns the Gregorian day count of a month.
// Day 0 of the following month normalizes to the last day of this one.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeapYear applies the proleptic Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseSelection turns raw picker values into a normalized selection.
// Labels such as "1990年" are accepted; anything unparsable falls back to the defaults.
func (b *OptionBuilder) ParseSelection(yearText, monthText string, lunar bool) DateSelection {
	cal := Solar
	if lunar {
		cal = Lunar
	}
	return b.Normalize(DateSelection{
		Year:     leadingInt(yearText),
		Month:    leadingInt(monthText),
		Calendar: cal,
	})
}

// leadingInt parses the leading run of digits of s, returning 0 when there is none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end >= 0 {
		s = s[:end]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
