package calendar

import (
	"log/slog"
	"slices"

	"github.com/tartampluch/go-fortune/internal/config"
)

// DayPicker keeps a date selection and its derived day list consistent.
// Every change of year, month or calendar type regenerates the full day list
// and clears the selected day. It is not safe for concurrent use; the UI drives
// it from the main thread only.
type DayPicker struct {
	builder *OptionBuilder
	sel     DateSelection
	days    []int
	day     int // 0 means no day selected

	onDaysChanged func(days []int)
}

// NewDayPicker creates a picker positioned on the current year, January, solar calendar.
func NewDayPicker(builder *OptionBuilder) *DayPicker {
	p := &DayPicker{builder: builder}
	p.sel = builder.Normalize(DateSelection{})
	p.days = builder.ValidDays(p.sel)
	return p
}

// OnDaysChanged registers the listener notified after each regeneration.
// Passing nil removes the listener.
func (p *DayPicker) OnDaysChanged(fn func(days []int)) {
	p.onDaysChanged = fn
}

// Selection returns the current normalized selection.
func (p *DayPicker) Selection() DateSelection {
	return p.sel
}

// Days returns a copy of the selectable days.
func (p *DayPicker) Days() []int {
	return slices.Clone(p.days)
}

// Day returns the selected day and whether one is selected.
func (p *DayPicker) Day() (int, bool) {
	return p.day, p.day != 0
}

// SetYear changes the year and regenerates the days.
func (p *DayPicker) SetYear(year int) {
	p.sel.Year = year
	p.refresh()
}

// SetMonth changes the month and regenerates the days.
func (p *DayPicker) SetMonth(month int) {
	p.sel.Month = month
	p.refresh()
}

// SetCalendar changes the calendar type and regenerates the days.
func (p *DayPicker) SetCalendar(cal CalendarType) {
	p.sel.Calendar = cal
	p.refresh()
}

// SetSelection replaces the whole selection at once, regenerating the days a single time.
func (p *DayPicker) SetSelection(sel DateSelection) {
	p.sel = sel
	p.refresh()
}

// SelectDay marks a day as selected. Days outside the current list are rejected.
func (p *DayPicker) SelectDay(day int) bool {
	if !slices.Contains(p.days, day) {
		return false
	}
	p.day = day
	return true
}

// ClearDay removes the day selection.
func (p *DayPicker) ClearDay() {
	p.day = 0
}

func (p *DayPicker) refresh() {
	p.sel = p.builder.Normalize(p.sel)
	p.days = p.builder.ValidDays(p.sel)
	p.day = 0

	slog.Debug(config.MsgDaysRebuilt,
		config.LogKeyComponent, config.CompUIForm,
		config.LogKeyYear, p.sel.Year,
		config.LogKeyMonth, p.sel.Month,
		config.LogKeyCalendar, p.sel.Calendar.String(),
		config.LogKeyDays, len(p.days),
	)

	if p.onDaysChanged != nil {
		p.onDaysChanged(p.Days())
	}
}
