// Package clock is the in-game calendar and its dated event queue
package clock

import "fmt"

const (
	StartYear  = 2155
	startMonth = 2
	startDay   = 17
)

type Date struct {
	Day   uint8
	Month uint8
	Year  uint16
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

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func IsLeapYear(year uint16) bool {
	return year&3 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth takes a 1-based month
func DaysInMonth(month uint8, year uint16) uint8 {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

type EventKind int

const (
	AbsoluteEvent EventKind = iota
	RelativeEvent
)

// Relative offsets now by the given months, days and years using the
// calendar arithmetic of relative events
func Relative(now Date, months, days, years int) Date {
	month := months + int(now.Month) - 1
	year := years + int(now.Year) + month/12
	month = month%12 + 1

	day := days + int(now.Day)
	for day > int(DaysInMonth(uint8(month), uint16(year))) {
		day -= int(DaysInMonth(uint8(month), uint16(year)))
		month++
		if month > 12 {
			month = 1
			year++
		}
	}

	return Date{Day: uint8(day), Month: uint8(month), Year: uint16(year)}
}

// ValidateEvent resolves a relative date against now and reports whether
// the date is not in the past
func ValidateEvent(kind EventKind, d Date, now Date) (Date, bool) {
	if kind == RelativeEvent {
		d = Relative(now, int(d.Month), int(d.Day), int(d.Year))
	}
	return d, !d.Before(now)
}

// Clock tracks the game date. TickCount counts down to the next day.
type Clock struct {
	Date
	TickCount  int16
	DayInTicks int16

	Events  Queue
	Handler func(funcIndex uint8)
}

func New() *Clock {
	c := &Clock{}
	c.Start()
	return c
}

// Start resets the calendar to the first day of the game
func (c *Clock) Start() {
	c.Date = Date{Day: startDay, Month: startMonth, Year: StartYear}
	c.TickCount = 0
	c.DayInTicks = 0
	c.Events = Queue{}
}

func (c *Clock) Now() Date {
	return c.Date
}

// Advance moves to the next day and fires the events due on it
func (c *Clock) Advance() {
	c.Day++
	if c.Day > DaysInMonth(c.Month, c.Year) {
		c.Day = 1
		c.Month++
		if c.Month > 12 {
			c.Month = 1
			c.Year++
		}
	}

	for _, ev := range c.Events.popDue(c.Date) {
		c.fire(ev.FuncIndex)
	}
}

// Tick counts down one frame; the calendar only moves once a rate is set
func (c *Clock) Tick() {
	c.TickCount--
	if c.TickCount <= 0 {
		c.TickCount = c.DayInTicks
		if c.DayInTicks > 0 {
			c.Advance()
		}
	}
}

func (c *Clock) MoveDays(days int) {
	for ; days > 0; days-- {
		c.Advance()
	}
	c.TickCount = c.DayInTicks
}

// DaysElapsed counts whole days since the start date
func (c *Clock) DaysElapsed() int {
	days := 0
	for y := uint16(StartYear); y < c.Year; y++ {
		days += 365
		if IsLeapYear(y) {
			days++
		}
	}
	return days + dayOfYear(c.Date) - dayOfYear(Date{Day: startDay, Month: startMonth, Year: StartYear})
}

func dayOfYear(d Date) int {
	n := int(d.Day)
	for m := uint8(1); m < d.Month; m++ {
		n += int(DaysInMonth(m, d.Year))
	}
	return n
}

// AddEvent schedules funcIndex. A relative event with no offset fires at
// once. Returns false when the date is already past.
func (c *Clock) AddEvent(kind EventKind, months, days, years int, funcIndex uint8) bool {
	if kind == RelativeEvent && months == 0 && days == 0 && years == 0 {
		c.fire(funcIndex)
		return true
	}

	d := Date{Day: uint8(days), Month: uint8(months), Year: uint16(years)}
	d, ok := ValidateEvent(kind, d, c.Date)
	if !ok {
		return false
	}

	c.Events.Insert(Event{Date: d, FuncIndex: funcIndex})
	return true
}

func (c *Clock) fire(funcIndex uint8) {
	if c.Handler != nil {
		c.Handler(funcIndex)
	}
}
