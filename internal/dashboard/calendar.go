package dashboard

import "time"

// CalendarDay is one slot of the year grid.
type CalendarDay struct {
	Date   time.Time
	Level  int
	InYear bool
}

// CalendarWeeks lays out year as columns of seven days, Sunday first, the
// way contribution calendars are drawn. Padding days before January 1st and
// after December 31st have InYear false.
func (v View) CalendarWeeks(loc *time.Location) [][7]CalendarDay {
	if loc == nil {
		loc = time.UTC
	}
	levels := v.Levels()

	first := time.Date(v.Year, time.January, 1, 0, 0, 0, 0, loc)
	last := time.Date(v.Year, time.December, 31, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	var weeks [][7]CalendarDay
	for day := start; !day.After(last); {
		var week [7]CalendarDay
		for i := 0; i < 7; i++ {
			inYear := day.Year() == v.Year
			week[i] = CalendarDay{Date: day, InYear: inYear}
			if inYear {
				week[i].Level = levels[day.Format("2006-01-02")]
			}
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
