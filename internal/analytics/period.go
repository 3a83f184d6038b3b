package analytics

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// Period is a reporting month. Month is zero-based.
type Period struct {
	Year  int
	Month int
}

// CurrentPeriod returns the month containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month()) - 1}
}

// NewPeriod normalizes a zero-based month that may fall outside 0-11,
// carrying the excess into the year.
func NewPeriod(year, month int) Period {
	year += month / constants.MonthsPerYear
	month %= constants.MonthsPerYear
	if month < 0 {
		month += constants.MonthsPerYear
		year--
	}
	return Period{Year: year, Month: month}
}

func (p Period) Next() Period { return NewPeriod(p.Year, p.Month+1) }

func (p Period) Prev() Period { return NewPeriod(p.Year, p.Month-1) }

// IsCurrent reports whether p is the month containing now.
func (p Period) IsCurrent(now time.Time) bool {
	return p == CurrentPeriod(now)
}

func (p Period) DaysInMonth() int {
	return utils.DaysInMonth(p.Year, p.Month)
}

// DaysElapsed is the current day of the month when p is the current month.
// Any other month counts as fully elapsed.
func (p Period) DaysElapsed(now time.Time) int {
	if p.IsCurrent(now) {
		return now.Day()
	}
	return p.DaysInMonth()
}

// Reference is the instant consistency is measured against: now for the
// current month, otherwise the last day of the month.
func (p Period) Reference(now time.Time) time.Time {
	if p.IsCurrent(now) {
		return now
	}
	return utils.DateOf(p.Year, p.Month, p.DaysInMonth(), now.Location())
}

// Contains reports whether c is a completed record inside p.
func (p Period) Contains(c models.CompletionRecord) bool {
	return c.Completed && c.Year == p.Year && c.Month == p.Month
}

// Label renders the period as "January 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month+1), p.Year)
}
