package domain

import (
	"fmt"
	"time"
)

// MonthYear is a calendar month. The zero value is not valid; use
// NewMonthYear or one of the window constants.
type MonthYear struct {
	Month int `json:"month" yaml:"month"`
	Year  int `json:"year" yaml:"year"`
}

const (
	minYear = 1900
	maxYear = 2100
)

// the earliest month starts a little late so a quarterly dividend
// average can look two months back
var (
	MinMonthYear = MonthYear{Month: 4, Year: 1972}
	MaxMonthYear = MonthYear{Month: 9, Year: 2018}

	// Baseline is the reference point for inflation normalization
	Baseline = MonthYear{Month: 9, Year: 2018}
)

func NewMonthYear(month, year int) (MonthYear, error) {
	if month < 1 || month > 12 {
		return MonthYear{}, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	if year < minYear || year > maxYear {
		return MonthYear{}, fmt.Errorf("invalid year %d: must be between %d and %d", year, minYear, maxYear)
	}
	return MonthYear{Month: month, Year: year}, nil
}

func MustMonthYear(month, year int) MonthYear {
	m, err := NewMonthYear(month, year)
	if err != nil {
		panic(err)
	}
	return m
}

func MonthYearFromTime(t time.Time) MonthYear {
	return MonthYear{Month: int(t.Month()), Year: t.Year()}
}

// ParseMonthYear accepts "2006-01" formatted strings
func ParseMonthYear(s string) (MonthYear, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthYear{}, fmt.Errorf("failed to parse month %q: %w", s, err)
	}
	return NewMonthYear(int(t.Month()), t.Year())
}

func (m MonthYear) IsZero() bool {
	return m.Month == 0 && m.Year == 0
}

func (m MonthYear) index() int {
	return m.Year*12 + m.Month - 1
}

func fromIndex(i int) MonthYear {
	return MonthYear{Month: i%12 + 1, Year: i / 12}
}

func (m MonthYear) AddMonths(months int) MonthYear {
	return fromIndex(m.index() + months)
}

func (m MonthYear) AddYears(years int) MonthYear {
	return m.AddMonths(years * 12)
}

// Compare returns -1, 0 or 1 ordering by year then month.
func (m MonthYear) Compare(other MonthYear) int {
	switch {
	case m.index() < other.index():
		return -1
	case m.index() > other.index():
		return 1
	}
	return 0
}

func (m MonthYear) Before(other MonthYear) bool {
	return m.Compare(other) < 0
}

func (m MonthYear) After(other MonthYear) bool {
	return m.Compare(other) > 0
}

// IsQuarterEnd is true for March, June, September and December.
func (m MonthYear) IsQuarterEnd() bool {
	return m.Month%3 == 0
}

func (m MonthYear) Time() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

func (m MonthYear) String() string {
	return fmt.Sprintf("%s %d", time.Month(m.Month), m.Year)
}

// Key is a sortable, compact representation used in caches and exports.
func (m MonthYear) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// MonthDifference is the absolute number of months between a and b.
func MonthDifference(a, b MonthYear) int {
	d := a.index() - b.index()
	if d < 0 {
		return -d
	}
	return d
}

// Constrain clamps m into [MinMonthYear, MaxMonthYear].
func Constrain(m MonthYear) MonthYear {
	if m.Before(MinMonthYear) {
		return MinMonthYear
	}
	if m.After(MaxMonthYear) {
		return MaxMonthYear
	}
	return m
}
