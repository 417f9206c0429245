package schedule

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Shapes that are claimed by an explicit format. When such input fails its
// format, it is rejected outright instead of falling through to the
// free-form parse, which could reinterpret the fields in a different order.
var (
	isoShape   = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	slashShape = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
)

// Normalizer parses heterogeneous date text into a canonical Date. It is
// pure: the same input always yields the same Date or the same failure,
// and neither the current time nor the local timezone is consulted.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run attempts, in order: ISO YYYY-MM-DD, US MM/DD/YYYY, then a general
// calendar-text parse for forms a human or a language model might produce
// ("March 5, 2025"). Non-existent dates fail with InvalidDateError.
func (n *Normalizer) Run(raw string) (Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, &InvalidDateError{Value: raw}
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return dateOf(t), nil
	}
	if isoShape.MatchString(s) {
		return Date{}, &InvalidDateError{Value: raw}
	}

	if t, err := time.Parse("01/02/2006", s); err == nil {
		return dateOf(t), nil
	}
	if slashShape.MatchString(s) {
		return Date{}, &InvalidDateError{Value: raw}
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return Date{}, &InvalidDateError{Value: raw}
	}

	return dateOf(t), nil
}

func dateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}
