package astro

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validation errors for onboarding input. Callers can match them with
// errors.Is; the wrapped message carries the detail shown to users.
var (
	ErrInvalidDate     = errors.New("invalid birth date")
	ErrInvalidTime     = errors.New("invalid birth time")
	ErrInvalidLocation = errors.New("invalid birth location")
)

const minBirthYear = 1900

var (
	isoDateRE = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	usDateRE  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	clock12RE = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
	clock24RE = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseBirthDate accepts "YYYY-MM-DD" or "MM/DD/YYYY" and returns the date
// at UTC midnight. The year must lie in [1900, now.Year()] and the date may
// not be after now.
func ParseBirthDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	var y, m, d int
	switch {
	case isoDateRE.MatchString(s):
		p := isoDateRE.FindStringSubmatch(s)
		y, m, d = atoi(p[1]), atoi(p[2]), atoi(p[3])
	case usDateRE.MatchString(s):
		p := usDateRE.FindStringSubmatch(s)
		m, d, y = atoi(p[1]), atoi(p[2]), atoi(p[3])
	default:
		return time.Time{}, fmt.Errorf("%w: use YYYY-MM-DD or MM/DD/YYYY", ErrInvalidDate)
	}

	if y < minBirthYear || y > now.Year() {
		return time.Time{}, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidDate, minBirthYear, now.Year())
	}
	if m < 1 || m > 12 {
		return time.Time{}, fmt.Errorf("%w: month must be between 01 and 12", ErrInvalidDate)
	}
	// Day 0 of the following month is the last day of this one.
	last := time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d < 1 || d > last {
		return time.Time{}, fmt.Errorf("%w: day must be between 01 and %02d for the selected month", ErrInvalidDate, last)
	}

	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if date.After(now) {
		return time.Time{}, fmt.Errorf("%w: birth date cannot be in the future", ErrInvalidDate)
	}
	return date, nil
}

// ValidateBirthTime accepts "H:MM AM/PM" (hours 1-12), "HH:MM" in 24-hour
// form, an empty string, or Unknown.
func ValidateBirthTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Unknown) {
		return nil
	}
	if p := clock12RE.FindStringSubmatch(s); p != nil {
		if h := atoi(p[1]); h < 1 || h > 12 {
			return fmt.Errorf("%w: hours must be between 1 and 12", ErrInvalidTime)
		}
		if mm := atoi(p[2]); mm > 59 {
			return fmt.Errorf("%w: minutes must be between 00 and 59", ErrInvalidTime)
		}
		return nil
	}
	if p := clock24RE.FindStringSubmatch(s); p != nil {
		if h := atoi(p[1]); h > 23 {
			return fmt.Errorf("%w: hours must be between 0 and 23", ErrInvalidTime)
		}
		if mm := atoi(p[2]); mm > 59 {
			return fmt.Errorf("%w: minutes must be between 00 and 59", ErrInvalidTime)
		}
		return nil
	}
	return fmt.Errorf("%w: use HH:MM AM/PM", ErrInvalidTime)
}

// ValidateLocation requires at least two characters unless the location is
// empty or Unknown.
func ValidateLocation(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Unknown) {
		return nil
	}
	if len([]rune(s)) < 2 {
		return fmt.Errorf("%w: location must be at least 2 characters", ErrInvalidLocation)
	}
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
