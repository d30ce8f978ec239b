package astro

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

// Unknown is the sentinel users pick when they do not know their birth time
// or place.
const Unknown = "Unknown"

const (
	defaultMoonHour   = 12
	defaultRisingHour = 6

	lunarCycleDays = 30.0
	moonBucket     = lunarCycleDays / 12
)

// BigThree is the sun, moon and rising triple stored on a profile.
type BigThree struct {
	Sun    Sign `json:"sun_sign"`
	Moon   Sign `json:"moon_sign"`
	Rising Sign `json:"rising_sign"`
}

// Filled returns b with every invalid or empty slot replaced by DefaultSign.
func (b BigThree) Filled() BigThree {
	if !b.Sun.Valid() {
		b.Sun = DefaultSign
	}
	if !b.Moon.Valid() {
		b.Moon = DefaultSign
	}
	if !b.Rising.Valid() {
		b.Rising = DefaultSign
	}
	return b
}

// SunSign returns the sign whose range contains the calendar day of date.
// Only month and day are consulted; the year and clock are ignored.
func SunSign(date time.Time) Sign {
	m, d := date.Month(), date.Day()
	switch {
	case (m == time.March && d >= 21) || (m == time.April && d <= 19):
		return Aries
	case (m == time.April && d >= 20) || (m == time.May && d <= 20):
		return Taurus
	case (m == time.May && d >= 21) || (m == time.June && d <= 20):
		return Gemini
	case (m == time.June && d >= 21) || (m == time.July && d <= 22):
		return Cancer
	case (m == time.July && d >= 23) || (m == time.August && d <= 22):
		return Leo
	case (m == time.August && d >= 23) || (m == time.September && d <= 22):
		return Virgo
	case (m == time.September && d >= 23) || (m == time.October && d <= 22):
		return Libra
	case (m == time.October && d >= 23) || (m == time.November && d <= 21):
		return Scorpio
	case (m == time.November && d >= 22) || (m == time.December && d <= 21):
		return Sagittarius
	case (m == time.December && d >= 22) || (m == time.January && d <= 19):
		return Capricorn
	case (m == time.January && d >= 20) || (m == time.February && d <= 18):
		return Aquarius
	default:
		return Pisces
	}
}

// ParseHour extracts the hour of day (0-23) from a birth time string.
//
// Accepted forms are "H:MM AM", "HH:MM PM" (12 AM is midnight, 12 PM is
// noon) and bare 24-hour "HH:MM" or "HH". An empty value, the Unknown
// sentinel, or anything that does not parse yields def.
func ParseHour(birthTime string, def int) int {
	t := strings.TrimSpace(birthTime)
	if t == "" || strings.EqualFold(t, Unknown) {
		return def
	}

	upper := strings.ToUpper(t)
	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		meridiem := upper[len(upper)-2:]
		h, ok := leadingHour(upper[:len(upper)-2])
		if !ok || h < 1 || h > 12 {
			return def
		}
		switch {
		case meridiem == "AM" && h == 12:
			h = 0
		case meridiem == "PM" && h != 12:
			h += 12
		}
		return h
	}

	h, ok := leadingHour(t)
	if !ok || h < 0 || h > 23 {
		return def
	}
	return h
}

func leadingHour(clock string) (int, bool) {
	part, _, _ := strings.Cut(strings.TrimSpace(clock), ":")
	n, err := strconv.Atoi(strings.TrimSpace(part))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MoonSign approximates the moon sign by treating the moon as crossing all
// twelve signs over a fixed 30 day cycle. A missing or unparseable time
// counts as noon.
func MoonSign(date time.Time, birthTime string) Sign {
	hour := ParseHour(birthTime, defaultMoonHour)
	cycle := math.Mod(float64(date.YearDay())+float64(hour)/24, lunarCycleDays)
	return signAt(int(math.Floor(cycle / moonBucket)))
}

// RisingSign approximates the ascendant: it advances one sign every two
// hours from Aries at midnight, then shifts by the UTF-16 length of the
// location mod 3 when a location is known. A missing or unparseable time
// counts as 6 AM. The birth date does not affect the result.
func RisingSign(_ time.Time, birthTime, location string) Sign {
	hour := ParseHour(birthTime, defaultRisingHour)
	idx := hour / 2
	if location != "" && location != Unknown {
		// length counted in UTF-16 code units
		idx += len(utf16.Encode([]rune(location))) % 3
	}
	return signAt(idx)
}

// ComputeBigThree derives all three signs. The result is always filled.
func ComputeBigThree(date time.Time, birthTime, location string) BigThree {
	return BigThree{
		Sun:    SunSign(date),
		Moon:   MoonSign(date, birthTime),
		Rising: RisingSign(date, birthTime, location),
	}.Filled()
}
