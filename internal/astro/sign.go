// Package astro derives zodiac signs from birth data and scores sign
// pairings. Every function here is pure and total over its input domain:
// malformed optional inputs degrade to documented defaults instead of
// returning errors.
//
// The moon and rising calculations are deliberate approximations. They do
// not model real ephemerides or ascendants and callers must not expect
// astronomical accuracy.
package astro

import "strings"

// Sign is one of the twelve tropical zodiac signs.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// DefaultSign fills any sign slot that would otherwise be persisted empty.
const DefaultSign = Aries

// Signs lists the zodiac in its conventional order. The position of a sign
// in this slice is its index for moon/rising arithmetic and for the
// compatibility table.
var Signs = [12]Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// Index returns the position of s in Signs, or -1 for an unknown value.
func (s Sign) Index() int {
	for i, v := range Signs {
		if v == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool { return s.Index() >= 0 }

func (s Sign) String() string { return string(s) }

// ParseSign resolves a sign name case-insensitively, ignoring surrounding
// whitespace.
func ParseSign(v string) (Sign, bool) {
	v = strings.TrimSpace(v)
	for _, s := range Signs {
		if strings.EqualFold(string(s), v) {
			return s, true
		}
	}
	return "", false
}

// signAt maps any integer onto the zodiac using modulo 12.
func signAt(i int) Sign {
	i %= len(Signs)
	if i < 0 {
		i += len(Signs)
	}
	return Signs[i]
}
