package numerology

import (
	"fmt"
	"time"
)

// Sign is a Western sun sign, named in Portuguese.
type Sign string

const (
	Capricornio Sign = "Capricórnio"
	Aquario     Sign = "Aquário"
	Peixes      Sign = "Peixes"
	Aries       Sign = "Áries"
	Touro       Sign = "Touro"
	Gemeos      Sign = "Gêmeos"
	Cancer      Sign = "Câncer"
	Leao        Sign = "Leão"
	Virgem      Sign = "Virgem"
	Libra       Sign = "Libra"
	Escorpiao   Sign = "Escorpião"
	Sagitario   Sign = "Sagitário"
)

// signStart lists, per month, the first day of the sign that begins in that
// month. Days before the cutoff belong to the sign that started the month before.
var signStart = [12]struct {
	cutoff int
	before Sign
	after  Sign
}{
	{20, Capricornio, Aquario},   // Jan
	{19, Aquario, Peixes},        // Feb
	{21, Peixes, Aries},          // Mar
	{20, Aries, Touro},           // Apr
	{21, Touro, Gemeos},          // May
	{21, Gemeos, Cancer},         // Jun
	{23, Cancer, Leao},           // Jul
	{23, Leao, Virgem},           // Aug
	{23, Virgem, Libra},          // Sep
	{23, Libra, Escorpiao},       // Oct
	{22, Escorpiao, Sagitario},   // Nov
	{22, Sagitario, Capricornio}, // Dec
}

var daysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ZodiacSign classifies a calendar day. Feb 29 is accepted.
func ZodiacSign(day, month int) (Sign, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month: %d", month)
	}
	if day < 1 || day > daysInMonth[month-1] {
		return "", fmt.Errorf("invalid day %d for month %d", day, month)
	}
	entry := signStart[month-1]
	if day < entry.cutoff {
		return entry.before, nil
	}
	return entry.after, nil
}

// ZodiacSignOf classifies the calendar day of t.
func ZodiacSignOf(t time.Time) Sign {
	s, _ := ZodiacSign(t.Day(), int(t.Month()))
	return s
}

// AllSigns returns the twelve signs starting at Áries.
func AllSigns() []Sign {
	return []Sign{Aries, Touro, Gemeos, Cancer, Leao, Virgem, Libra, Escorpiao, Sagitario, Capricornio, Aquario, Peixes}
}
