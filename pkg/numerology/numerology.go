// Package numerology derives the zodiac sign and numerology figures used by
// the combo document. Everything here is pure and deterministic.
//
// Two numerology variants coexist and are deliberately not unified:
//   - the counting variant (NameNumber, DateNumber) reduces with Reduce, which
//     keeps the master numbers 11 and 22;
//   - the Pythagorean variant (ExpressionNumber, SoulNumber, DestinyNumber)
//     uses letter positions A=1..Z=26 and reduces with ReducePlain.
package numerology

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Master numbers survive Reduce when reached exactly.
const (
	MasterEleven    = 11
	MasterTwentyTwo = 22
)

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// Reduce repeatedly sums the decimal digits of n until a single digit or a
// master number remains. Negative input is treated as its absolute value.
func Reduce(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 && n != MasterEleven && n != MasterTwentyTwo {
		n = digitSum(n)
	}
	return n
}

// ReducePlain is Reduce without the master number carve-out.
func ReducePlain(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

// NameNumber counts the letters of name, ignoring whitespace and case, and
// reduces the count.
func NameNumber(name string) int {
	count := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return Reduce(count)
}

// DateNumber sums every decimal digit found in date and reduces the sum.
func DateNumber(date string) int {
	return Reduce(sumDigits(date))
}

func sumDigits(s string) int {
	sum := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}
	return sum
}

// Reading bundles every derived figure for one person.
type Reading struct {
	Name        string             `json:"nome"`
	BirthDate   time.Time          `json:"data_nascimento"`
	Sign        Sign               `json:"signo"`
	NameNumber  int                `json:"numero_nome"`
	DateNumber  int                `json:"numero_data"`
	Pythagorean PythagoreanProfile `json:"pitagorica"`
}

// BirthDateString formats the birth date the way prompts quote it.
func (r *Reading) BirthDateString() string {
	return r.BirthDate.Format("02/01/2006")
}

// Derive parses date and computes both numerology variants and the sign.
// The digit based figures use the canonical YYYY-MM-DD form so that
// "15/05/1990" and "1990-05-15" agree.
func Derive(name, date string) (*Reading, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is empty")
	}
	birth, err := ParseBirthDate(date)
	if err != nil {
		return nil, err
	}
	canonical := birth.Format("2006-01-02")
	return &Reading{
		Name:        name,
		BirthDate:   birth,
		Sign:        ZodiacSignOf(birth),
		NameNumber:  NameNumber(name),
		DateNumber:  DateNumber(canonical),
		Pythagorean: Pythagorean(name, canonical),
	}, nil
}
