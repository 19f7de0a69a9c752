package numerology

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PythagoreanProfile holds the letter-value numbers.
type PythagoreanProfile struct {
	Destiny    int `json:"destino"`
	Expression int `json:"expressao"`
	Soul       int `json:"alma"`
}

// foldAccents maps "Júlia Conceição" to "Julia Conceicao".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// LetterValue returns the alphabet position of r (A=1..Z=26), or 0 when r is
// not a Latin letter after accent folding.
func LetterValue(r rune) int {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		folded := []rune(foldAccents(string(r)))
		if len(folded) != 1 {
			return 0
		}
		r = unicode.ToUpper(folded[0])
		if r < 'A' || r > 'Z' {
			return 0
		}
	}
	return int(r-'A') + 1
}

func isVowel(r rune) bool {
	return strings.ContainsRune("AEIOU", unicode.ToUpper(r))
}

func letterSum(name string, keep func(rune) bool) int {
	sum := 0
	for _, r := range foldAccents(name) {
		v := LetterValue(r)
		if v == 0 || (keep != nil && !keep(r)) {
			continue
		}
		sum += v
	}
	return sum
}

// ExpressionNumber reduces the sum of every letter value in name.
func ExpressionNumber(name string) int {
	return ReducePlain(letterSum(name, nil))
}

// SoulNumber reduces the sum of the vowel values in name.
func SoulNumber(name string) int {
	return ReducePlain(letterSum(name, isVowel))
}

// DestinyNumber reduces the sum of the digits of date.
func DestinyNumber(date string) int {
	return ReducePlain(sumDigits(date))
}

// Pythagorean computes the three letter-value numbers.
func Pythagorean(name, date string) PythagoreanProfile {
	return PythagoreanProfile{
		Destiny:    DestinyNumber(date),
		Expression: ExpressionNumber(name),
		Soul:       SoulNumber(name),
	}
}
