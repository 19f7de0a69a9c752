package numerology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_MasterNumbers(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{7, 7},
		{11, 11},
		{22, 22},
		{29, 11},
		{38, 11},
		{15, 6},
		{30, 3},
		{99, 9},
		{1990, 1},
		{-15, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reduce(tt.in), "Reduce(%d)", tt.in)
	}
}

func TestReduce_IsIdempotent(t *testing.T) {
	for n := 0; n <= 5000; n++ {
		once := Reduce(n)
		require.Equal(t, once, Reduce(once), "n=%d", n)
		require.True(t, once <= 9 || once == 11 || once == 22, "n=%d reduced to %d", n, once)
	}
}

func TestReducePlain_HasNoMasterCarveOut(t *testing.T) {
	assert.Equal(t, 2, ReducePlain(11))
	assert.Equal(t, 4, ReducePlain(22))
	assert.Equal(t, 2, ReducePlain(29))
	assert.Equal(t, 6, ReducePlain(15))
	for n := 0; n <= 2000; n++ {
		require.LessOrEqual(t, ReducePlain(n), 9)
	}
}

func TestNameNumber_IgnoresWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, NameNumber("ANAMARIA"), NameNumber("Ana Maria"))
	assert.Equal(t, NameNumber("ana maria"), NameNumber(" Ana\tMaria "))
	assert.Equal(t, 8, NameNumber("Ana Maria"))
	// 11 letters stays a master number
	assert.Equal(t, 11, NameNumber("Maria Clara Z"))
	assert.Equal(t, 0, NameNumber("   "))
}

func TestDateNumber(t *testing.T) {
	assert.Equal(t, 3, DateNumber("1990-05-15"))
	assert.Equal(t, 3, DateNumber("15/05/1990"))
	// 2+0+0+0+0+2+2+9 = 15
	assert.Equal(t, 6, DateNumber("2000-02-29"))
	// 1+9+9+9+1+2+2+9 = 42 -> 6; 1+9+8+7+0+9+2+9 = 45 -> 9
	assert.Equal(t, 6, DateNumber("1999-12-29"))
	assert.Equal(t, 9, DateNumber("1987-09-29"))
}

func TestPythagorean(t *testing.T) {
	// A1 N14 A1 M13 A1 R18 I9 A1 = 58 -> 13 -> 4
	assert.Equal(t, 4, ExpressionNumber("Ana Maria"))
	// A A A I A = 13 -> 4
	assert.Equal(t, 4, SoulNumber("Ana Maria"))
	assert.Equal(t, 3, DestinyNumber("1990-05-15"))

	assert.Equal(t, ExpressionNumber("Julia"), ExpressionNumber("Júlia"))
	assert.Equal(t, SoulNumber("Conceicao"), SoulNumber("Conceição"))

	p := Pythagorean("Ana Maria", "1990-05-15")
	assert.Equal(t, PythagoreanProfile{Destiny: 3, Expression: 4, Soul: 4}, p)
}

func TestLetterValue(t *testing.T) {
	assert.Equal(t, 1, LetterValue('a'))
	assert.Equal(t, 26, LetterValue('Z'))
	assert.Equal(t, 5, LetterValue('é'))
	assert.Equal(t, 3, LetterValue('Ç'))
	assert.Equal(t, 0, LetterValue('-'))
	assert.Equal(t, 0, LetterValue('7'))
}

func TestVariantsDiverge(t *testing.T) {
	// "Ana Maria" has 8 letters but an expression number of 4.
	assert.NotEqual(t, NameNumber("Ana Maria"), ExpressionNumber("Ana Maria"))
}

func TestDerive_EndToEnd(t *testing.T) {
	r, err := Derive("Ana Maria", "1990-05-15")
	require.NoError(t, err)
	assert.Equal(t, Touro, r.Sign)
	assert.Equal(t, 8, r.NameNumber)
	assert.Equal(t, 3, r.DateNumber)
	assert.Equal(t, "15/05/1990", r.BirthDateString())
	assert.Equal(t, time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC), r.BirthDate)

	br, err := Derive("Ana Maria", "15/05/1990")
	require.NoError(t, err)
	assert.Equal(t, r, br)
}

func TestDerive_Errors(t *testing.T) {
	_, err := Derive("", "1990-05-15")
	require.Error(t, err)

	_, err = Derive("Ana", "not-a-date")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = Derive("Ana", "1990-02-30")
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseBirthDate_Layouts(t *testing.T) {
	want := time.Date(1990, time.May, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"1990-05-15", " 1990-05-15 ", "1990-05-15T10:30:00Z", "1990-05-15T23:00:00-03:00", "1990-05-15T08:00:00", "15/05/1990"} {
		got, err := ParseBirthDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
