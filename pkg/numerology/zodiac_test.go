package numerology

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZodiacSign_Boundaries(t *testing.T) {
	tests := []struct {
		day, month int
		want       Sign
	}{
		{1, 1, Capricornio},
		{19, 1, Capricornio},
		{20, 1, Aquario},
		{18, 2, Aquario},
		{19, 2, Peixes},
		{29, 2, Peixes},
		{20, 3, Peixes},
		{21, 3, Aries},
		{19, 4, Aries},
		{20, 4, Touro},
		{15, 5, Touro},
		{20, 5, Touro},
		{21, 5, Gemeos},
		{20, 6, Gemeos},
		{21, 6, Cancer},
		{22, 7, Cancer},
		{23, 7, Leao},
		{22, 8, Leao},
		{23, 8, Virgem},
		{22, 9, Virgem},
		{23, 9, Libra},
		{22, 10, Libra},
		{23, 10, Escorpiao},
		{21, 11, Escorpiao},
		{22, 11, Sagitario},
		{21, 12, Sagitario},
		{22, 12, Capricornio},
		{31, 12, Capricornio},
	}
	for _, tt := range tests {
		got, err := ZodiacSign(tt.day, tt.month)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%02d/%02d", tt.day, tt.month)
	}
}

func TestZodiacSign_TotalOverLeapYear(t *testing.T) {
	seen := map[Sign]int{}
	for d := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2000; d = d.AddDate(0, 0, 1) {
		s, err := ZodiacSign(d.Day(), int(d.Month()))
		require.NoError(t, err, d.Format("2006-01-02"))
		seen[s]++
	}
	require.Len(t, seen, 12)
	for _, s := range AllSigns() {
		assert.Greater(t, seen[s], 27, string(s))
	}
}

func TestZodiacSign_InvalidInput(t *testing.T) {
	for _, in := range [][2]int{{0, 1}, {32, 1}, {30, 2}, {31, 4}, {1, 0}, {1, 13}} {
		_, err := ZodiacSign(in[0], in[1])
		assert.Error(t, err, "%v", in)
	}
}
