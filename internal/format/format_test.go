package format

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		in       float64
		decimals int
		want     string
	}{
		{math.NaN(), 2, "-"},
		{math.Inf(1), 2, "∞"},
		{math.Inf(-1), 2, "-∞"},
		{999999, 2, "∞"},
		{1e9, 2, "∞"},
		{0, 2, "0"},
		{1234.5, 2, "1,234.50"},
		{-1234.5, 1, "-1,234.5"},
		{0.125, 0, "0"},
		{42, 0, "42"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Number(c.in, c.decimals), "Number(%v, %d)", c.in, c.decimals)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "12.3%", Percent(12.34))
	assert.Equal(t, "-5.0%", Percent(-5))
	assert.Equal(t, "∞%", Percent(math.Inf(1)))
	assert.Equal(t, "-∞%", Percent(math.Inf(-1)))
	assert.Equal(t, "-", Percent(math.NaN()))
	assert.Equal(t, "0%", Percent(0))
}

func TestOptionalPercent(t *testing.T) {
	assert.Equal(t, "N/A", OptionalPercent(nil))
	v := 21.0
	assert.Equal(t, "+21.0%", OptionalPercent(&v))
	neg := -3.26
	assert.Equal(t, "-3.3%", OptionalPercent(&neg))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "36.5h", Duration(36.5))
	assert.Equal(t, "-", Duration(math.NaN()))
}

func TestUSD(t *testing.T) {
	f := New("en")
	assert.Equal(t, "$1,000.00", f.USD(1000))
	assert.Equal(t, "-$12.50", f.USD(-12.5))
	assert.Equal(t, "$0.00", f.USD(0))
	assert.Equal(t, "$0,00", New("fr").USD(0))
	assert.Equal(t, "-", f.USD(math.NaN()))
}

func TestFrenchSeparators(t *testing.T) {
	s := New("fr").Number(1234.5, 2)
	assert.True(t, strings.HasSuffix(s, ",50"), s)
	assert.NotContains(t, s, ".")
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "1,234.50", New("!!").Number(1234.5, 2))
}
