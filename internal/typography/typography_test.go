package typography

import (
	"fmt"
	"strings"
	"testing"

	"smm-course-search/internal/markup"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func glyphs(classes ...string) *goquery.Selection {
	var b strings.Builder
	b.WriteString("<div>")
	for _, c := range classes {
		fmt.Fprintf(&b, `<div class="%s"></div>`, c)
	}
	b.WriteString("</div>")

	parsed, err := markup.ParseBytes([]byte(b.String()))
	if err != nil {
		panic(err)
	}
	return markup.Slot(parsed.Selection, 0)
}

func repeat(class string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = class
	}
	return out
}

func TestNumber(t *testing.T) {
	cases := []struct {
		name     string
		classes  []string
		expected float64
	}{
		{
			name: "separator is dropped",
			classes: []string{
				"typography typography-1",
				"typography typography-slash",
				"typography typography-2",
				"typography typography-3",
				"typography typography-4",
			},
			expected: 1234,
		},
		{
			name: "decimal point",
			classes: []string{
				"typography typography-4",
				"typography typography-2",
				"typography typography-second",
				"typography typography-0",
				"typography typography-7",
			},
			expected: 42.07,
		},
		{
			name: "non glyph children are skipped",
			classes: []string{
				"typography typography-9",
				"percent",
				"",
				"typography-12",
				"typography typography-9",
			},
			expected: 99,
		},
		{
			name:     "empty counter",
			classes:  nil,
			expected: 0,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			n, ok := Number(glyphs(test.classes...))
			require.True(t, ok)
			require.InDelta(t, test.expected, n, 1e-9)
		})
	}
}

func TestDigits(t *testing.T) {
	require.Equal(t, "1234", Digits(glyphs(
		"typography-1", "typography-slash", "typography-2", "typography-3", "typography-4",
	)))
	require.Equal(t, "", Digits(nil))
}

func TestCount(t *testing.T) {
	n, ok := Count(glyphs("typography-1", "typography-slash", "typography-2", "typography-3", "typography-4"))
	require.True(t, ok)
	require.Equal(t, int64(1234), n)

	_, ok = Count(glyphs("typography-second", "typography-second"))
	require.False(t, ok)

	n, ok = Count(glyphs("typography-1", "typography-2", "typography-second", "typography-9"))
	require.True(t, ok)
	require.Equal(t, int64(12), n)

	n, ok = Count(glyphs(repeat("typography typography-9", 18)...))
	require.True(t, ok)
	require.Equal(t, int64(999_999_999_999_999_999), n)

	_, ok = Count(glyphs(repeat("typography typography-9", 20)...))
	require.False(t, ok, "a counter wider than int64 is not a number")

	_, ok = Count(glyphs(append(repeat("typography typography-9", 20), "typography typography-second", "typography typography-5")...))
	require.False(t, ok)
}

func TestClearsAttempts(t *testing.T) {
	clears, attempts, ok := ClearsAttempts(glyphs(
		"typography typography-5",
		"typography typography-slash",
		"typography typography-1",
		"typography typography-0",
	))
	require.True(t, ok)
	require.Equal(t, int64(5), clears)
	require.Equal(t, int64(10), attempts)

	clears, attempts, ok = ClearsAttempts(glyphs(
		"typography typography-slash",
		"typography typography-3",
	))
	require.True(t, ok)
	require.Equal(t, int64(0), clears)
	require.Equal(t, int64(3), attempts)

	_, _, ok = ClearsAttempts(glyphs("typography typography-7"))
	require.False(t, ok, "a counter without separator has no attempts")

	clears, attempts, ok = ClearsAttempts(glyphs(
		"typography typography-1",
		"typography typography-slash",
		"typography typography-2",
		"typography typography-slash",
		"typography typography-3",
	))
	require.True(t, ok)
	require.Equal(t, int64(1), clears)
	require.Equal(t, int64(2), attempts, "segments after the second one are ignored")

	overflow := append([]string{"typography typography-1", "typography typography-slash"}, repeat("typography typography-9", 20)...)
	_, _, ok = ClearsAttempts(glyphs(overflow...))
	require.False(t, ok)
}
