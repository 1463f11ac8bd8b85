// Package typography decodes the stylized counters of the result pages.
//
// The site draws numbers with one element per glyph, the glyph is encoded in the
// element's class: typography-0 ... typography-9, typography-second for the decimal
// point and typography-slash for the separator.
package typography

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"smm-course-search/internal/markup"

	"github.com/PuerkitoBio/goquery"
)

var glyphRegex = regexp.MustCompile(`typography-(\d|second|slash)(?: |$)`)

const (
	glyphDecimal   = "second"
	glyphSeparator = "slash"
)

func glyph(sel *goquery.Selection) (string, bool) {
	groups := glyphRegex.FindStringSubmatch(markup.Class(sel))
	if len(groups) < 2 {
		return "", false
	}
	return groups[1], true
}

// Digits returns the numeral drawn by the children of `container`,
// separators are dropped and children that are not glyphs are skipped.
func Digits(container *goquery.Selection) string {
	var digits strings.Builder
	if container == nil {
		return ""
	}
	container.Children().Each(func(_ int, child *goquery.Selection) {
		g, ok := glyph(child)
		if !ok {
			return
		}
		switch g {
		case glyphDecimal:
			digits.WriteString(".")
		case glyphSeparator:
		default:
			digits.WriteString(g)
		}
	})
	return digits.String()
}

// parse mirrors how the page's own script reads a numeral: an empty string is zero,
// anything unreadable is not a number.
func parse(digits string) (float64, bool) {
	if digits == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseCount reads a whole-number counter, a fractional part is truncated and a
// value that does not fit in an int64 is not a number.
func parseCount(digits string) (int64, bool) {
	if digits == "" {
		return 0, true
	}
	if !strings.Contains(digits, ".") {
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	n, ok := parse(digits)
	if !ok || n >= math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

// Number decodes a single counter region.
func Number(container *goquery.Selection) (float64, bool) {
	return parse(Digits(container))
}

// Count decodes a single counter region that holds a whole number.
func Count(container *goquery.Selection) (int64, bool) {
	return parseCount(Digits(container))
}

// ClearsAttempts decodes the combined "clears/attempts" counter. The separator glyph
// splits the numbers, the first segment is the clears and the one right after the
// first separator is the attempts, later segments are ignored.
func ClearsAttempts(container *goquery.Selection) (clears int64, attempts int64, ok bool) {
	var parts []string
	var digits strings.Builder
	if container != nil {
		container.Children().Each(func(_ int, child *goquery.Selection) {
			g, isGlyph := glyph(child)
			if !isGlyph {
				return
			}
			switch g {
			case glyphDecimal:
				digits.WriteString(".")
			case glyphSeparator:
				parts = append(parts, digits.String())
				digits.Reset()
			default:
				digits.WriteString(g)
			}
		})
	}
	parts = append(parts, digits.String())

	if len(parts) < 2 {
		return 0, 0, false
	}
	clears, okClears := parseCount(parts[0])
	attempts, okAttempts := parseCount(parts[1])
	if !okClears || !okAttempts {
		return 0, 0, false
	}
	return clears, attempts, true
}
