package courses

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// the site displays timestamps at UTC-3
const siteOffset = -3 * time.Hour

const day = 24 * time.Hour

// ages beyond this many days are out of the range time.Time can represent
const maxAgeDays = 100_000_000

var relativeTimeRegex = regexp.MustCompile(`^(\d+) ((mins\.)|(hour|day)s?) ago$`)

var absoluteLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
	time.RFC1123,
}

// ParseCreatedAt converts the "created" label of a course into an instant.
// Relative labels ("5 mins. ago", "1 hour ago", "3 days ago") are resolved against
// `now`, anything else is read as a date in UTC. The result is shifted to the
// site's display offset.
func ParseCreatedAt(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)

	groups := relativeTimeRegex.FindStringSubmatch(text)
	if groups != nil {
		amount, err := strconv.ParseInt(groups[1], 10, 64)
		if err != nil {
			return time.Time{}, err
		}

		unit := day
		switch groups[2] {
		case "mins.":
			unit = time.Minute
		case "hour", "hours":
			unit = time.Hour
		}

		// whole days go through the calendar, a time.Duration only spans about 292 years
		perDay := int64(day / unit)
		days := amount / perDay
		if days > maxAgeDays {
			return time.Time{}, fmt.Errorf("age out of range '%s'", text)
		}
		rest := time.Duration(amount%perDay) * unit

		created := now.AddDate(0, 0, -int(days)).Add(-rest)
		return created.Add(siteOffset).UTC(), nil
	}

	for _, layout := range absoluteLayouts {
		created, err := time.ParseInLocation(layout, text, time.UTC)
		if err == nil {
			return created.Add(siteOffset).UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date '%s'", text)
}
