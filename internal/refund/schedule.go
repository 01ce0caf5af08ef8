package refund

import (
	"errors"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// ErrNoSchedule is returned when a product description carries no parsable
// season schedule. Callers fall back to the flat-percentage policy.
var ErrNoSchedule = errors.New("no season schedule found in description")

// Schedule is the season calendar parsed out of a product description.
// All dates are anchored at 07:00 UTC so boundary comparisons are stable.
type Schedule struct {
	SeasonStart time.Time
	OffDates    []time.Time
}

// anchorHour is the time-of-day every parsed calendar date is pinned to.
const anchorHour = 7

var stripPolicy = bluemonday.StrictPolicy()

// seasonDatesRe matches "Season Dates: M/D/YY – M/D/YY" with an optional
// "(N weeks, off <dates>)" suffix. The range separator varies across
// listings (hyphen, en dash, em dash, minus, "to").
var seasonDatesRe = regexp.MustCompile(
	`(?i)season\s+dates\s*:?\s*(\d{1,2}/\d{1,2}/\d{2,4})\s*(?:[-–—−]+|to)\s*\d{1,2}/\d{1,2}/\d{2,4}` +
		`(?:\s*\(\s*\d+\s*weeks?(?:\s*,\s*off\s+([^)]+))?\s*\))?`)

var slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)

// ExtractSchedule pulls the season start date and any off-dates out of a
// product description. The description is HTML from the storefront admin, so
// tags are stripped and entities decoded before matching.
func ExtractSchedule(description string) (*Schedule, error) {
	text := normalizeDescription(description)

	m := seasonDatesRe.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrNoSchedule
	}

	start, ok := parseSlashDate(m[1])
	if !ok {
		return nil, ErrNoSchedule
	}

	return &Schedule{
		SeasonStart: start,
		OffDates:    parseOffDates(m[2]),
	}, nil
}

func normalizeDescription(description string) string {
	text := stripPolicy.Sanitize(description)
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, " ", " ")
	return strings.Join(strings.Fields(text), " ")
}

// parseSlashDate parses M/D/YY or M/D/YYYY. Two-digit years map to 2000+YY,
// which holds up until 2099 and matches how the listings are written.
func parseSlashDate(s string) (time.Time, bool) {
	m := slashDateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	d := time.Date(year, time.Month(month), day, anchorHour, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (2/31 becomes March 2-3),
	// so a changed component means the written date never existed.
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// parseOffDates splits the off-date group on commas, keeping whatever tokens
// parse as slash dates. An all-invalid group counts as no off-dates at all.
func parseOffDates(group string) []time.Time {
	if strings.TrimSpace(group) == "" {
		return nil
	}

	var dates []time.Time
	for _, token := range strings.Split(group, ",") {
		if d, ok := parseSlashDate(token); ok {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
