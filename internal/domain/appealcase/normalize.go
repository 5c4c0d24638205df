package appealcase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/roadpenalty/appealcore/pkg/errors"
)

var (
	nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]`)
	amountRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	dateRe     = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
)

// NormalizeTicketNumber strips every non-alphanumeric character and
// uppercases the rest.  "wk12 345-678" → "WK12345678".
func NormalizeTicketNumber(raw string) string {
	return strings.ToUpper(nonAlnumRe.ReplaceAllString(raw, ""))
}

// ValidateTicketNumber normalizes raw and checks it against the number
// pattern of the given ticket type.
func ValidateTicketNumber(raw string, tt TicketType) (string, error) {
	n := NormalizeTicketNumber(raw)
	if n == "" {
		return "", errors.Validation("ticket reference is empty")
	}
	if tt.NumberPattern != nil && !tt.NumberPattern.MatchString(n) {
		return "", errors.Validation(fmt.Sprintf("reference %q does not look like %s", n, tt.NumberHint))
	}
	return n, nil
}

// NormalizeRegistration strips all whitespace and uppercases the mark.
// Registrations shorter than five characters are rejected.
func NormalizeRegistration(raw string) (string, error) {
	reg := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(reg) < 5 {
		return "", errors.Validation("vehicle registration must be at least 5 characters")
	}
	return reg, nil
}

// ParseAmount extracts the first decimal or integer token from raw and
// parses it as a penalty amount in pounds.  "£70.00 (reduced £35)" → 70.
func ParseAmount(raw string) (float64, error) {
	m := amountRe.FindString(raw)
	if m == "" {
		return 0, errors.Validation("no amount found; enter a figure such as 70 or 65.50")
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, errors.Validation("amount could not be parsed").WithCause(err)
	}
	if v <= 0 {
		return 0, errors.Validation("amount must be positive")
	}
	return v, nil
}

// ParseDate extracts a D/M/YYYY date (separator "/" or "-", single- or
// double-digit day and month) and reformats it to canonical ISO YYYY-MM-DD.
// The calendar is validated, so "31/2/2024" is rejected.
func ParseDate(raw string) (string, error) {
	m := dateRe.FindStringSubmatch(raw)
	if m == nil {
		return "", errors.Validation("no date found; use day/month/year, e.g. 5/3/2024")
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", errors.Validation(fmt.Sprintf("%02d/%02d/%d is not a real date", day, month, year))
	}
	return t.Format("2006-01-02"), nil
}

// DaysSince returns whole days elapsed from the ISO date to now.  A malformed
// date yields -1 so callers can fall back to the neutral timing band.
func DaysSince(iso string, now time.Time) int {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return -1
	}
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// ReasonLabels maps the numeric reason selector to its fixed label, per the
// intake prompt's ordering.
var ReasonLabels = map[string]string{
	"1": "Invalid or unclear signage",
	"2": "Pay and display machine not working",
	"3": "Valid ticket or permit was displayed",
	"4": "Vehicle broke down",
	"5": "Medical emergency",
	"6": "Loading or unloading goods",
	"7": "Blue Badge holder",
}
