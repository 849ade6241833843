package saints

import (
	"strconv"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var frenchMonths = [12]string{
	"janvier",
	"février",
	"mars",
	"avril",
	"mai",
	"juin",
	"juillet",
	"août",
	"septembre",
	"octobre",
	"novembre",
	"décembre",
}

// MonthName returns the lower-case French name of the day's month, as the source site spells it.
func MonthName(day time.Time) string {
	return frenchMonths[day.Month()-1]
}

// DayLabel formats the bold heading the source site uses for a day, e.g. "1er janvier" or "14 janvier".
func DayLabel(day time.Time) string {
	number := strconv.Itoa(day.Day())
	if day.Day() == 1 {
		number = "1er"
	}
	return number + " " + MonthName(day)
}

// MonthSlug strips diacritics from a month name so it can be used in a page URL ("février" -> "fevrier").
func MonthSlug(month string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slug, _, err := transform.String(t, month)
	if err != nil {
		return month
	}
	return slug
}
