package saints

import (
	"fmt"
	"testing"
	"time"
)

func TestDayLabelUsesOrdinalOnFirstDay(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if label := DayLabel(day); label != "1er janvier" {
		t.Fatalf("expected label %q, got %q", "1er janvier", label)
	}
}

func TestDayLabelUsesPlainNumberOtherwise(t *testing.T) {
	t.Parallel()

	for d := 2; d <= 31; d++ {
		day := time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
		expected := fmt.Sprintf("%d mars", d)
		if label := DayLabel(day); label != expected {
			t.Fatalf("expected label %q, got %q", expected, label)
		}
	}
}

func TestMonthNameIsFrench(t *testing.T) {
	t.Parallel()

	cases := map[time.Month]string{
		time.January:  "janvier",
		time.February: "février",
		time.August:   "août",
		time.December: "décembre",
	}

	for month, expected := range cases {
		day := time.Date(2024, month, 10, 0, 0, 0, 0, time.UTC)
		if name := MonthName(day); name != expected {
			t.Errorf("expected month name %q, got %q", expected, name)
		}
	}
}

func TestMonthSlugStripsDiacritics(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"janvier":  "janvier",
		"février":  "fevrier",
		"août":     "aout",
		"décembre": "decembre",
	}

	for month, expected := range cases {
		if slug := MonthSlug(month); slug != expected {
			t.Errorf("expected slug %q for %q, got %q", expected, month, slug)
		}
	}
}
