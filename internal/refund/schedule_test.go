package refund

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 7, 0, 0, 0, time.UTC)
}

func TestExtractScheduleBasic(t *testing.T) {
	s, err := ExtractSchedule("Season Dates: 9/20/25 – 11/15/25 (8 weeks)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.SeasonStart.Equal(date(2025, time.September, 20)) {
		t.Fatalf("unexpected season start: %v", s.SeasonStart)
	}
	if len(s.OffDates) != 0 {
		t.Fatalf("expected no off-dates, got %d", len(s.OffDates))
	}
}

func TestExtractScheduleAnchoredAtSeven(t *testing.T) {
	s, err := ExtractSchedule("Season Dates: 1/5/26 - 3/1/26")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SeasonStart.Hour() != 7 || s.SeasonStart.Location() != time.UTC {
		t.Fatalf("expected 07:00 UTC anchor, got %v", s.SeasonStart)
	}
}

func TestExtractScheduleFromMarkup(t *testing.T) {
	desc := `<p><strong>Coed Kickball</strong></p>` +
		`<p>Season&nbsp;Dates:&nbsp;9/20/25&nbsp;&ndash;&nbsp;11/15/25 (8 weeks)</p>` +
		`<p>Games at Riverside Park &amp; Rec Center</p>`

	s, err := ExtractSchedule(desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.SeasonStart.Equal(date(2025, time.September, 20)) {
		t.Fatalf("unexpected season start: %v", s.SeasonStart)
	}
}

func TestExtractScheduleCaseInsensitive(t *testing.T) {
	if _, err := ExtractSchedule("SEASON DATES 10/4/25-12/6/25"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractScheduleFourDigitYear(t *testing.T) {
	s, err := ExtractSchedule("Season Dates: 9/20/2025 - 11/15/2025 (8 weeks)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.SeasonStart.Year() != 2025 {
		t.Fatalf("expected year 2025, got %d", s.SeasonStart.Year())
	}
}

func TestExtractScheduleOffDates(t *testing.T) {
	s, err := ExtractSchedule("Season Dates: 9/20/25 – 11/22/25 (8 weeks, off 11/29/25, 10/4/25)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.OffDates) != 2 {
		t.Fatalf("expected 2 off-dates, got %d", len(s.OffDates))
	}
	// Sorted ascending regardless of written order.
	if !s.OffDates[0].Equal(date(2025, time.October, 4)) {
		t.Fatalf("unexpected first off-date: %v", s.OffDates[0])
	}
	if !s.OffDates[1].Equal(date(2025, time.November, 29)) {
		t.Fatalf("unexpected second off-date: %v", s.OffDates[1])
	}
}

func TestExtractScheduleSkipsBadOffDates(t *testing.T) {
	s, err := ExtractSchedule("Season Dates: 9/20/25 – 11/22/25 (8 weeks, off Thanksgiving, 11/29/25)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.OffDates) != 1 {
		t.Fatalf("expected 1 off-date, got %d", len(s.OffDates))
	}
}

func TestExtractScheduleAllBadOffDates(t *testing.T) {
	s, err := ExtractSchedule("Season Dates: 9/20/25 – 11/22/25 (8 weeks, off Thanksgiving weekend)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.OffDates) != 0 {
		t.Fatalf("expected the off group to be treated as absent, got %d dates", len(s.OffDates))
	}
}

// Dates like 2/31 match the slash format but never existed; time.Date would
// silently normalize them into March, so they must be rejected outright.
func TestExtractScheduleRejectsImpossibleDates(t *testing.T) {
	if _, err := ExtractSchedule("Season Dates: 2/31/26 – 4/18/26 (8 weeks)"); err != ErrNoSchedule {
		t.Fatalf("expected ErrNoSchedule for an impossible start date, got %v", err)
	}

	s, err := ExtractSchedule("Season Dates: 9/20/25 – 11/22/25 (8 weeks, off 11/31/25, 11/29/25)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.OffDates) != 1 {
		t.Fatalf("expected the impossible off-date to be dropped, got %d dates", len(s.OffDates))
	}
	if !s.OffDates[0].Equal(date(2025, time.November, 29)) {
		t.Fatalf("expected 11/29 to survive, got %v", s.OffDates[0])
	}
}

func TestExtractScheduleNotFound(t *testing.T) {
	cases := []string{
		"TBD",
		"",
		"Season Dates: TBD",
		"Registration closes 9/1/25",
		"<p>League details coming soon</p>",
	}

	for _, desc := range cases {
		if _, err := ExtractSchedule(desc); err != ErrNoSchedule {
			t.Fatalf("%q: expected ErrNoSchedule, got %v", desc, err)
		}
	}
}
