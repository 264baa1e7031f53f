package timeutil

import (
	"testing"
	"time"

	"go-events-api/core/errors"
)

func TestParseInstant(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-06-10T14:00:00Z", time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)},
		{"2025-06-10T14:00", time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)},
		{"2025-06-10", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseInstant(tc.in)
		if err != nil {
			t.Errorf("ParseInstant(%q) failed: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseInstant(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseInstantRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2025-13-40T99:99"} {
		_, err := ParseInstant(in)
		if err == nil {
			t.Errorf("ParseInstant(%q) succeeded, want error", in)
			continue
		}
		if !errors.IsCode(err, errors.ErrInvalidDate) {
			t.Errorf("ParseInstant(%q) error code = %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestToUTCISO(t *testing.T) {
	// 19:00 in New York during DST is 23:00 UTC.
	got, err := ToUTCISO("2025-06-10T19:00", "America/New_York")
	if err != nil {
		t.Fatalf("ToUTCISO failed: %v", err)
	}
	if got != "2025-06-10T23:00:00Z" {
		t.Errorf("got %q, want 2025-06-10T23:00:00Z", got)
	}

	// Same wall clock in winter is 5 hours behind UTC.
	got, err = ToUTCISO("2025-01-10T19:00", "America/New_York")
	if err != nil {
		t.Fatalf("ToUTCISO failed: %v", err)
	}
	if got != "2025-01-11T00:00:00Z" {
		t.Errorf("got %q, want 2025-01-11T00:00:00Z", got)
	}
}

func TestToUTCISOPassesThroughOffsets(t *testing.T) {
	got, err := ToUTCISO("2025-06-10T19:00:00+02:00", "America/New_York")
	if err != nil {
		t.Fatalf("ToUTCISO failed: %v", err)
	}
	if got != "2025-06-10T17:00:00Z" {
		t.Errorf("got %q, want 2025-06-10T17:00:00Z", got)
	}
}

func TestToUTCISOUnknownZone(t *testing.T) {
	if _, err := ToUTCISO("2025-06-10T19:00", "Atlantis/Capital"); err == nil {
		t.Fatal("expected an error for an unknown zone")
	}
}

func TestFormatInTZ(t *testing.T) {
	got, err := FormatInTZ("2025-06-10T23:00:00Z", "America/New_York")
	if err != nil {
		t.Fatalf("FormatInTZ failed: %v", err)
	}
	if got != "Jun 10, 2025 7:00 PM" {
		t.Errorf("got %q, want %q", got, "Jun 10, 2025 7:00 PM")
	}

	got, err = FormatInTZ("2025-06-10T23:00:00Z", "", "2006-01-02 15:04")
	if err != nil {
		t.Fatalf("FormatInTZ failed: %v", err)
	}
	if got != "2025-06-10 23:00" {
		t.Errorf("got %q, want %q", got, "2025-06-10 23:00")
	}
}
