package companion

import (
	"errors"
	"testing"
	"time"

	"github.com/CompaniaApp/Compania-Backend/internal/db"
)

func TestIntervalsOverlap(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"boundary touch end-start", "09:00", "10:00", "10:00", "11:00", false},
		{"boundary touch start-end", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "14:00", "15:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := intervalsOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Errorf("intervalsOverlap(%s-%s, %s-%s) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
			// Overlap is symmetric.
			if intervalsOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd) != got {
				t.Error("overlap check is not symmetric")
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	today := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)

	t.Run("valid same-day window", func(t *testing.T) {
		date, err := validateWindow(TimeAvailabilityInput{
			Date:      "2025-01-10",
			StartTime: "09:00",
			EndTime:   "10:00",
		}, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !date.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date: %v", date)
		}
	})

	rejected := []struct {
		name  string
		input TimeAvailabilityInput
	}{
		{"past date", TimeAvailabilityInput{Date: "2025-01-09", StartTime: "09:00", EndTime: "10:00"}},
		{"bad date format", TimeAvailabilityInput{Date: "10/01/2025", StartTime: "09:00", EndTime: "10:00"}},
		{"bad start time", TimeAvailabilityInput{Date: "2025-01-11", StartTime: "9am", EndTime: "10:00"}},
		{"bad end time", TimeAvailabilityInput{Date: "2025-01-11", StartTime: "09:00", EndTime: "25:00"}},
		{"start after end", TimeAvailabilityInput{Date: "2025-01-11", StartTime: "11:00", EndTime: "10:00"}},
		{"start equals end", TimeAvailabilityInput{Date: "2025-01-11", StartTime: "10:00", EndTime: "10:00"}},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validateWindow(tc.input, today)
			var vErr *db.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestValidCertificateExt(t *testing.T) {
	for _, name := range []string{"cert.pdf", "cert.PDF", "dir/cert.pdf"} {
		if !ValidCertificateExt(name) {
			t.Errorf("%s should be accepted", name)
		}
	}
	for _, name := range []string{"cert.docx", "cert.pdf.exe", "cert", "cert.png"} {
		if ValidCertificateExt(name) {
			t.Errorf("%s should be rejected", name)
		}
	}
}
