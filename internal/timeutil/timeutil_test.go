package timeutil

import (
	"testing"
	"time"
)

func TestParseDateValid(t *testing.T) {
	parsed, err := ParseDate("2025-04-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.April || parsed.Day() != 1 {
		t.Fatalf("unexpected parse result: %v", parsed)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("04/01/2025"); err == nil {
		t.Fatal("expected error for non-canonical date")
	}
}

func TestDateOrNow(t *testing.T) {
	now := time.Date(2025, 4, 1, 23, 30, 0, 0, time.UTC)
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	cases := []struct {
		name string
		date string
		loc  *time.Location
		want string
	}{
		{name: "valid date passes through", date: "2025-03-15", loc: time.UTC, want: "2025-03-15"},
		{name: "empty date uses now", date: "", loc: time.UTC, want: "2025-04-01"},
		{name: "invalid date uses now", date: "yesterday", loc: time.UTC, want: "2025-04-01"},
		{name: "location shifts the derived date", date: "", loc: chicago, want: "2025-04-01"},
		{name: "nil location defaults to UTC", date: "", loc: nil, want: "2025-04-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DateOrNow(tc.date, now, tc.loc); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
