package registry

import "testing"

func TestCanonicalCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Home", "Home", true},
		{"home", "Home", true},
		{"OTHeRs", "Others", true},
		{"to myself", "To myself", true},
		{"tomyself", "To myself", true},
		{"To  Myself", "To myself", true},
		{"Unknown", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalCategory(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("CanonicalCategory(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCategoryIndex(t *testing.T) {
	if got := CategoryIndex("Home"); got != 0 {
		t.Errorf("CategoryIndex(Home) = %d, want 0", got)
	}
	if got := CategoryIndex("Others"); got != 6 {
		t.Errorf("CategoryIndex(Others) = %d, want 6", got)
	}
	if got := CategoryIndex("home"); got != -1 {
		t.Errorf("CategoryIndex of non-canonical name should be -1, got %d", got)
	}
}

func TestMonthLookups(t *testing.T) {
	name, ok := MonthName(12)
	if !ok || name != "December" {
		t.Fatalf("MonthName(12) = %q, %v", name, ok)
	}
	if _, ok := MonthName(13); ok {
		t.Fatal("MonthName(13) should fail")
	}
	n, ok := MonthNumber("January")
	if !ok || n != 1 {
		t.Fatalf("MonthNumber(January) = %d, %v", n, ok)
	}
	if _, ok := MonthNumber("Januray"); ok {
		t.Fatal("MonthNumber of a misspelled month should fail")
	}
}

func TestCanonicalMonth(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"December", "December", true},
		{"december", "December", true},
		{"DECEMBER", "December", true},
		{"Smarch", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalMonth(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("CanonicalMonth(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestYearSupported(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024", true},
		{"2030", true},
		{"2023", false},
		{"2031", false},
		{"24", false},
		{"abcd", false},
	}
	for _, tc := range cases {
		if got := YearSupported(tc.in); got != tc.ok {
			t.Errorf("YearSupported(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestPeriodsUntil(t *testing.T) {
	got := PeriodsUntil("January", "2024")
	if len(got) != 0 {
		t.Fatalf("no periods expected before the earliest one, got %d", len(got))
	}

	got = PeriodsUntil("March", "2024")
	if len(got) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(got))
	}
	if got[0].Key() != "January|2024" || got[1].Key() != "February|2024" {
		t.Fatalf("unexpected periods: %v", got)
	}

	// Walk crosses year boundaries.
	got = PeriodsUntil("February", "2025")
	if len(got) != 13 {
		t.Fatalf("expected 13 periods, got %d", len(got))
	}
	if got[12].Key() != "January|2025" {
		t.Fatalf("last period = %s, want January|2025", got[12].Key())
	}
}
