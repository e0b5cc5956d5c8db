package cli

import "testing"

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{1_500_000, "1.5M"},
		{3_580_245, "3.6M"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1234567); got != "1,234,567" {
		t.Fatalf("FormatCount = %q", got)
	}
	if got := FormatCount(-1000); got != "-1,000" {
		t.Fatalf("FormatCount(-1000) = %q", got)
	}
	if got := FormatCount(12); got != "12" {
		t.Fatalf("FormatCount(12) = %q", got)
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(12); got != "12" {
		t.Fatalf("FormatHours(12) = %q", got)
	}
	if got := FormatHours(12.57); got != "12.6" {
		t.Fatalf("FormatHours(12.57) = %q", got)
	}
}
