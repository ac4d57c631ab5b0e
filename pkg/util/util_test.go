package util

import (
	"testing"
	"time"
)

func TestParseDigits(t *testing.T) {
	cases := map[string]struct {
		want int64
		ok   bool
	}{
		"$12,000":              {12000, true},
		"14000":                {14000, true},
		"USD 9 999.00":         {999900, true},
		"call for price":       {0, false},
		"":                     {0, false},
		"99999999999999999999": {0, false},
	}
	for in, tc := range cases {
		got, ok := ParseDigits(in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseDigits(%q) = %d, %v; want %d, %v", in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDigitsOnlyIgnoresNonASCII(t *testing.T) {
	if got := DigitsOnly("١٢3"); got != "3" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRoundString(t *testing.T) {
	if got := RoundString(12999.5); got != "13000" {
		t.Fatalf("unexpected %s", got)
	}
	if got := RoundString(19000); got != "19000" {
		t.Fatalf("unexpected %s", got)
	}
}

func TestFromUnix(t *testing.T) {
	if !FromUnix(0).IsZero() {
		t.Fatalf("expected zero time")
	}
	if FromUnixPtr(0) != nil {
		t.Fatalf("expected nil")
	}
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	if got := FromUnix(ts.Unix()); !got.Equal(ts) {
		t.Fatalf("unexpected %v", got)
	}
	if got := UnixAfter(ts, time.Hour); got != ts.Add(time.Hour).Unix() {
		t.Fatalf("unexpected %d", got)
	}
}
