package services

import (
	"strings"
	"testing"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.n); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTimingLabel(t *testing.T) {
	tests := []struct {
		hour, day int
		want      string
	}{
		{14, 5, TimingStrong},
		{17, 6, TimingStrong},
		{14, 0, TimingModerate},
		{16, 4, TimingModerate},
		{9, 5, TimingSlight},
		{18, 6, TimingSlight},
		{13, 2, TimingNeutral},
		{0, 0, TimingNeutral},
	}
	for _, tt := range tests {
		if got := TimingLabel(tt.hour, tt.day); got != tt.want {
			t.Errorf("TimingLabel(%d, %d) = %q, want %q", tt.hour, tt.day, got, tt.want)
		}
	}
}

func TestViewRange(t *testing.T) {
	low, high := ViewRange(10000)
	if low != 7000 || high != 13000 {
		t.Errorf("ViewRange(10000) = %d..%d, want 7000..13000", low, high)
	}
	low, high = ViewRange(0)
	if low != 0 || high != 0 {
		t.Errorf("ViewRange(0) = %d..%d, want 0..0", low, high)
	}
}

func TestInsight(t *testing.T) {
	t.Run("strong engagement weekend afternoon", func(t *testing.T) {
		got := Insight(12345, 45, "Music", 15, 6)
		if !strings.HasPrefix(got, "This setup could earn around 12,345 views for a Music video. ") {
			t.Errorf("unexpected opening: %q", got)
		}
		if !strings.Contains(got, "extremely strong") {
			t.Errorf("expected strong engagement advice: %q", got)
		}
		if !strings.Contains(got, "afternoon on a weekend") {
			t.Errorf("expected weekend afternoon advice: %q", got)
		}
	})

	t.Run("healthy engagement weekday afternoon", func(t *testing.T) {
		got := Insight(100, 19.61, "Music", 14, 0)
		if !strings.Contains(got, "Engagement looks healthy") {
			t.Errorf("expected healthy engagement advice: %q", got)
		}
		if !strings.Contains(got, "good engagement window") {
			t.Errorf("expected peak hour advice: %q", got)
		}
	})

	t.Run("low engagement weekday morning", func(t *testing.T) {
		got := Insight(100, 2, "Education", 9, 1)
		if !strings.Contains(got, "lower side") {
			t.Errorf("expected low engagement advice: %q", got)
		}
		if !strings.Contains(got, "afternoon slots (2-5 PM)") {
			t.Errorf("expected neutral timing advice: %q", got)
		}
	})
}
