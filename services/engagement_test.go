package services

import (
	"math"
	"testing"
)

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		likes    int64
		comments int64
		want     float64
	}{
		{"example video", 1000, 50, 1000.0 / 51.0},
		{"no comments falls back to likes", 500, 0, 500},
		{"nothing at all", 0, 0, 0},
		{"one comment", 10, 1, 5},
		{"more comments than likes", 3, 299, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EngagementRate(tt.likes, tt.comments)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("EngagementRate(%d, %d) = %v, want %v", tt.likes, tt.comments, got, tt.want)
			}
		})
	}
}

func TestEngagementRateExampleRounds(t *testing.T) {
	got := EngagementRate(1000, 50)
	if math.Abs(got-19.61) > 0.005 {
		t.Errorf("EngagementRate(1000, 50) = %v, want ~19.61", got)
	}
}
