package engine

import "testing"

func TestRate(t *testing.T) {
	tests := []struct {
		name    string
		prior   uint64
		current uint64
		elapsed float64
		want    float64
	}{
		{"simple delta", 1000, 3000, 2.0, 1000},
		{"one megabyte per second", 1_000_000, 5_000_000, 4.0, 1_000_000},
		{"no movement", 5000, 5000, 1.0, 0},
		{"fractional elapsed", 0, 500, 0.5, 1000},
		{"zero elapsed", 1000, 2000, 0, 0},
		{"negative elapsed", 1000, 2000, -1.0, 0},
		{"counter reset", 9_000_000, 100, 2.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rate(tt.prior, tt.current, tt.elapsed)
			if got != tt.want {
				t.Errorf("Rate(%d, %d, %v) = %v, want %v", tt.prior, tt.current, tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestRateNeverNegative(t *testing.T) {
	cases := []struct {
		prior, current uint64
		elapsed        float64
	}{
		{0, 0, 0},
		{100, 50, 1},
		{^uint64(0), 0, 10},
		{0, ^uint64(0), 0.001},
	}
	for _, c := range cases {
		if got := Rate(c.prior, c.current, c.elapsed); got < 0 {
			t.Errorf("Rate(%d, %d, %v) = %v, want >= 0", c.prior, c.current, c.elapsed, got)
		}
	}
}
