package tracking

import "testing"

func TestRatePerMinute(t *testing.T) {
	cases := []struct {
		name string
		prev float64
		curr float64
		want float64
	}{
		{"ascent", 100, 150, 3000},
		{"descent", 300, 250, -3000},
		{"level", 100, 100, 0},
		{"small step", 1608, 1608.4, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RatePerMinute(tc.prev, tc.curr)
			if got < tc.want-1e-9 || got > tc.want+1e-9 {
				t.Fatalf("RatePerMinute(%v, %v) = %v, want %v", tc.prev, tc.curr, got, tc.want)
			}
		})
	}
}
