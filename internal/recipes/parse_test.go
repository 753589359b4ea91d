package recipes

import "testing"

func TestLeadingNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"45 mnt", 45},
		{"120 kcal", 120},
		{"- mnt", 0},
		{"", 0},
		{"secukupnya", 0},
		{"1 jam 30 mnt", 1},
		{"±15 mnt", 15},
		{"007", 7},
	}
	for _, tc := range cases {
		if got := LeadingNumber(tc.in); got != tc.want {
			t.Errorf("LeadingNumber(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
