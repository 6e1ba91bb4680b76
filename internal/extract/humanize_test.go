package extract

import "testing"

func TestHumanizeQueryType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Equals", "is"},
		{"Before", "is before"},
		{"After", "is after"},
		{"All Of", "is"},
		{"Any Of", "is"},
		{"Contains", "contains"},
		{"GTE", "gte"},
	}

	for _, tt := range tests {
		if got := HumanizeQueryType(tt.in); got != tt.want {
			t.Errorf("HumanizeQueryType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
