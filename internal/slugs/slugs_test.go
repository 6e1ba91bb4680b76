package slugs

import "testing"

func TestComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Male flu cohort", "male-flu-cohort"},
		{"ward census", "ward-census"},
		{"Winter 2026/27 admissions", "winter-2026-27-admissions"},
		{"already-slugged", "already-slugged"},
	}

	for _, tt := range tests {
		if got := Component(tt.in); got != tt.want {
			t.Errorf("Component(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
