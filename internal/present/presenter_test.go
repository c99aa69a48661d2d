package present

import "testing"

func TestEstimateTravelMinutes(t *testing.T) {
	tests := []struct {
		distanceKm float64
		want       int
	}{
		{0, 0},
		{1, 3},    // 2.5 rounds up
		{2, 5},
		{4.4, 11},
		{10, 25},
	}

	for _, tt := range tests {
		if got := EstimateTravelMinutes(tt.distanceKm); got != tt.want {
			t.Errorf("EstimateTravelMinutes(%v) = %d, want %d", tt.distanceKm, got, tt.want)
		}
	}
}

func TestPriceTierLabel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Free"},
		{1, "$"},
		{2, "$$"},
		{3, "$$$"},
		{4, "$$$$"},
		{99, "$"},
		{-1, "$"},
	}

	for _, tt := range tests {
		if got := PriceTierLabel(tt.level); got != tt.want {
			t.Errorf("PriceTierLabel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestCategoryDisplayName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"cafe", "Cafe"},
		{"tourist_attraction", "Tourist Attraction"},
		{"movie_rental_store", "Movie Rental Store"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CategoryDisplayName(tt.tag); got != tt.want {
			t.Errorf("CategoryDisplayName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
