// Package present derives the human-readable annotations attached to venue
// results: travel-time estimates, price tier symbols, and display names for
// provider category tags.
package present

import (
	"math"
	"strings"
)

// minutesPerKm is a linear proxy for trip duration, used only when live
// directions are unavailable. It is an approximation, not a routing result.
const minutesPerKm = 2.5

// EstimateTravelMinutes approximates trip duration from straight-line
// distance.
func EstimateTravelMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm * minutesPerKm))
}

// PriceTierLabel maps the provider's 0-4 price level onto a symbolic tier.
// Unrecognized levels fall back to "$".
func PriceTierLabel(level int) string {
	switch level {
	case 0:
		return "Free"
	case 1:
		return "$"
	case 2:
		return "$$"
	case 3:
		return "$$$"
	case 4:
		return "$$$$"
	default:
		return "$"
	}
}

// CategoryDisplayName converts a snake_case provider category tag into a
// display string, e.g. "tourist_attraction" becomes "Tourist Attraction".
func CategoryDisplayName(tag string) string {
	words := strings.Split(tag, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
