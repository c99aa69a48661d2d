// Package rank applies category filters and sort policies to deduplicated
// venue lists. Filtering and sorting are pure and composable; both return
// fresh slices and never mutate their input.
package rank

import (
	"sort"

	"halfway.meetspot.org/internal/models"
)

// ApplyFilters returns the venues whose category tags intersect the selected
// set. An empty selection means "show all", not "show none". A venue passes
// if any one of its tags is selected.
func ApplyFilters(venues []models.Venue, selected map[string]bool) []models.Venue {
	active := false
	for _, on := range selected {
		if on {
			active = true
			break
		}
	}
	if !active {
		return append([]models.Venue(nil), venues...)
	}

	out := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		for _, tag := range v.Categories {
			if selected[tag] {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// Sort orders venues by the given option. Sorting is stable: ties keep their
// input order. Venues missing a rating or price tier sort last regardless of
// direction. Price tiers are ordered by symbol length, so "$" precedes "$$".
func Sort(venues []models.Venue, option models.SortOption) []models.Venue {
	out := append([]models.Venue(nil), venues...)

	switch option {
	case models.SortByDistance:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DistanceFromMidpointKm < out[j].DistanceFromMidpointKm
		})
	case models.SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			iRated, jRated := out[i].Rating != nil, out[j].Rating != nil
			if iRated != jRated {
				return iRated
			}
			if !iRated {
				return false
			}
			return *out[i].Rating > *out[j].Rating
		})
	case models.SortByPriceAsc:
		sort.SliceStable(out, priceComparator(out, true))
	case models.SortByPriceDesc:
		sort.SliceStable(out, priceComparator(out, false))
	}

	return out
}

func priceComparator(venues []models.Venue, ascending bool) func(i, j int) bool {
	return func(i, j int) bool {
		iPriced, jPriced := venues[i].PriceTier != "", venues[j].PriceTier != ""
		if iPriced != jPriced {
			return iPriced
		}
		if !iPriced {
			return false
		}
		if ascending {
			return len(venues[i].PriceTier) < len(venues[j].PriceTier)
		}
		return len(venues[i].PriceTier) > len(venues[j].PriceTier)
	}
}
