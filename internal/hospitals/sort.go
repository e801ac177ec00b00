package hospitals

import (
	"math"
	"sort"

	"carecompass.healthdata.org/internal/appconf"
	"carecompass.healthdata.org/internal/models"
)

// SortOrder names a comparator for hospital listings
type SortOrder string

const (
	SortByBudget    SortOrder = "budget"
	SortByRating    SortOrder = "rating"
	SortByDistance  SortOrder = "distance"
	SortRecommended SortOrder = "recommended"
)

// ParseSortOrder resolves a sort query parameter. Empty input defaults to
// the recommended ordering.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortByBudget, SortByRating, SortByDistance, SortRecommended:
		return SortOrder(s), true
	case "":
		return SortRecommended, true
	default:
		return "", false
	}
}

// Sort orders the list in place. Budget sorts cheapest first, rating
// highest first, distance nearest first, and recommended by the blended
// score. Ties break on hospital ID so output is deterministic.
func Sort(list []*Hospital, order SortOrder, origin models.CoordinatePoint, weights appconf.RankWeights) {
	switch order {
	case SortByBudget:
		sort.Slice(list, func(i, j int) bool {
			if list[i].AverageCost != list[j].AverageCost {
				return list[i].AverageCost < list[j].AverageCost
			}
			return list[i].ID < list[j].ID
		})
	case SortByRating:
		sort.Slice(list, func(i, j int) bool {
			if list[i].Rating != list[j].Rating {
				return list[i].Rating > list[j].Rating
			}
			return list[i].ID < list[j].ID
		})
	case SortByDistance:
		distances := distancesFrom(list, origin)
		sort.Slice(list, func(i, j int) bool {
			if distances[list[i].ID] != distances[list[j].ID] {
				return distances[list[i].ID] < distances[list[j].ID]
			}
			return list[i].ID < list[j].ID
		})
	case SortRecommended:
		scores := recommendedScores(list, origin, weights)
		sort.Slice(list, func(i, j int) bool {
			if scores[list[i].ID] != scores[list[j].ID] {
				return scores[list[i].ID] > scores[list[j].ID]
			}
			return list[i].ID < list[j].ID
		})
	}
}

// distancesFrom computes each hospital's distance from the origin.
// Hospitals without coordinates sort last.
func distancesFrom(list []*Hospital, origin models.CoordinatePoint) map[string]float64 {
	distances := make(map[string]float64, len(list))
	for _, h := range list {
		if !h.HasCoordinates {
			distances[h.ID] = math.Inf(1)
			continue
		}
		distances[h.ID] = models.HaversineDistanceKm(origin, models.CoordinatePoint{Lat: h.Lat, Lon: h.Lon})
	}
	return distances
}

// recommendedScores blends normalized rating, normalized case volume and
// inverted normalized distance using the configured weights. Normalization
// is min-max over the candidate list, so scores are relative to the current
// result set.
func recommendedScores(list []*Hospital, origin models.CoordinatePoint, weights appconf.RankWeights) map[string]float64 {
	if len(list) == 0 {
		return nil
	}

	totalWeight := weights.Rating + weights.Volume + weights.Distance
	if totalWeight <= 0 {
		weights = appconf.DefaultRankWeights()
		totalWeight = weights.Rating + weights.Volume + weights.Distance
	}

	distances := distancesFrom(list, origin)

	minRating, maxRating := list[0].Rating, list[0].Rating
	minVolume, maxVolume := list[0].TotalCases, list[0].TotalCases
	minDist, maxDist := math.Inf(1), math.Inf(-1)

	for _, h := range list {
		if h.Rating < minRating {
			minRating = h.Rating
		}
		if h.Rating > maxRating {
			maxRating = h.Rating
		}
		if h.TotalCases < minVolume {
			minVolume = h.TotalCases
		}
		if h.TotalCases > maxVolume {
			maxVolume = h.TotalCases
		}
		if d := distances[h.ID]; !math.IsInf(d, 1) {
			if d < minDist {
				minDist = d
			}
			if d > maxDist {
				maxDist = d
			}
		}
	}

	scores := make(map[string]float64, len(list))
	for _, h := range list {
		ratingScore := normalize(h.Rating, minRating, maxRating)
		volumeScore := normalize(float64(h.TotalCases), float64(minVolume), float64(maxVolume))

		// Nearer is better; hospitals with unknown distance get the
		// worst distance score.
		distScore := 0.0
		if d := distances[h.ID]; !math.IsInf(d, 1) && !math.IsInf(minDist, 1) {
			distScore = 1 - normalize(d, minDist, maxDist)
		}

		scores[h.ID] = (weights.Rating*ratingScore +
			weights.Volume*volumeScore +
			weights.Distance*distScore) / totalWeight
	}
	return scores
}

// normalize maps v into [0, 1] over [min, max]. A degenerate range maps
// everything to 1 so equal candidates are not penalized.
func normalize(v, min, max float64) float64 {
	if max <= min {
		return 1
	}
	return (v - min) / (max - min)
}
