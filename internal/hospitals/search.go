package hospitals

import (
	"strings"

	"carecompass.healthdata.org/internal/models"
)

// The filters below are pure functions over an aggregate list. Each
// returns a new list; chained filters always consume the previous filter's
// output, never the full dataset.

// FilterByBudget keeps hospitals whose average cost lies within
// [minBudget, maxBudget]. A maxBudget of zero means no upper bound.
func FilterByBudget(list []*Hospital, minBudget, maxBudget float64) []*Hospital {
	var out []*Hospital
	for _, h := range list {
		if h.AverageCost < minBudget {
			continue
		}
		if maxBudget > 0 && h.AverageCost > maxBudget {
			continue
		}
		out = append(out, h)
	}
	return out
}

// FilterByCity keeps hospitals in the given city, compared
// case-insensitively.
func FilterByCity(list []*Hospital, city string) []*Hospital {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return list
	}
	var out []*Hospital
	for _, h := range list {
		if strings.ToLower(h.City) == city {
			out = append(out, h)
		}
	}
	return out
}

// FilterByQuery keeps hospitals whose name, city or any treatment
// description contains the query as a case-insensitive substring.
func FilterByQuery(list []*Hospital, query string) []*Hospital {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	var out []*Hospital
	for _, h := range list {
		if matchesQuery(h, query) {
			out = append(out, h)
		}
	}
	return out
}

func matchesQuery(h *Hospital, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(h.Name), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(h.City), lowerQuery) {
		return true
	}
	for desc := range h.Treatments {
		if strings.Contains(strings.ToLower(desc), lowerQuery) {
			return true
		}
	}
	return false
}

// FilterByRating keeps hospitals rated at or above the threshold
func FilterByRating(list []*Hospital, minRating float64) []*Hospital {
	if minRating <= 0 {
		return list
	}
	var out []*Hospital
	for _, h := range list {
		if h.Rating >= minRating {
			out = append(out, h)
		}
	}
	return out
}

// FilterByMaxDistance keeps hospitals within maxKm of the origin.
// Hospitals without coordinates are excluded, since their distance is
// unknown.
func FilterByMaxDistance(list []*Hospital, origin models.CoordinatePoint, maxKm float64) []*Hospital {
	if maxKm <= 0 {
		return list
	}
	var out []*Hospital
	for _, h := range list {
		if !h.HasCoordinates {
			continue
		}
		d := models.HaversineDistanceKm(origin, models.CoordinatePoint{Lat: h.Lat, Lon: h.Lon})
		if d <= maxKm {
			out = append(out, h)
		}
	}
	return out
}

// Paginate slices the list for the given 1-based page. The returned slice
// never exceeds pageSize; the last page carries the remainder.
func Paginate(list []*Hospital, page, pageSize int) []*Hospital {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return nil
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
