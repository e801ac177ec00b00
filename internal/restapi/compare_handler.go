package restapi

import (
	"fmt"
	"net/http"
	"strings"

	"carecompass.healthdata.org/internal/hospitals"
	"carecompass.healthdata.org/internal/models"
	"carecompass.healthdata.org/internal/utils"
)

// compareHandler computes the comparison chart data for a bounded selection
// of hospitals: each entry's cost for the chosen treatment (or overall
// average) and its low/medium/high category relative to the selection.
func (api *RestAPI) compareHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	idsParam := strings.TrimSpace(queryParams.Get("ids"))
	if idsParam == "" {
		api.validationErrorResponse(w, r, map[string][]string{
			"ids": {"ids is required"},
		})
		return
	}

	treatment, err := utils.ValidateAndSanitizeQuery(queryParams.Get("treatment"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{
			"treatment": {err.Error()},
		})
		return
	}

	ids := strings.Split(idsParam, ",")
	seen := make(map[string]bool, len(ids))
	selection := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		// The selection set never holds the same hospital twice
		if seen[id] {
			api.validationErrorResponse(w, r, map[string][]string{
				"ids": {fmt.Sprintf("duplicate hospital id %q", id)},
			})
			return
		}
		seen[id] = true
		selection = append(selection, id)
	}

	limit := api.Config.CompareLimit()
	if len(selection) < 2 || len(selection) > limit {
		api.validationErrorResponse(w, r, map[string][]string{
			"ids": {fmt.Sprintf("select between 2 and %d hospitals", limit)},
		})
		return
	}

	entries := make([]models.ComparisonEntry, 0, len(selection))
	for _, id := range selection {
		h, ok := api.DataManager.HospitalByID(id)
		if !ok {
			api.sendNotFound(w, r)
			return
		}

		cost, caseCount := comparisonCost(h, treatment)
		entries = append(entries, models.ComparisonEntry{
			HospitalID: h.ID,
			Name:       h.Name,
			City:       h.City,
			Cost:       cost,
			CaseCount:  caseCount,
		})
	}

	data := models.NewComparisonData(treatment, entries)
	response := models.NewOKResponse(data)
	api.sendResponse(w, r, response)
}

// comparisonCost picks the cost to chart for one hospital: the named
// treatment's average when given and present, the overall average
// otherwise.
func comparisonCost(h *hospitals.Hospital, treatment string) (float64, int64) {
	if treatment != "" {
		if stats, ok := h.Treatments[treatment]; ok {
			return stats.AverageCost, stats.CaseCount
		}
		// Selected hospital does not offer the treatment; chart zero
		// rather than dropping the entry.
		return 0, 0
	}
	return h.AverageCost, h.TotalCases
}
