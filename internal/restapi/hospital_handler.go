package restapi

import (
	"net/http"
	"sort"

	"carecompass.healthdata.org/internal/models"
	"carecompass.healthdata.org/internal/utils"
)

func (api *RestAPI) hospitalHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromPath(r, "id")
	if id == "" {
		api.sendNotFound(w, r)
		return
	}

	h, ok := api.DataManager.HospitalByID(id)
	if !ok {
		api.sendNotFound(w, r)
		return
	}

	treatments := make([]models.TreatmentEntry, 0, len(h.Treatments))
	for desc, stats := range h.Treatments {
		treatments = append(treatments, models.TreatmentEntry{
			Description: desc,
			CaseCount:   stats.CaseCount,
			TotalCost:   stats.TotalCost,
			AverageCost: stats.AverageCost,
		})
	}
	sort.Slice(treatments, func(i, j int) bool {
		return treatments[i].Description < treatments[j].Description
	})

	origin := models.CoordinatePoint{Lat: api.Config.DefaultLat, Lon: api.Config.DefaultLon}
	detail := models.NewHospitalDetail(api.summarize(h, origin), h.TotalCost, treatments)

	response := models.NewEntryResponse(detail)
	api.sendResponse(w, r, response)
}
