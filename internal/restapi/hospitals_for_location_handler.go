package restapi

import (
	"net/http"

	"carecompass.healthdata.org/internal/models"
	"carecompass.healthdata.org/internal/utils"
)

func (api *RestAPI) hospitalsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.ParseFloatParam(queryParams, "lat", nil)
	lon, _ := utils.ParseFloatParam(queryParams, "lon", fieldErrors)
	radius, _ := utils.ParseFloatParam(queryParams, "radius", fieldErrors)
	latSpan, _ := utils.ParseFloatParam(queryParams, "latSpan", fieldErrors)
	lonSpan, _ := utils.ParseFloatParam(queryParams, "lonSpan", fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	locationErrors := utils.ValidateLocationParams(lat, lon, radius, latSpan, lonSpan)
	if len(locationErrors) > 0 {
		api.validationErrorResponse(w, r, locationErrors)
		return
	}

	ctx := r.Context()
	if ctx.Err() != nil {
		api.serverErrorResponse(w, r, ctx.Err())
		return
	}

	nearby, err := api.DataManager.HospitalsForLocation(ctx, lat, lon, radius, latSpan, lonSpan)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	origin := models.CoordinatePoint{Lat: lat, Lon: lon}
	results := make([]models.HospitalSummary, 0, len(nearby))
	for _, h := range nearby {
		results = append(results, api.summarize(h, origin))
	}

	response := models.NewListResponse(results, nil)
	api.sendResponse(w, r, response)
}
