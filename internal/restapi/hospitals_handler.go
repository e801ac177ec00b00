package restapi

import (
	"net/http"

	"carecompass.healthdata.org/internal/hospitals"
	"carecompass.healthdata.org/internal/models"
	"carecompass.healthdata.org/internal/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func (api *RestAPI) hospitalsHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	minBudget, fieldErrors := utils.ParseFloatParam(queryParams, "minBudget", nil)
	maxBudget, _ := utils.ParseFloatParam(queryParams, "maxBudget", fieldErrors)
	minRating, _ := utils.ParseFloatParam(queryParams, "minRating", fieldErrors)
	maxDistance, _ := utils.ParseFloatParam(queryParams, "maxDistance", fieldErrors)
	lat, _ := utils.ParseFloatParam(queryParams, "lat", fieldErrors)
	lon, _ := utils.ParseFloatParam(queryParams, "lon", fieldErrors)
	page, _ := utils.ParseIntParam(queryParams, "page", 1, fieldErrors)
	pageSize, _ := utils.ParseIntParam(queryParams, "pageSize", defaultPageSize, fieldErrors)

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if page < 1 {
		fieldErrors["page"] = append(fieldErrors["page"], "page must be at least 1")
	}
	if pageSize < 1 || pageSize > maxPageSize {
		fieldErrors["pageSize"] = append(fieldErrors["pageSize"], "pageSize must be between 1 and 100")
	}

	// Fall back to the configured coordinate when the caller does not
	// supply one, the same default used when geolocation is unavailable.
	hasOrigin := queryParams.Get("lat") != "" && queryParams.Get("lon") != ""
	if !hasOrigin {
		lat = api.Config.DefaultLat
		lon = api.Config.DefaultLon
	} else {
		if err := utils.ValidateLatitude(lat); err != nil {
			fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
		}
		if err := utils.ValidateLongitude(lon); err != nil {
			fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
		}
	}

	query, err := utils.ValidateAndSanitizeQuery(queryParams.Get("query"))
	if err != nil {
		fieldErrors["query"] = append(fieldErrors["query"], err.Error())
	}

	sortOrder, ok := hospitals.ParseSortOrder(queryParams.Get("sort"))
	if !ok {
		fieldErrors["sort"] = append(fieldErrors["sort"], "sort must be one of budget, rating, distance, recommended")
	}

	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	origin := models.CoordinatePoint{Lat: lat, Lon: lon}

	// Filters compose sequentially; each consumes the previous result.
	list := api.DataManager.Hospitals()
	list = hospitals.FilterByCity(list, queryParams.Get("city"))
	list = hospitals.FilterByQuery(list, query)
	list = hospitals.FilterByBudget(list, minBudget, maxBudget)
	list = hospitals.FilterByRating(list, minRating)
	list = hospitals.FilterByMaxDistance(list, origin, maxDistance)

	hospitals.Sort(list, sortOrder, origin, api.Config.RankWeights)

	totalItems := len(list)
	pageItems := hospitals.Paginate(list, page, pageSize)

	summaries := make([]models.HospitalSummary, 0, len(pageItems))
	for _, h := range pageItems {
		summaries = append(summaries, api.summarize(h, origin))
	}

	pagination := models.NewPagination(page, pageSize, totalItems)
	response := models.NewListResponse(summaries, &pagination)
	api.sendResponse(w, r, response)
}

// summarize builds the wire model for one aggregate, attaching the distance
// from the origin when the hospital has coordinates.
func (api *RestAPI) summarize(h *hospitals.Hospital, origin models.CoordinatePoint) models.HospitalSummary {
	var distanceKm *float64
	if h.HasCoordinates {
		d := models.HaversineDistanceKm(origin, models.CoordinatePoint{Lat: h.Lat, Lon: h.Lon})
		distanceKm = &d
	}
	return models.NewHospitalSummary(
		h.ID, h.Name, h.City, h.Address,
		h.Lat, h.Lon, h.Rating,
		h.TotalCases, h.AverageCost, distanceKm)
}
