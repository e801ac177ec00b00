package restapi

import (
	"net/http"

	"carecompass.healthdata.org/internal/models"
)

func (api *RestAPI) treatmentsHandler(w http.ResponseWriter, r *http.Request) {
	treatments := api.DataManager.Treatments()

	response := models.NewListResponse(treatments, nil)
	api.sendResponse(w, r, response)
}
