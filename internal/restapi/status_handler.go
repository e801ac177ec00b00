package restapi

import (
	"net/http"
	"time"

	"carecompass.healthdata.org/internal/models"
)

// statusEntry reports dataset statistics and the server's current time
type statusEntry struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
	Hospitals    int    `json:"hospitals"`
	Treatments   int    `json:"treatments"`
	RowsRead     int64  `json:"rowsRead"`
	RowsSkipped  int64  `json:"rowsSkipped"`
	LastUpdated  string `json:"lastUpdated"`
}

func (api *RestAPI) statusHandler(w http.ResponseWriter, r *http.Request) {
	stats := api.DataManager.Stats()
	now := time.Now()

	entry := statusEntry{
		ReadableTime: now.Format(time.RFC3339),
		Time:         now.UnixMilli(),
		Hospitals:    stats.Hospitals,
		Treatments:   stats.Treatments,
		RowsRead:     stats.RowsRead,
		RowsSkipped:  stats.RowsSkipped,
		LastUpdated:  stats.LastUpdated.Format(time.RFC3339),
	}

	response := models.NewEntryResponse(entry)
	api.sendResponse(w, r, response)
}
