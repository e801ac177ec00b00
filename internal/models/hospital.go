package models

// HospitalSummary is the list-view wire model for one hospital aggregate.
// DistanceKm is only populated when the request carried a reference
// coordinate.
type HospitalSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Rating      float64  `json:"rating"`
	TotalCases  int64    `json:"totalCases"`
	AverageCost float64  `json:"averageCost"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}

// NewHospitalSummary creates a HospitalSummary wire model
func NewHospitalSummary(id, name, city, address string, lat, lon, rating float64, totalCases int64, averageCost float64, distanceKm *float64) HospitalSummary {
	return HospitalSummary{
		ID:          id,
		Name:        name,
		City:        city,
		Address:     address,
		Lat:         lat,
		Lon:         lon,
		Rating:      rating,
		TotalCases:  totalCases,
		AverageCost: averageCost,
		DistanceKm:  distanceKm,
	}
}

// TreatmentEntry is the per-treatment stats block in a hospital detail view
type TreatmentEntry struct {
	Description string  `json:"description"`
	CaseCount   int64   `json:"caseCount"`
	TotalCost   float64 `json:"totalCost"`
	AverageCost float64 `json:"averageCost"`
}

// HospitalDetail is the detail-view wire model: the summary plus the full
// per-treatment breakdown and cost rollups.
type HospitalDetail struct {
	HospitalSummary
	TotalCost  float64          `json:"totalCost"`
	Treatments []TreatmentEntry `json:"treatments"`
}

func NewHospitalDetail(summary HospitalSummary, totalCost float64, treatments []TreatmentEntry) HospitalDetail {
	if treatments == nil {
		treatments = []TreatmentEntry{}
	}
	return HospitalDetail{
		HospitalSummary: summary,
		TotalCost:       totalCost,
		Treatments:      treatments,
	}
}
