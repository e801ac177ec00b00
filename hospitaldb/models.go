package hospitaldb

import "time"

// HospitalRow is one per-hospital aggregate as stored in the hospitals table
type HospitalRow struct {
	ID          string  // id (slug of name + city)
	Name        string  // name
	City        string  // city
	Address     string  // address
	Lat         float64 // lat
	Lon         float64 // lon
	HasCoords   bool    // has_coords
	Rating      float64 // rating
	TotalCases  int64   // total_cases
	TotalCost   float64 // total_cost
	AverageCost float64 // average_cost
	Utilization int64   // utilization
}

// TreatmentRow is one per-treatment stats line in the treatments table
type TreatmentRow struct {
	HospitalID  string  // hospital_id
	Description string  // description
	CaseCount   int64   // case_count
	TotalCost   float64 // total_cost
	AverageCost float64 // average_cost
}

// UserRow is one registered account in the users table
type UserRow struct {
	ID           string    // id
	Email        string    // email (unique)
	PasswordHash string    // password_hash
	CreatedAt    time.Time // created_at
}
