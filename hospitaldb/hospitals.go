package hospitaldb

import (
	"context"
	"fmt"

	"carecompass.healthdata.org/internal/logging"
)

// ReplaceHospitals replaces the stored hospital snapshot wholesale in a
// single transaction. The dataset is rebuilt on every load rather than
// patched incrementally, so stale rows never survive a reload.
func (c *Client) ReplaceHospitals(ctx context.Context, hospitals []HospitalRow, treatments []TreatmentRow) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "replace_hospitals")

	if _, err := tx.ExecContext(ctx, `DELETE FROM treatments`); err != nil {
		return fmt.Errorf("clear treatments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM hospitals`); err != nil {
		return fmt.Errorf("clear hospitals: %w", err)
	}

	hospitalStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hospitals (id, name, city, address, lat, lon, has_coords, rating, total_cases, total_cost, average_cost, utilization)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare hospital insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(hospitalStmt, c.logger, "hospital_insert_stmt")

	for _, h := range hospitals {
		_, err = hospitalStmt.ExecContext(ctx,
			h.ID, h.Name, h.City, h.Address, h.Lat, h.Lon, h.HasCoords,
			h.Rating, h.TotalCases, h.TotalCost, h.AverageCost, h.Utilization)
		if err != nil {
			return fmt.Errorf("insert hospital %s: %w", h.ID, err)
		}
	}

	treatmentStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO treatments (hospital_id, description, case_count, total_cost, average_cost)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare treatment insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(treatmentStmt, c.logger, "treatment_insert_stmt")

	for _, t := range treatments {
		_, err = treatmentStmt.ExecContext(ctx,
			t.HospitalID, t.Description, t.CaseCount, t.TotalCost, t.AverageCost)
		if err != nil {
			return fmt.Errorf("insert treatment %q for %s: %w", t.Description, t.HospitalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot transaction: %w", err)
	}
	return nil
}

// GetHospitalsWithinBoundsParams bounds a spatial query
type GetHospitalsWithinBoundsParams struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// GetHospitalsWithinBounds returns hospitals with known coordinates inside
// the given bounding box. Callers refine with great-circle distance.
func (c *Client) GetHospitalsWithinBounds(ctx context.Context, params GetHospitalsWithinBoundsParams) ([]HospitalRow, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT id, name, city, address, lat, lon, has_coords, rating, total_cases, total_cost, average_cost, utilization
		FROM hospitals
		WHERE has_coords = 1
		  AND lat BETWEEN ? AND ?
		  AND lon BETWEEN ? AND ?`,
		params.MinLat, params.MaxLat, params.MinLon, params.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("query hospitals within bounds: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "hospitals_within_bounds")

	var result []HospitalRow
	for rows.Next() {
		var h HospitalRow
		err = rows.Scan(&h.ID, &h.Name, &h.City, &h.Address, &h.Lat, &h.Lon, &h.HasCoords,
			&h.Rating, &h.TotalCases, &h.TotalCost, &h.AverageCost, &h.Utilization)
		if err != nil {
			return nil, fmt.Errorf("scan hospital row: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

// CountHospitals returns the number of stored hospital aggregates
func (c *Client) CountHospitals(ctx context.Context) (int64, error) {
	var n int64
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM hospitals`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count hospitals: %w", err)
	}
	return n, nil
}

// CountTreatments returns the number of stored per-treatment stat lines
func (c *Client) CountTreatments(ctx context.Context) (int64, error) {
	var n int64
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM treatments`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count treatments: %w", err)
	}
	return n, nil
}
