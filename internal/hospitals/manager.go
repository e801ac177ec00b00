package hospitals

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"carecompass.healthdata.org/hospitaldb"
	"carecompass.healthdata.org/internal/logging"
	"carecompass.healthdata.org/internal/models"
)

// Manager owns the hospital dataset and provides methods to access it. The
// aggregate list is rebuilt wholesale on every (re)load and is read-only in
// between, so readers only need the snapshot lock for the swap itself.
type Manager struct {
	source      string
	isLocalFile bool
	config      Config
	logger      *slog.Logger

	DB *hospitaldb.Client

	mu          sync.RWMutex
	byID        map[string]*Hospital
	hospitals   []*Hospital
	treatments  []string
	parseStats  ParseStats
	lastUpdated time.Time

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitManager loads the encounters dataset from the configured source,
// stores the aggregate snapshot, and starts periodic refresh when the
// source is a URL.
func InitManager(config Config, db *hospitaldb.Client, logger *slog.Logger) (*Manager, error) {
	isLocalFile := !strings.HasPrefix(config.DataSource, "http://") && !strings.HasPrefix(config.DataSource, "https://")

	manager := &Manager{
		source:       config.DataSource,
		isLocalFile:  isLocalFile,
		config:       config,
		logger:       logger,
		DB:           db,
		shutdownChan: make(chan struct{}),
	}

	if err := manager.reload(context.Background()); err != nil {
		return nil, err
	}

	if !isLocalFile {
		manager.wg.Add(1)
		go manager.updateEncountersPeriodically()
	}

	return manager, nil
}

// rawEncounterData reads the CSV blob from either a URL or a local file
func rawEncounterData(source string, isLocalFile bool, logger *slog.Logger) ([]byte, error) {
	if isLocalFile {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local encounters file: %w", err)
		}
		return b, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("error downloading encounters data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "encounters_download")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading encounters data: unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading encounters data: %w", err)
	}
	return b, nil
}

// reload fetches, parses and aggregates the dataset, then swaps the
// snapshot in the database and in memory. The database store commits
// first; if it fails, memory keeps the previous snapshot so the two
// never diverge.
func (manager *Manager) reload(ctx context.Context) error {
	start := time.Now()

	b, err := rawEncounterData(manager.source, manager.isLocalFile, manager.logger)
	if err != nil {
		return err
	}

	aggregates, stats, err := ParseEncounters(bytes.NewReader(b), manager.logger)
	if err != nil {
		return fmt.Errorf("error parsing encounters data: %w", err)
	}

	if err := manager.storeSnapshot(ctx, aggregates); err != nil {
		return err
	}

	manager.setSnapshot(aggregates, stats)

	logging.LogOperation(manager.logger, "encounters_imported",
		slog.String("source", manager.source),
		slog.Int("hospital_count", len(aggregates)),
		slog.Int64("rows_read", stats.RowsRead),
		slog.Int64("rows_skipped", stats.RowsSkipped),
		slog.Duration("duration", time.Since(start)))

	return nil
}

func (manager *Manager) setSnapshot(aggregates map[string]*Hospital, stats ParseStats) {
	byID := make(map[string]*Hospital, len(aggregates))
	list := make([]*Hospital, 0, len(aggregates))
	treatmentSet := make(map[string]struct{})

	for _, h := range aggregates {
		byID[h.ID] = h
		list = append(list, h)
		for desc := range h.Treatments {
			treatmentSet[desc] = struct{}{}
		}
	}

	treatments := make([]string, 0, len(treatmentSet))
	for desc := range treatmentSet {
		treatments = append(treatments, desc)
	}
	sort.Strings(treatments)

	manager.mu.Lock()
	manager.byID = byID
	manager.hospitals = list
	manager.treatments = treatments
	manager.parseStats = stats
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()
}

// storeSnapshot persists an aggregate set so spatial queries can run
// against the database.
func (manager *Manager) storeSnapshot(ctx context.Context, aggregates map[string]*Hospital) error {
	hospitalRows := make([]hospitaldb.HospitalRow, 0, len(aggregates))
	var treatmentRows []hospitaldb.TreatmentRow

	for _, h := range aggregates {
		hospitalRows = append(hospitalRows, hospitaldb.HospitalRow{
			ID:          h.ID,
			Name:        h.Name,
			City:        h.City,
			Address:     h.Address,
			Lat:         h.Lat,
			Lon:         h.Lon,
			HasCoords:   h.HasCoordinates,
			Rating:      h.Rating,
			TotalCases:  h.TotalCases,
			TotalCost:   h.TotalCost,
			AverageCost: h.AverageCost,
			Utilization: h.Utilization,
		})
		for desc, stats := range h.Treatments {
			treatmentRows = append(treatmentRows, hospitaldb.TreatmentRow{
				HospitalID:  h.ID,
				Description: desc,
				CaseCount:   stats.CaseCount,
				TotalCost:   stats.TotalCost,
				AverageCost: stats.AverageCost,
			})
		}
	}

	if err := manager.DB.ReplaceHospitals(ctx, hospitalRows, treatmentRows); err != nil {
		return fmt.Errorf("error storing hospital snapshot: %w", err)
	}
	return nil
}

// updateEncountersPeriodically refreshes the dataset on a regular schedule.
// Only runs when the source is a URL.
func (manager *Manager) updateEncountersPeriodically() {
	defer manager.wg.Done()

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			err := manager.reload(ctx)
			cancel()

			if err != nil {
				// Keep serving the previous snapshot
				logging.LogError(manager.logger, "error refreshing encounters data", err,
					slog.String("source", manager.source))
			}
		case <-manager.shutdownChan:
			manager.logger.Info("shutting down encounters refresh")
			return
		}
	}
}

// Shutdown stops background refresh and waits for it to finish
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
	})
	manager.wg.Wait()
}

// Hospitals returns the current aggregate list. No iteration order is
// guaranteed; callers sort explicitly.
func (manager *Manager) Hospitals() []*Hospital {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	list := make([]*Hospital, len(manager.hospitals))
	copy(list, manager.hospitals)
	return list
}

// HospitalByID looks up one aggregate by its ID slug
func (manager *Manager) HospitalByID(id string) (*Hospital, bool) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	h, ok := manager.byID[id]
	return h, ok
}

// Treatments returns the distinct treatment descriptions, sorted
func (manager *Manager) Treatments() []string {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	list := make([]string, len(manager.treatments))
	copy(list, manager.treatments)
	return list
}

// DataStats describes the currently loaded snapshot
type DataStats struct {
	Hospitals   int
	Treatments  int
	RowsRead    int64
	RowsSkipped int64
	LastUpdated time.Time
}

func (manager *Manager) Stats() DataStats {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	return DataStats{
		Hospitals:   len(manager.hospitals),
		Treatments:  len(manager.treatments),
		RowsRead:    manager.parseStats.RowsRead,
		RowsSkipped: manager.parseStats.RowsSkipped,
		LastUpdated: manager.lastUpdated,
	}
}

// HospitalsForLocation returns hospitals near a coordinate, nearest first.
// A bounding box prefilter runs against the database; results are refined
// with great-circle distance. Radius is in meters and defaults to 25km.
func (manager *Manager) HospitalsForLocation(ctx context.Context, lat, lon, radius, latSpan, lonSpan float64) ([]*Hospital, error) {
	if radius == 0 {
		radius = 25000
	}

	// Convert radius in meters to approximate degrees.
	// 1 degree latitude ≈ 111km, 1 degree longitude varies by latitude.
	latDegreeInMeters := 111000.0
	lonDegreeInMeters := 111000.0 * math.Cos(lat*math.Pi/180)

	// A half-specified span falls back to the radius search
	useSpans := latSpan > 0 && lonSpan > 0

	var params hospitaldb.GetHospitalsWithinBoundsParams
	if useSpans {
		params = hospitaldb.GetHospitalsWithinBoundsParams{
			MinLat: lat - latSpan,
			MaxLat: lat + latSpan,
			MinLon: lon - lonSpan,
			MaxLon: lon + lonSpan,
		}
	} else {
		latRadiusDegrees := radius / latDegreeInMeters
		lonRadiusDegrees := radius / lonDegreeInMeters
		params = hospitaldb.GetHospitalsWithinBoundsParams{
			MinLat: lat - latRadiusDegrees,
			MaxLat: lat + latRadiusDegrees,
			MinLon: lon - lonRadiusDegrees,
			MaxLon: lon + lonRadiusDegrees,
		}
	}

	rows, err := manager.DB.GetHospitalsWithinBounds(ctx, params)
	if err != nil {
		return nil, err
	}

	origin := models.CoordinatePoint{Lat: lat, Lon: lon}
	radiusKm := radius / 1000.0

	type hospitalWithDistance struct {
		hospital *Hospital
		distance float64
	}

	var candidates []hospitalWithDistance
	manager.mu.RLock()
	for _, row := range rows {
		h, ok := manager.byID[row.ID]
		if !ok || !h.HasCoordinates {
			continue
		}
		d := models.HaversineDistanceKm(origin, models.CoordinatePoint{Lat: h.Lat, Lon: h.Lon})
		if !useSpans && d > radiusKm {
			continue
		}
		candidates = append(candidates, hospitalWithDistance{hospital: h, distance: d})
	}
	manager.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	result := make([]*Hospital, len(candidates))
	for i, c := range candidates {
		result[i] = c.hospital
	}
	return result, nil
}
