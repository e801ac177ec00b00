package hospitals

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// ParseStats summarizes one CSV ingest pass
type ParseStats struct {
	RowsRead    int64
	RowsSkipped int64
}

// columnAliases maps each logical field to the header names it may appear
// under. Headers are matched case-insensitively after trimming.
var columnAliases = map[string][]string{
	"name":        {"hospital name", "name", "hospital"},
	"address":     {"address", "hospital address"},
	"city":        {"city", "hospital city"},
	"lat":         {"latitude", "lat"},
	"lon":         {"longitude", "lon", "lng", "long"},
	"treatment":   {"treatment", "treatment description", "description", "medical condition"},
	"cost":        {"cost", "encounter cost", "average cost", "charges", "average covered charges"},
	"utilization": {"utilization", "utilization count", "cases", "total discharges"},
	"rating":      {"rating"},
}

// ParseEncounters streams the encounters CSV and folds every row into one
// aggregate per unique (name, city). Rows missing a name or city are
// skipped with a warning; blank treatments fall back to UnknownTreatment;
// unparsable numeric fields default to zero.
func ParseEncounters(r io.Reader, logger *slog.Logger) (map[string]*Hospital, ParseStats, error) {
	var stats ParseStats

	bufReader := bufio.NewReaderSize(r, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("read CSV header: %w", err)
	}

	colIdx, err := resolveColumns(headerRow)
	if err != nil {
		return nil, stats, err
	}

	aggregates := make(map[string]*Hospital)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed lines are tolerated the same way malformed
			// fields are: skip and keep going.
			stats.RowsSkipped++
			if logger != nil {
				logger.Warn("skipping malformed CSV line", "error", err)
			}
			continue
		}
		stats.RowsRead++

		row := parseRow(record, colIdx)
		if row.name == "" || row.city == "" {
			stats.RowsSkipped++
			if logger != nil {
				logger.Warn("skipping encounter row without hospital name or city",
					"row", stats.RowsRead)
			}
			continue
		}

		key := row.key()
		agg, ok := aggregates[key]
		if !ok {
			agg = newHospital(row)
			aggregates[key] = agg
		}
		agg.fold(row)
	}

	for _, agg := range aggregates {
		agg.finalize()
	}

	return aggregates, stats, nil
}

// resolveColumns maps logical field names to column indices. Name and city
// columns are required; everything else is optional.
func resolveColumns(headerRow []string) (map[string]int, error) {
	byHeader := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		byHeader[strings.ToLower(strings.TrimSpace(h))] = i
	}

	colIdx := make(map[string]int)
	for field, aliases := range columnAliases {
		colIdx[field] = -1
		for _, alias := range aliases {
			if i, ok := byHeader[alias]; ok {
				colIdx[field] = i
				break
			}
		}
	}

	if colIdx["name"] < 0 {
		return nil, errors.New("CSV is missing a hospital name column")
	}
	if colIdx["city"] < 0 {
		return nil, errors.New("CSV is missing a city column")
	}
	return colIdx, nil
}

func parseRow(record []string, colIdx map[string]int) encounterRow {
	row := encounterRow{
		name:      field(record, colIdx["name"]),
		address:   field(record, colIdx["address"]),
		city:      field(record, colIdx["city"]),
		treatment: field(record, colIdx["treatment"]),
	}

	row.cost = parseFloatField(field(record, colIdx["cost"]))
	row.utilization = int64(parseFloatField(field(record, colIdx["utilization"])))

	if ratingStr := field(record, colIdx["rating"]); ratingStr != "" {
		if rating, err := strconv.ParseFloat(ratingStr, 64); err == nil {
			row.rating = rating
			row.hasRating = true
		}
	}

	latStr := field(record, colIdx["lat"])
	lonStr := field(record, colIdx["lon"])
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr == nil && lonErr == nil {
			row.lat = lat
			row.lon = lon
			row.hasCoords = true
		}
	}

	return row
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseFloatField parses a numeric field tolerantly: currency symbols and
// thousands separators are stripped, and unparsable values become zero.
func parseFloatField(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
