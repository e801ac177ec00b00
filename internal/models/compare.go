package models

// Cost categories assigned to comparison entries. Boundaries are relative
// to the current selection, not the whole dataset, so they shift as the
// selection changes.
const (
	CostCategoryLow    = "low"
	CostCategoryMedium = "medium"
	CostCategoryHigh   = "high"
)

// ComparisonEntry is one selected hospital's slice of the comparison chart
// data: the cost for the chosen treatment (or the overall average when no
// treatment was chosen) plus its relative cost category.
type ComparisonEntry struct {
	HospitalID string  `json:"hospitalId"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Cost       float64 `json:"cost"`
	CaseCount  int64   `json:"caseCount"`
	Category   string  `json:"category"`
}

// ComparisonData is the payload for the comparison endpoint
type ComparisonData struct {
	Treatment string            `json:"treatment,omitempty"`
	Entries   []ComparisonEntry `json:"entries"`
	MinCost   float64           `json:"minCost"`
	MaxCost   float64           `json:"maxCost"`
}

// NewComparisonData assigns cost categories to the entries by splitting the
// observed cost range of the selection into equal thirds. A degenerate
// range (all costs equal) puts every entry in the medium category.
func NewComparisonData(treatment string, entries []ComparisonEntry) ComparisonData {
	if len(entries) == 0 {
		return ComparisonData{Treatment: treatment, Entries: []ComparisonEntry{}}
	}

	minCost, maxCost := entries[0].Cost, entries[0].Cost
	for _, e := range entries[1:] {
		if e.Cost < minCost {
			minCost = e.Cost
		}
		if e.Cost > maxCost {
			maxCost = e.Cost
		}
	}

	span := maxCost - minCost
	for i := range entries {
		entries[i].Category = costCategory(entries[i].Cost, minCost, span)
	}

	return ComparisonData{
		Treatment: treatment,
		Entries:   entries,
		MinCost:   minCost,
		MaxCost:   maxCost,
	}
}

func costCategory(cost, minCost, span float64) string {
	if span == 0 {
		return CostCategoryMedium
	}
	switch {
	case cost < minCost+span/3:
		return CostCategoryLow
	case cost < minCost+2*span/3:
		return CostCategoryMedium
	default:
		return CostCategoryHigh
	}
}
