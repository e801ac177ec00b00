package restapi

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carecompass.healthdata.org/internal/appconf"
	"carecompass.healthdata.org/internal/models"
)

func compareEndpoint(ids string, treatment string) string {
	endpoint := "/api/compare?ids=" + url.QueryEscape(ids)
	if treatment != "" {
		endpoint += "&treatment=" + url.QueryEscape(treatment)
	}
	return endpoint
}

func TestCompareWithTreatment(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t,
		compareEndpoint("apollo-care_new-delhi,max-healthcare_new-delhi", "Knee Replacement"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := dataMap(t, model)
	assert.Equal(t, "Knee Replacement", data["treatment"])
	assert.Equal(t, 260000.0, data["minCost"])
	assert.Equal(t, 300000.0, data["maxCost"])

	entries := data["entries"].([]any)
	require.Len(t, entries, 2)

	apollo := entries[0].(map[string]any)
	assert.Equal(t, "apollo-care_new-delhi", apollo["hospitalId"])
	assert.Equal(t, 260000.0, apollo["cost"])
	assert.Equal(t, float64(2), apollo["caseCount"])
	assert.Equal(t, models.CostCategoryLow, apollo["category"])

	max := entries[1].(map[string]any)
	assert.Equal(t, 300000.0, max["cost"])
	assert.Equal(t, models.CostCategoryHigh, max["category"])
}

func TestCompareWithoutTreatmentUsesOverallAverage(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t,
		compareEndpoint("apollo-care_new-delhi,fortis-heart-institute_new-delhi", ""))

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := dataMap(t, model)
	entries := data["entries"].([]any)
	require.Len(t, entries, 2)

	apollo := entries[0].(map[string]any)
	assert.InDelta(t, 333333.33, apollo["cost"].(float64), 0.01)
	assert.Equal(t, float64(3), apollo["caseCount"])

	fortis := entries[1].(map[string]any)
	assert.Equal(t, 332500.0, fortis["cost"])
}

func TestCompareHospitalMissingTreatmentChartsZero(t *testing.T) {
	// City General has no knee replacement encounters
	_, resp, model := serveAndRetrieveEndpoint(t,
		compareEndpoint("apollo-care_new-delhi,city-general_pune", "Knee Replacement"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entries := dataMap(t, model)["entries"].([]any)
	require.Len(t, entries, 2)

	cityGeneral := entries[1].(map[string]any)
	assert.Equal(t, 0.0, cityGeneral["cost"])
	assert.Equal(t, float64(0), cityGeneral["caseCount"])
	assert.Equal(t, models.CostCategoryLow, cityGeneral["category"])
}

func TestCompareDegenerateRangeIsAllMedium(t *testing.T) {
	// Two hospitals that both lack the treatment chart identical zeros
	_, resp, model := serveAndRetrieveEndpoint(t,
		compareEndpoint("city-general_pune,lilavati-hospital_mumbai", "Angioplasty"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, item := range dataMap(t, model)["entries"].([]any) {
		entry := item.(map[string]any)
		assert.Equal(t, models.CostCategoryMedium, entry["category"])
	}
}

func TestCompareValidation(t *testing.T) {
	api := createTestApi(t)
	server := newTestServer(t, api)

	t.Run("ids is required", func(t *testing.T) {
		resp, fieldErrors := getFieldErrors(t, server, "/api/compare")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, fieldErrors, "ids")
	})

	t.Run("duplicate ids", func(t *testing.T) {
		resp, fieldErrors := getFieldErrors(t, server,
			compareEndpoint("apollo-care_new-delhi,apollo-care_new-delhi", ""))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, fieldErrors, "ids")
		assert.Contains(t, fieldErrors["ids"][0], "duplicate")
	})

	t.Run("too few hospitals", func(t *testing.T) {
		resp, fieldErrors := getFieldErrors(t, server, compareEndpoint("apollo-care_new-delhi", ""))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, fieldErrors, "ids")
		assert.Contains(t, fieldErrors["ids"][0], "between 2 and 5")
	})

	t.Run("too many hospitals", func(t *testing.T) {
		resp, fieldErrors := getFieldErrors(t, server, compareEndpoint("a,b,c,d,e,f", ""))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, fieldErrors, "ids")
	})

	t.Run("dangerous treatment", func(t *testing.T) {
		resp, fieldErrors := getFieldErrors(t, server,
			compareEndpoint("a,b", "<script>alert(1)</script>"))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, fieldErrors, "treatment")
	})
}

func TestCompareUnknownHospital(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t,
		compareEndpoint("apollo-care_new-delhi,no-such-hospital", ""))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}

func TestCompareRespectsConfiguredLimit(t *testing.T) {
	api := createTestApiWithConfig(t, appconf.Config{
		Env:         appconf.EnvFlagToEnvironment("test"),
		JWTSecret:   "test-secret",
		RateLimit:   -1,
		MaxCompare:  1, // clamps up to the minimum of 3
		DefaultLat:  28.6139,
		DefaultLon:  77.2090,
		RankWeights: appconf.DefaultRankWeights(),
	})
	server := newTestServer(t, api)

	resp, fieldErrors := getFieldErrors(t, server, compareEndpoint("a,b,c,d", ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, fieldErrors, "ids")
	assert.Contains(t, fieldErrors["ids"][0], "between 2 and 3")
}
