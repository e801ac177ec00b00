package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"carecompass.healthdata.org/hospitaldb"
	"carecompass.healthdata.org/internal/app"
	"carecompass.healthdata.org/internal/appconf"
	"carecompass.healthdata.org/internal/hospitals"
	"carecompass.healthdata.org/internal/models"
)

// createTestApi creates a RestAPI instance with the test dataset loaded and
// an in-memory database.
func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithConfig(t, appconf.Config{
		Env:         appconf.EnvFlagToEnvironment("test"),
		JWTSecret:   "test-secret",
		RateLimit:   -1,
		MaxCompare:  5,
		DefaultLat:  28.6139,
		DefaultLon:  77.2090,
		RankWeights: appconf.DefaultRankWeights(),
	})
}

func createTestApiWithConfig(t *testing.T, config appconf.Config) *RestAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := hospitaldb.NewClient(hospitaldb.NewConfig(":memory:", appconf.Test, false), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dataConfig := hospitals.Config{
		DataSource: filepath.Join("../../testdata", "encounters.csv"),
		DBPath:     ":memory:",
		Env:        appconf.Test,
	}
	manager, err := hospitals.InitManager(dataConfig, db, logger)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config:      config,
		Logger:      logger,
		DataManager: manager,
		DB:          db,
	}
	return NewRestAPI(application)
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// serveAndRetrieveEndpoint sets up a test server, makes a GET request to the
// specified endpoint, and returns the response and decoded envelope.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	server := newTestServer(t, api)

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	return resp, model
}

// postJSON posts a JSON body and decodes the response envelope
func postJSON(t *testing.T, server *httptest.Server, endpoint string, body any) (*http.Response, models.ResponseModel) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	return resp, model
}

// getFieldErrors issues a GET expected to fail validation and decodes the
// fieldErrors payload.
func getFieldErrors(t *testing.T, server *httptest.Server, endpoint string) (*http.Response, map[string][]string) {
	t.Helper()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var payload struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload.FieldErrors
}

func postFieldErrors(t *testing.T, server *httptest.Server, endpoint string, body any) (*http.Response, map[string][]string) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+endpoint, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded.FieldErrors
}

// dataMap returns the envelope's data payload as a generic map
func dataMap(t *testing.T, model models.ResponseModel) map[string]any {
	t.Helper()
	data, ok := model.Data.(map[string]any)
	require.True(t, ok, "response data should be an object, got %T", model.Data)
	return data
}

// listFromResponse returns the data.list entries of a list-style response
func listFromResponse(t *testing.T, model models.ResponseModel) []any {
	t.Helper()
	list, ok := dataMap(t, model)["list"].([]any)
	require.True(t, ok, "response data should carry a list")
	return list
}

// entryFromResponse returns the data.entry object of an entry-style response
func entryFromResponse(t *testing.T, model models.ResponseModel) map[string]any {
	t.Helper()
	entry, ok := dataMap(t, model)["entry"].(map[string]any)
	require.True(t, ok, "response data should carry an entry")
	return entry
}
