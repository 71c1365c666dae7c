package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"loopwalk.dev/internal/app"
	"loopwalk.dev/internal/appconf"
	"loopwalk.dev/internal/logging"
	"loopwalk.dev/internal/models"
	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/stations"
)

var tokyo = time.FixedZone("JST", 9*60*60)

// testNow is 09:00 in Tokyo.
func testNow() time.Time {
	return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
}

func createTestApiWithConfig(t *testing.T, config app.Config) *RestAPI {
	t.Helper()
	config.Env = appconf.Test
	if config.RateLimit == 0 {
		config.RateLimit = 100
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application, err := app.New(config, logger, stations.Yamanote(), plans.NewMemoryStorage())
	require.NoError(t, err)
	application.Location = tokyo
	application.Now = testNow

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func createTestApi(t *testing.T) *RestAPI {
	return createTestApiWithConfig(t, app.Config{RestInterval: 5, RestMinutes: 10})
}

func serveApi(t *testing.T, api *RestAPI, method, endpoint string, body interface{}) *http.Response {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	t.Cleanup(server.Close)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// serveApiAndRetrieveEndpoint makes a request against a fresh test server and decodes the response envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, endpoint string, body interface{}) (*http.Response, models.ResponseModel) {
	t.Helper()
	resp := serveApi(t, api, method, endpoint, body)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

func decodeFieldErrors(t *testing.T, resp *http.Response) map[string][]string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.FieldErrors
}

func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "entry should be an object")
	return entry
}

func listOf(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "list should be an array")
	return list
}
