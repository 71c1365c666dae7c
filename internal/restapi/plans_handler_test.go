package restapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"loopwalk.dev/internal/app"
)

func createPlan(t *testing.T, api *RestAPI, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodPost, "/api/plans", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, http.StatusCreated, model.Code)
	assert.Equal(t, "Created", model.Text)
	return entryOf(t, model)
}

func TestCreateAndGetPlan(t *testing.T) {
	api := createTestApi(t)

	created := createPlan(t, api, map[string]interface{}{
		"from":  "東京",
		"to":    "池袋",
		"start": "09:00",
	})

	id, ok := created["id"].(string)
	require.True(t, ok)
	assert.Len(t, id, 36)
	assert.Equal(t, "東京", created["fromStation"])
	assert.Equal(t, "池袋", created["toStation"])
	assert.Equal(t, "normal", created["walkingSpeed"])
	assert.Equal(t, "2024-04-01T00:00:00Z", created["startTime"])
	assert.Len(t, created["steps"], 13)
	assert.Equal(t, "09:00", created["timeline"].([]interface{})[0].(map[string]interface{})["arrival"])

	resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/plans/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := entryOf(t, model)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, created["steps"], got["steps"])
}

func TestListPlans(t *testing.T) {
	api := createTestApi(t)

	_, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/plans", nil)
	assert.Empty(t, listOf(t, model))

	first := createPlan(t, api, map[string]interface{}{"from": "東京", "to": "上野"})
	second := createPlan(t, api, map[string]interface{}{
		"from": "新宿", "to": "渋谷", "speed": "fast", "restInterval": 1, "restMinutes": 5,
	})

	_, model = serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/plans", nil)
	list := listOf(t, model)
	require.Len(t, list, 2)

	summary := list[1].(map[string]interface{})
	assert.Equal(t, first["id"], list[0].(map[string]interface{})["id"])
	assert.Equal(t, second["id"], summary["id"])
	assert.Equal(t, "fast", summary["walkingSpeed"])
	assert.Equal(t, 4.0, summary["stepCount"])
	assert.Equal(t, 2.0, summary["restStopCount"])

	refs := model.Data.(map[string]interface{})["references"].(map[string]interface{})
	assert.Len(t, refs["stations"], 4)
}

func TestDeletePlans(t *testing.T) {
	api := createTestApi(t)
	first := createPlan(t, api, map[string]interface{}{"from": "東京", "to": "上野"})
	createPlan(t, api, map[string]interface{}{"from": "品川", "to": "田町"})
	createPlan(t, api, map[string]interface{}{"from": "目黒", "to": "渋谷", "direction": "ccw"})

	id := first["id"].(string)
	resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodDelete, "/api/plans/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, entryOf(t, model)["id"])

	resp, model = serveApiAndRetrieveEndpoint(t, api, http.MethodDelete, "/api/plans/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)

	resp, model = serveApiAndRetrieveEndpoint(t, api, http.MethodDelete, "/api/plans", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2.0, entryOf(t, model)["deleted"])

	_, model = serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/plans", nil)
	assert.Empty(t, listOf(t, model))
}

func TestPlanErrors(t *testing.T) {
	api := createTestApi(t)

	t.Run("unknown id", func(t *testing.T) {
		resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/plans/does-not-exist", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "resource not found", model.Text)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := serveApi(t, api, http.MethodGet, "/api/plans/bad!id", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, decodeFieldErrors(t, resp)["id"])
	})

	t.Run("invalid body", func(t *testing.T) {
		server := httptest.NewServer(api.Handler())
		defer server.Close()

		resp, err := http.Post(server.URL+"/api/plans", "application/json", strings.NewReader("{not json"))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid route", func(t *testing.T) {
		resp := serveApi(t, api, http.MethodPost, "/api/plans", map[string]interface{}{"from": "東京", "to": "大阪"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, decodeFieldErrors(t, resp)["to"])
	})

	_, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/plans", nil)
	assert.Empty(t, listOf(t, model))
}

func TestPlanMutationsRequireAPIKey(t *testing.T) {
	api := createTestApiWithConfig(t, app.Config{ApiKeys: []string{"test"}, RestInterval: 5, RestMinutes: 10})
	body := map[string]interface{}{"from": "東京", "to": "神田"}

	resp := serveApi(t, api, http.MethodPost, "/api/plans", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = serveApi(t, api, http.MethodPost, "/api/plans?key=wrong", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = serveApi(t, api, http.MethodDelete, "/api/plans", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp, _ = serveApiAndRetrieveEndpoint(t, api, http.MethodPost, "/api/plans?key=test", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = serveApi(t, api, http.MethodDelete, "/api/plans/some-id", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Reads stay open.
	_, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, "/api/plans", nil)
	assert.Len(t, listOf(t, model), 1)
}
