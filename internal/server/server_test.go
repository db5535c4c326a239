package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/config"
	"github.com/hongminglow/va-ops-be/internal/logger"
	"github.com/hongminglow/va-ops-be/internal/metrics"
	"github.com/hongminglow/va-ops-be/internal/models"
	"github.com/hongminglow/va-ops-be/internal/storage/memory"
)

const adminPassword = "cleared-for-takeoff"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	gate, err := auth.NewGate(string(hash))
	require.NoError(t, err)

	log := logger.Nop()
	m := metrics.New("test")
	deps := Deps{
		Ops:      airline.NewService(gate, memory.NewStore(), log, m),
		Sessions: auth.NewRegistry(auth.NewTokenManager("test-secret", "test", time.Hour)),
		Log:      log,
		Metrics:  m,
	}
	ts := httptest.NewServer(NewHandler(config.Config{CORSOrigins: []string{"*"}}, deps))
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, token, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func login(t *testing.T, ts *httptest.Server, token string) string {
	t.Helper()
	status, env := call(t, ts, token, http.MethodPost, "/api/auth", map[string]string{"password": adminPassword})
	require.Equal(t, http.StatusOK, status)
	var body struct {
		Token      string `json:"token"`
		Privileged bool   `json:"privileged"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	require.True(t, body.Privileged)
	return body.Token
}

func TestServer_EndToEnd(t *testing.T) {
	ts := newTestServer(t)
	admin := login(t, ts, "")

	status, _ := call(t, ts, admin, http.MethodPost, "/api/flights", map[string]any{
		"flightNumber":  "AC851",
		"origin":        "YYZ",
		"destination":   "LHR",
		"aircraftType":  "787-8",
		"departureTime": 1000,
		"arrivalTime":   2000,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := call(t, ts, "", http.MethodGet, "/api/flights", nil)
	require.Equal(t, http.StatusOK, status)
	var flights []models.Flight
	require.NoError(t, json.Unmarshal(env.Data, &flights))
	require.Len(t, flights, 1)
	assert.Equal(t, models.Flight{
		FlightNumber: "AC851", Origin: "YYZ", Destination: "LHR", AircraftType: "787-8",
		DepartureTime: 1000, ArrivalTime: 2000,
	}, flights[0])

	status, _ = call(t, ts, "", http.MethodPost, "/api/reservations", map[string]string{
		"passengerName":   "Jane",
		"discordUsername": "jane#1",
		"robloxUsername":  "JaneR",
		"flightNumber":    "AC851",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = call(t, ts, admin, http.MethodGet, "/api/reservations", nil)
	require.Equal(t, http.StatusOK, status)
	var reservations []models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &reservations))
	require.Len(t, reservations, 1)
	assert.Equal(t, "AC851", reservations[0].FlightDetails.FlightNumber)
}

func TestServer_PrivilegeIsPerSession(t *testing.T) {
	ts := newTestServer(t)

	status, env := call(t, ts, "", http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, status)
	var opened struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &opened))

	status, _ = call(t, ts, opened.Token, http.MethodGet, "/api/reservations", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, ts, opened.Token, http.MethodPost, "/api/auth", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	// authenticating an existing session keeps its token
	assert.Equal(t, opened.Token, login(t, ts, opened.Token))

	status, env = call(t, ts, opened.Token, http.MethodGet, "/api/reservations", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(env.Data))

	other := login(t, ts, "")
	assert.NotEqual(t, opened.Token, other)

	status, _ = call(t, ts, "", http.MethodGet, "/api/applications/atc", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_StatusBoardAndApplications(t *testing.T) {
	ts := newTestServer(t)

	status, env := call(t, ts, "", http.MethodGet, "/api/flight-status", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "null", string(env.Data))

	status, _ = call(t, ts, "", http.MethodPut, "/api/flight-status", map[string]string{"status": "Delayed"})
	assert.Equal(t, http.StatusUnauthorized, status)

	admin := login(t, ts, "")
	before := time.Now().UnixNano()
	status, _ = call(t, ts, admin, http.MethodPut, "/api/flight-status", map[string]string{"status": "Delayed"})
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, ts, "", http.MethodGet, "/api/flight-status", nil)
	require.Equal(t, http.StatusOK, status)
	var current models.FlightStatus
	require.NoError(t, json.Unmarshal(env.Data, &current))
	assert.Equal(t, "Delayed", current.Status)
	assert.GreaterOrEqual(t, current.Timestamp, before)

	status, _ = call(t, ts, "", http.MethodPost, "/api/applications/cabin-crew", models.CabinCrewApplication{ApplicantName: "Sam"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = call(t, ts, "", http.MethodPost, "/api/reservations", map[string]string{"flightNumber": "NOPE"})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = call(t, ts, admin, http.MethodGet, "/api/applications/cabin-crew", nil)
	require.Equal(t, http.StatusOK, status)
	var crew []models.CabinCrewApplication
	require.NoError(t, json.Unmarshal(env.Data, &crew))
	assert.Equal(t, []models.CabinCrewApplication{{ApplicantName: "Sam"}}, crew)

	status, env = call(t, ts, admin, http.MethodGet, "/api/reservations", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t)
	call(t, ts, "", http.MethodGet, "/api/flights", nil)

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `test_operations_total{operation="get_all_flights",outcome="ok"} 1`)
}

func TestServer_UnmatchedRequestsAreMeasured(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/no-such-route")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `test_http_request_duration_seconds_count{method="GET",route="unmatched",status="404"} 1`)
}
