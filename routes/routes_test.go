package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lgu-leganes/bizportal/app"
	"github.com/lgu-leganes/bizportal/config"
	"github.com/lgu-leganes/bizportal/database"
	"github.com/lgu-leganes/bizportal/httpx"
	"github.com/lgu-leganes/bizportal/services"
	"github.com/stretchr/testify/require"
)

// newTestApp spins up the API against a fresh in-memory database with the
// full migration chain (schema + directory seed) applied.
func newTestApp(t *testing.T) (app.App, *httptest.Server) {
	t.Helper()

	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		TokenSecret:     "test-secret",
		TokenTTL:        time.Minute,
		WeatherLocation: "Leganes,PH",
		NewsQuery:       "Leganes Iloilo",
	}

	a := app.App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(db, cfg),
		Config:       cfg,
		Services:     services.New(cfg),
	}

	srv := httptest.NewServer(apiRouter(a))
	t.Cleanup(srv.Close)
	return a, srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })

	var parsed map[string]any
	_ = json.NewDecoder(res.Body).Decode(&parsed)
	return res, parsed
}

func createApplication(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	res, body := doJSON(t, "POST", srv.URL+"/applications", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	id, ok := body["id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)
	return id
}
