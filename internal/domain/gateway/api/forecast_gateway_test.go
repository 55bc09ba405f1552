package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/gateway/api"
	"floodguard/internal/domain/model"
	pkghttp "floodguard/pkg/http"
)

const forecastBody = `{
	"cod": "200",
	"message": 0,
	"city": {"name": "Gilgit", "country": "PK"},
	"list": [
		{"dt": 1756450800, "main": {"temp": 21.37, "humidity": 40},
		 "weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
		 "rain": {"3h": 12.5}},
		{"dt": 1756461600, "main": {"temp": 19.8, "humidity": 45},
		 "weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}]},
		{"dt": 1756472400, "main": {"temp": 18.2, "humidity": 50},
		 "weather": [{"main": "Rain", "description": "moderate rain", "icon": "10n"}],
		 "rain": {"3h": 4.25}}
	]
}`

func gilgit(t *testing.T) entity.Location {
	t.Helper()
	location, found := entity.LookupLocation("Gilgit")
	require.True(t, found)
	return location
}

func newGateway(serverURL string) api.ForecastGateway {
	return api.NewForecastGateway(serverURL, "test-key", "metric", pkghttp.ClientOptions{})
}

func TestFetchForecastSuccess(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		gotQuery = map[string]string{
			"lat":   r.URL.Query().Get("lat"),
			"lon":   r.URL.Query().Get("lon"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, forecastBody)
	}))
	defer server.Close()

	forecast, err := newGateway(server.URL).FetchForecast(gilgit(t))
	require.NoError(t, err)

	assert.Equal(t, "35.9208", gotQuery["lat"])
	assert.Equal(t, "74.3083", gotQuery["lon"])
	assert.Equal(t, "test-key", gotQuery["appid"])
	assert.Equal(t, "metric", gotQuery["units"])

	require.Len(t, forecast.List, 3)
	assert.Equal(t, 21.37, forecast.List[0].Main.Temp)
	assert.Equal(t, "light rain", forecast.List[0].Weather[0].Description)
	assert.Equal(t, 12.5, forecast.List[0].Rain.ThreeHour)
	// Entry without a rain object decodes to zero volume
	assert.Zero(t, forecast.List[1].Rain.ThreeHour)
	assert.Equal(t, 4.25, forecast.List[2].Rain.ThreeHour)
}

func TestFetchForecastErrorScenarios(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		expectedErr string
	}{
		{
			name: "provider error body surfaces its message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"cod": 401, "message": "Invalid API key"}`)
			},
			expectedErr: "Invalid API key",
		},
		{
			name: "error body without message falls back to status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{}`)
			},
			expectedErr: "status 500",
		},
		{
			name: "success status with non-success cod",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"cod": "404", "list": [{"main": {"temp": 1}}]}`)
			},
			expectedErr: "provider returned status 404",
		},
		{
			name: "empty forecast list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"cod": "200", "list": []}`)
			},
			expectedErr: "no forecast entries",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"cod": "200", "list": [`)
			},
			expectedErr: "unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newGateway(server.URL).FetchForecast(gilgit(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestGatewayHealth(t *testing.T) {
	healthy := newGateway("http://example.invalid").Health()
	assert.Equal(t, model.StatusUp, healthy.Status)

	unconfigured := api.NewForecastGateway("http://example.invalid", "", "metric", pkghttp.ClientOptions{}).Health()
	assert.Equal(t, model.StatusDown, unconfigured.Status)
}
