package api

import (
	"errors"
	"fmt"
	"strconv"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
	"floodguard/internal/domain/model/external"
	"floodguard/pkg/http"
)

// successCod is the status OpenWeatherMap reports inside a good forecast body
const successCod = "200"

// forecastGatewayImpl implements the ForecastGateway interface
type forecastGatewayImpl struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	units      string
}

// NewForecastGateway creates a new instance of ForecastGateway with HTTP client
func NewForecastGateway(baseURL string, apiKey string, units string, clientOptions http.ClientOptions) ForecastGateway {
	httpClient := http.NewHttpClient(baseURL, clientOptions)

	return &forecastGatewayImpl{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		units:      units,
	}
}

// FetchForecast gets the short-range forecast for a location's coordinates
func (g *forecastGatewayImpl) FetchForecast(location entity.Location) (*external.ForecastResponse, error) {
	params := map[string]string{
		"lat":   strconv.FormatFloat(location.Latitude, 'f', -1, 64),
		"lon":   strconv.FormatFloat(location.Longitude, 'f', -1, 64),
		"appid": g.apiKey,
		"units": g.units,
	}

	successResp, errResp, _, err := g.httpClient.Request().
		WithMethod(http.GET).
		WithPath("/forecast").
		WithQueryParams(params).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		if errResp != nil {
			errorResponse := errResp.(*external.APIErrorResponse)
			if errorResponse.Message != "" {
				return nil, errors.New(errorResponse.Message)
			}
		}
		return nil, err
	}

	response := successResp.(*external.ForecastResponse)
	if response.Cod != successCod {
		return nil, fmt.Errorf("provider returned status %s", response.Cod)
	}
	if len(response.List) == 0 {
		return nil, fmt.Errorf("provider returned no forecast entries for %s", location.Name)
	}

	return response, nil
}

// Health reports the gateway component health. The provider is not probed to
// avoid spending call quota; the check covers configuration only.
func (g *forecastGatewayImpl) Health() model.ComponentHealthStatus {
	details := map[string]string{
		"baseUrl": g.baseURL,
		"units":   g.units,
	}

	if g.apiKey == "" {
		details["error"] = "api key is not configured"
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
