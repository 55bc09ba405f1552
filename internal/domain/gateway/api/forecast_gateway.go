package api

import (
	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
	"floodguard/internal/domain/model/external"
)

// ForecastGateway defines the interface for the forecast provider API
type ForecastGateway interface {
	// FetchForecast gets the short-range forecast for a location's
	// coordinates, in metric units
	FetchForecast(location entity.Location) (*external.ForecastResponse, error)

	// Health reports the gateway component health
	Health() model.ComponentHealthStatus
}
