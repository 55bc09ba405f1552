package risk

import (
	"context"
	"errors"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
)

// ErrUnknownLocation is returned when the requested name is not in the registry
var ErrUnknownLocation = errors.New("unknown location")

type UseCase interface {
	// ListLocations returns the fixed registry of monitored locations
	ListLocations() []entity.Location

	// Evaluate fetches the forecast for one registry location and derives
	// its flood-risk assessment, serving from the cache when fresh
	Evaluate(ctx context.Context, locationName string) (*entity.RiskAssessment, error)

	// EvaluateAll evaluates every registry location in sequence; a failure
	// for one location does not stop the others
	EvaluateAll(ctx context.Context) []model.LocationRiskDTO

	// RiskMap builds the map markers for all registry locations
	RiskMap(ctx context.Context) model.RiskMapDTO

	// RefreshAllScheduled warms the cache for all locations from a
	// scheduled run identified by requestID
	RefreshAllScheduled(ctx context.Context, requestID string) error
}
