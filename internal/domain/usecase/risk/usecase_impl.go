package risk

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/gateway/api"
	"floodguard/internal/domain/gateway/cache"
	"floodguard/internal/domain/model"
	"floodguard/internal/domain/model/external"
	"floodguard/pkg/log"
)

// forecastSampleCount is how many leading 3-hour forecast entries feed the
// rainfall sum
const forecastSampleCount = 3

type riskUseCase struct {
	apiGateway      api.ForecastGateway
	assessmentCache cache.AssessmentCache
}

func NewRiskUseCase(apiGateway api.ForecastGateway, assessmentCache cache.AssessmentCache) UseCase {
	return &riskUseCase{
		apiGateway:      apiGateway,
		assessmentCache: assessmentCache,
	}
}

// ListLocations returns the fixed registry of monitored locations
func (uc *riskUseCase) ListLocations() []entity.Location {
	return entity.Registry()
}

// Evaluate fetches the forecast for one registry location and derives its
// flood-risk assessment
func (uc *riskUseCase) Evaluate(ctx context.Context, locationName string) (*entity.RiskAssessment, error) {
	location, found := entity.LookupLocation(locationName)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocation, locationName)
	}

	// Serve from cache while the entry is inside its window
	cached, hit, err := uc.assessmentCache.Get(ctx, location.Name)
	if err != nil {
		// A broken cache never blocks an evaluation
		log.Warnf("Cache read failed for %s, fetching fresh data: %v", location.Name, err)
	}
	if hit {
		log.Debugf("Cache hit for %s", location.Name)
		return cached, nil
	}

	forecast, err := uc.apiGateway.FetchForecast(location)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast for %s: %w", location.Name, err)
	}

	assessment := uc.deriveAssessment(location, forecast)

	if err := uc.assessmentCache.Put(ctx, location.Name, assessment); err != nil {
		log.Warnf("Failed to cache assessment for %s: %v", location.Name, err)
	}

	return assessment, nil
}

// deriveAssessment turns a forecast response into a risk assessment. The
// classification compares the raw rainfall sum against the threshold; the
// rounded value is for display only.
func (uc *riskUseCase) deriveAssessment(location entity.Location, forecast *external.ForecastResponse) *entity.RiskAssessment {
	first := forecast.List[0]

	description := ""
	if len(first.Weather) > 0 {
		// cases.Caser is stateful, so build one per call
		description = cases.Title(language.Und).String(first.Weather[0].Description)
	}

	rainSum := sumRainfall(forecast.List)

	return &entity.RiskAssessment{
		Location:    location.Name,
		Temperature: roundTenth(first.Main.Temp),
		RainMM:      roundTenth(rainSum),
		Description: description,
		Risk:        entity.ClassifyRainfall(rainSum),
		EvaluatedAt: time.Now(),
	}
}

// sumRainfall adds the 3-hour rain volume of the first forecastSampleCount
// entries. An entry without rain data contributes 0.
func sumRainfall(entries []external.ForecastEntry) float64 {
	limit := forecastSampleCount
	if len(entries) < limit {
		limit = len(entries)
	}

	var sum float64
	for i := 0; i < limit; i++ {
		sum += entries[i].Rain.ThreeHour
	}
	return sum
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// EvaluateAll evaluates every registry location in sequence
func (uc *riskUseCase) EvaluateAll(ctx context.Context) []model.LocationRiskDTO {
	locations := entity.Registry()
	results := make([]model.LocationRiskDTO, 0, len(locations))

	for _, location := range locations {
		result := model.LocationRiskDTO{Location: location}

		assessment, err := uc.Evaluate(ctx, location.Name)
		if err != nil {
			log.Warnf("Evaluation failed for %s: %v", location.Name, err)
			result.Error = err.Error()
		} else {
			result.Assessment = assessment
		}

		results = append(results, result)
	}

	return results
}

// RiskMap builds the map markers for all registry locations
func (uc *riskUseCase) RiskMap(ctx context.Context) model.RiskMapDTO {
	riskMap := model.RiskMapDTO{}

	for _, result := range uc.EvaluateAll(ctx) {
		if result.Assessment == nil {
			riskMap.Failures = append(riskMap.Failures,
				fmt.Sprintf("%s: %s", result.Location.Name, result.Error))
			continue
		}
		riskMap.Markers = append(riskMap.Markers, model.NewMapMarker(result.Location, result.Assessment))
	}

	return riskMap
}

// RefreshAllScheduled warms the cache for all locations from a scheduled run
func (uc *riskUseCase) RefreshAllScheduled(ctx context.Context, requestID string) error {
	log.Info("Starting scheduled risk refresh", zap.String("request_id", requestID))

	results := uc.EvaluateAll(ctx)

	failed := 0
	for _, result := range results {
		if result.Assessment == nil {
			failed++
			log.Warn("Scheduled evaluation failed",
				zap.String("request_id", requestID),
				zap.String("location", result.Location.Name),
				zap.String("error", result.Error))
		}
	}

	log.Info("Scheduled risk refresh completed",
		zap.String("request_id", requestID),
		zap.Int("evaluated", len(results)-failed),
		zap.Int("failed", failed))

	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("all %d locations failed to evaluate", failed)
	}
	return nil
}
