package health

import (
	"context"

	"floodguard/internal/domain/gateway/api"
	"floodguard/internal/domain/gateway/cache"
	"floodguard/internal/domain/model"
)

type healthUseCase struct {
	apiGateway      api.ForecastGateway
	assessmentCache cache.AssessmentCache
}

func NewHealthUseCase(apiGateway api.ForecastGateway, assessmentCache cache.AssessmentCache) UseCase {
	return &healthUseCase{
		apiGateway:      apiGateway,
		assessmentCache: assessmentCache,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	cacheHealth := useCase.assessmentCache.Health(ctx)
	providerHealth := useCase.apiGateway.Health()

	overallStatus := model.StatusUp
	if cacheHealth.Status != model.StatusUp || providerHealth.Status != model.StatusUp {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Cache:    cacheHealth,
		Provider: providerHealth,
	}
}
