package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodguard/internal/application/controller"
	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
	"floodguard/internal/domain/usecase/risk"
)

// stubRiskUseCase serves canned evaluations to the handlers
type stubRiskUseCase struct {
	assessments map[string]*entity.RiskAssessment
	evalErr     error
}

func (s *stubRiskUseCase) ListLocations() []entity.Location {
	return entity.Registry()
}

func (s *stubRiskUseCase) Evaluate(_ context.Context, locationName string) (*entity.RiskAssessment, error) {
	if s.evalErr != nil {
		return nil, s.evalErr
	}
	if _, found := entity.LookupLocation(locationName); !found {
		return nil, fmt.Errorf("%w: %s", risk.ErrUnknownLocation, locationName)
	}
	return s.assessments[locationName], nil
}

func (s *stubRiskUseCase) EvaluateAll(ctx context.Context) []model.LocationRiskDTO {
	var results []model.LocationRiskDTO
	for _, location := range entity.Registry() {
		assessment, err := s.Evaluate(ctx, location.Name)
		result := model.LocationRiskDTO{Location: location, Assessment: assessment}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (s *stubRiskUseCase) RiskMap(ctx context.Context) model.RiskMapDTO {
	riskMap := model.RiskMapDTO{}
	for _, result := range s.EvaluateAll(ctx) {
		if result.Assessment == nil {
			riskMap.Failures = append(riskMap.Failures, result.Error)
			continue
		}
		riskMap.Markers = append(riskMap.Markers, model.NewMapMarker(result.Location, result.Assessment))
	}
	return riskMap
}

func (s *stubRiskUseCase) RefreshAllScheduled(context.Context, string) error { return nil }

func setupRiskAPI(useCase risk.UseCase) *echo.Echo {
	e := echo.New()
	api := e.Group("/floodguard")
	riskController := controller.NewRiskController(api, useCase)
	riskController.InitRiskRoutes()
	return e
}

func highRiskStub() *stubRiskUseCase {
	assessments := map[string]*entity.RiskAssessment{}
	for _, location := range entity.Registry() {
		assessments[location.Name] = &entity.RiskAssessment{
			Location:    location.Name,
			Temperature: 14.2,
			RainMM:      41.0,
			Description: "Heavy Intensity Rain",
			Risk:        entity.RiskHigh,
			EvaluatedAt: time.Now(),
		}
	}
	return &stubRiskUseCase{assessments: assessments}
}

func TestListLocationsRoute(t *testing.T) {
	e := setupRiskAPI(highRiskStub())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/floodguard/locations", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var locations []entity.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locations))
	assert.Len(t, locations, 3)
	assert.Equal(t, "Gilgit", locations[0].Name)
}

func TestEvaluateLocationRoute(t *testing.T) {
	e := setupRiskAPI(highRiskStub())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/floodguard/risk/Gilgit", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var assessment entity.RiskAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assessment))
	assert.Equal(t, entity.RiskHigh, assessment.Risk)
	assert.Equal(t, 41.0, assessment.RainMM)
}

func TestEvaluateLocationRouteUnknown(t *testing.T) {
	e := setupRiskAPI(highRiskStub())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/floodguard/risk/Islamabad", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "unknown location")
}

func TestEvaluateLocationRouteProviderFailure(t *testing.T) {
	e := setupRiskAPI(&stubRiskUseCase{evalErr: errors.New("Invalid API key")})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/floodguard/risk/Gilgit", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid API key", body["error"])
}

func TestRiskMapRoute(t *testing.T) {
	e := setupRiskAPI(highRiskStub())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/floodguard/map", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var riskMap model.RiskMapDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &riskMap))
	require.Len(t, riskMap.Markers, 3)
	for _, marker := range riskMap.Markers {
		assert.Equal(t, "red", marker.Color)
		assert.Equal(t, 22, marker.Radius)
	}
}
