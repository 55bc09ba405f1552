package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"floodguard/internal/domain/usecase/risk"
)

type RiskController struct {
	api     *echo.Group
	useCase risk.UseCase
}

func NewRiskController(api *echo.Group, useCase risk.UseCase) *RiskController {
	return &RiskController{api: api, useCase: useCase}
}

// InitRiskRoutes initializes flood-risk routes
func (controller *RiskController) InitRiskRoutes() {
	controller.api.GET("/locations", controller.ListLocations)
	controller.api.GET("/risk/:location", controller.EvaluateLocation)
	controller.api.GET("/map", controller.RiskMap)
}

// ListLocations godoc
// @Summary List monitored locations
// @Description Retrieve the fixed registry of monitored locations with coordinates
// @Tags risk
// @Produce json
// @Success 200 {array} entity.Location "Registry of monitored locations"
// @Router /locations [get]
func (controller *RiskController) ListLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.ListLocations())
}

// EvaluateLocation godoc
// @Summary Evaluate flood risk for a location
// @Description Fetch the short-range forecast for a monitored location and derive its flood-risk classification
// @Tags risk
// @Produce json
// @Param location path string true "Location name"
// @Success 200 {object} entity.RiskAssessment "Risk assessment"
// @Failure 404 {object} map[string]string "Unknown location"
// @Failure 502 {object} map[string]string "Forecast provider failure"
// @Router /risk/{location} [get]
func (controller *RiskController) EvaluateLocation(c echo.Context) error {
	location := c.Param("location")

	assessment, err := controller.useCase.Evaluate(c.Request().Context(), location)
	if err != nil {
		if errors.Is(err, risk.ErrUnknownLocation) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, assessment)
}

// RiskMap godoc
// @Summary Risk map markers
// @Description Evaluate every monitored location and return the colored map markers
// @Tags risk
// @Produce json
// @Success 200 {object} model.RiskMapDTO "Markers and per-location failures"
// @Router /map [get]
func (controller *RiskController) RiskMap(c echo.Context) error {
	return c.JSON(http.StatusOK, controller.useCase.RiskMap(c.Request().Context()))
}
