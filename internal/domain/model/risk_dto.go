package model

import "floodguard/internal/domain/entity"

// Marker dimensions and colors mirror the dashboard rendering: high-risk
// locations draw bigger red circles, low-risk locations smaller green ones.
const (
	markerColorHigh  = "red"
	markerColorLow   = "green"
	markerRadiusHigh = 22
	markerRadiusLow  = 14
)

// MapMarkerDTO is one plotted circle on the risk map
type MapMarkerDTO struct {
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Risk      string  `json:"risk"`
	RainMM    float64 `json:"rain3h"`
	Color     string  `json:"color"`
	Radius    int     `json:"radius"`
}

// NewMapMarker builds the marker for a location's assessment
func NewMapMarker(location entity.Location, assessment *entity.RiskAssessment) MapMarkerDTO {
	marker := MapMarkerDTO{
		Location:  location.Name,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Risk:      string(assessment.Risk),
		RainMM:    assessment.RainMM,
		Color:     markerColorLow,
		Radius:    markerRadiusLow,
	}
	if assessment.Risk == entity.RiskHigh {
		marker.Color = markerColorHigh
		marker.Radius = markerRadiusHigh
	}
	return marker
}

// LocationRiskDTO is the per-location outcome of a full registry sweep.
// Either Assessment or Error is set, never both.
type LocationRiskDTO struct {
	Location   entity.Location        `json:"location"`
	Assessment *entity.RiskAssessment `json:"assessment,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// RiskMapDTO is the response of the map endpoint
type RiskMapDTO struct {
	Markers  []MapMarkerDTO `json:"markers"`
	Failures []string       `json:"failures,omitempty"`
}
