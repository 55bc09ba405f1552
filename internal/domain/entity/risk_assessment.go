package entity

import "time"

// RiskLevel is the binary flood-risk classification
type RiskLevel string

const (
	RiskLow  RiskLevel = "LOW"
	RiskHigh RiskLevel = "HIGH"
)

// RainThresholdMM is the accumulated 3-hour rainfall (mm) above which a
// location is classified as high flood risk. Fixed, not configurable.
const RainThresholdMM = 30.0

// ClassifyRainfall maps an accumulated rainfall volume in mm to a risk
// level. The threshold itself is LOW; only a strictly greater sum is HIGH.
func ClassifyRainfall(rainMM float64) RiskLevel {
	if rainMM > RainThresholdMM {
		return RiskHigh
	}
	return RiskLow
}

// RiskAssessment is the derived result for one location. It is ephemeral:
// built fresh from a forecast fetch, held only in the cache and in responses.
type RiskAssessment struct {
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"`
	RainMM      float64   `json:"rain3h"`
	Description string    `json:"description"`
	Risk        RiskLevel `json:"risk"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}
