package external

import "encoding/json"

// ForecastResponse represents the OpenWeatherMap 5-day / 3-hour forecast
// response. Only the fields the evaluator reads are mapped.
type ForecastResponse struct {
	Cod  string          `json:"cod"`
	City CityDTO         `json:"city"`
	List []ForecastEntry `json:"list"`
}

// CityDTO identifies the place the forecast belongs to
type CityDTO struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ForecastEntry is one 3-hour forecast sample
type ForecastEntry struct {
	Dt      int64              `json:"dt"`
	DtTxt   string             `json:"dt_txt"`
	Main    MainConditionsDTO  `json:"main"`
	Weather []WeatherStatusDTO `json:"weather"`
	Rain    RainVolumeDTO      `json:"rain"`
}

// MainConditionsDTO carries the numeric readings of a sample
type MainConditionsDTO struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
}

// WeatherStatusDTO is the textual condition of a sample
type WeatherStatusDTO struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// RainVolumeDTO holds precipitation volume over the trailing 3-hour window.
// OpenWeatherMap omits the whole object when no rain is forecast, so the
// zero value means 0 mm.
type RainVolumeDTO struct {
	ThreeHour float64 `json:"3h"`
}

// APIErrorResponse represents error responses from OpenWeatherMap. The cod
// field is a string on some endpoints and a number on others.
type APIErrorResponse struct {
	Cod     json.Number `json:"cod"`
	Message string      `json:"message"`
}
