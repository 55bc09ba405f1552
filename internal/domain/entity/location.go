package entity

// Location is a monitored place in the Gilgit-Baltistan registry
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// registry is the fixed set of monitored locations. It never changes at
// runtime; adding a location is a code change.
var registry = []Location{
	{Name: "Gilgit", Latitude: 35.9208, Longitude: 74.3083},
	{Name: "Skardu", Latitude: 35.2971, Longitude: 75.6333},
	{Name: "Hunza", Latitude: 36.3167, Longitude: 74.65},
}

// Registry returns a copy of the monitored location registry
func Registry() []Location {
	locations := make([]Location, len(registry))
	copy(locations, registry)
	return locations
}

// LookupLocation finds a registry entry by name
func LookupLocation(name string) (Location, bool) {
	for _, location := range registry {
		if location.Name == name {
			return location, true
		}
	}
	return Location{}, false
}
