package kernel

import (
	"parceldelivery/internal/pkg/errs"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// GeoPoint is a value object holding a WGS84 coordinate reported alongside a
// tracking event. It is informational only; no geospatial matching is done
// with it.
//
// The zero value is invalid; construct through NewGeoPoint.
type GeoPoint struct {
	latitude  float64
	longitude float64
	guard     bool
}

// NewGeoPoint creates a GeoPoint, validating that latitude is within
// [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < minLatitude || latitude > maxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, minLatitude, maxLatitude)
	}
	if longitude < minLongitude || longitude > maxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, minLongitude, maxLongitude)
	}
	return GeoPoint{latitude: latitude, longitude: longitude, guard: true}, nil
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Validate returns an error for a zero-value GeoPoint.
func (p GeoPoint) Validate() error {
	if !p.guard {
		return errs.NewValueIsRequiredError("GeoPoint must be created via NewGeoPoint")
	}
	return nil
}

// IsEqual reports whether two points hold the same coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}
