package entity

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used to turn distances into
// the radians expected by $centerSphere.
const EarthRadiusMeters = 6371000.0

// GeoPoint is a GeoJSON point. Coordinates are stored as [lng, lat].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// ValidateCoordinates rejects latitudes outside [-90,90] and longitudes outside [-180,180].
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
	}
	return nil
}

// RadiusToRadians converts a distance on the Earth's surface to an angle.
func RadiusToRadians(meters float64) float64 {
	return meters / EarthRadiusMeters
}

// DistanceMeters returns the great-circle distance between two points (haversine).
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// RadiusQuery describes a "within R meters of a point" search.
type RadiusQuery struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
	Limit        int
}

func (q RadiusQuery) Validate() error {
	if err := ValidateCoordinates(q.Lat, q.Lng); err != nil {
		return err
	}
	if q.RadiusMeters < 0 || math.IsNaN(q.RadiusMeters) || math.IsInf(q.RadiusMeters, 0) {
		return fmt.Errorf("%w: radius must be a finite, non-negative number", ErrValidation)
	}
	return nil
}

// DistanceTo returns how far (lat, lng) lies from the query center.
func (q RadiusQuery) DistanceTo(lat, lng float64) float64 {
	return DistanceMeters(q.Lat, q.Lng, lat, lng)
}
