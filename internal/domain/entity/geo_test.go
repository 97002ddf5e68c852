package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeoPointOrder(t *testing.T) {
	p := NewGeoPoint(9.03, 38.74)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, []float64{38.74, 9.03}, p.Coordinates)
}

func TestValidateCoordinates(t *testing.T) {
	valid := [][2]float64{{0, 0}, {90, 180}, {-90, -180}, {9.03, 38.74}}
	for _, c := range valid {
		assert.NoError(t, ValidateCoordinates(c[0], c[1]), c)
	}
	invalid := [][2]float64{{90.0001, 0}, {-91, 0}, {0, 180.5}, {0, -181}, {math.NaN(), 0}, {0, math.NaN()}}
	for _, c := range invalid {
		assert.True(t, errors.Is(ValidateCoordinates(c[0], c[1]), ErrValidation), c)
	}
}

func TestDistanceMeters(t *testing.T) {
	assert.Zero(t, DistanceMeters(9, 38, 9, 38))
	// one degree of latitude is about 111.2km on the mean sphere
	assert.InDelta(t, 111195, DistanceMeters(0, 0, 1, 0), 10)
	assert.InDelta(t, DistanceMeters(1, 2, 3, 4), DistanceMeters(3, 4, 1, 2), 1e-6)
}

func TestRadiusToRadians(t *testing.T) {
	assert.InDelta(t, 5000.0/6371000.0, RadiusToRadians(5000), 1e-12)
	assert.Zero(t, RadiusToRadians(0))
}

func TestRadiusQuery(t *testing.T) {
	q := RadiusQuery{Lat: 0, Lng: 0, RadiusMeters: 1000}
	assert.NoError(t, q.Validate())
	assert.InDelta(t, 556, q.DistanceTo(0.005, 0), 1)
	assert.Zero(t, RadiusQuery{Lat: 1, Lng: 1}.DistanceTo(1, 1))

	for _, radius := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		q.RadiusMeters = radius
		assert.True(t, errors.Is(q.Validate(), ErrValidation), "radius %v", radius)
	}
}
