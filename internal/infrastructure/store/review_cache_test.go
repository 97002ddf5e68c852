package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

func TestNearbyKey(t *testing.T) {
	a := entity.RadiusQuery{Lat: 40.712801, Lng: -74.006001, RadiusMeters: 5000, Limit: 50}
	b := entity.RadiusQuery{Lat: 40.712802, Lng: -74.006002, RadiusMeters: 5000, Limit: 50}
	c := entity.RadiusQuery{Lat: 40.712801, Lng: -74.006001, RadiusMeters: 5000, Limit: 10}

	assert.Equal(t, "reviews:nearby:40.71280:-74.00600:5000:50", nearbyKey(a))
	assert.Equal(t, nearbyKey(a), nearbyKey(b))
	assert.NotEqual(t, nearbyKey(a), nearbyKey(c))

	zero := entity.RadiusQuery{Lat: 1, Lng: 2, RadiusMeters: 0, Limit: 50}
	small := entity.RadiusQuery{Lat: 1, Lng: 2, RadiusMeters: 0.4, Limit: 50}
	assert.NotEqual(t, nearbyKey(zero), nearbyKey(small))
	assert.Equal(t, "reviews:nearby:1.00000:2.00000:0.4:50", nearbyKey(small))
}
