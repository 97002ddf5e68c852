package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

// withinRadiusFilter matches documents whose GeoJSON location lies inside the
// query circle. $centerSphere takes [lng, lat] and a radius in radians.
func withinRadiusFilter(q entity.RadiusQuery) bson.M {
	return bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{q.Lng, q.Lat},
					entity.RadiusToRadians(q.RadiusMeters),
				},
			},
		},
	}
}
