package entity

import (
	"fmt"
	"time"
)

// Review is geotagged user content. Location is derived from Lat/Lng when the
// review is built and is not kept in sync afterwards.
type Review struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Username  string    `bson:"username" json:"username"`
	Lat       float64   `bson:"lat" json:"lat"`
	Lng       float64   `bson:"lng" json:"lng"`
	Location  *GeoPoint `bson:"location" json:"location"`
	Text      string    `bson:"review" json:"review"`
	Rating    int       `bson:"rating" json:"rating"`
	PhotoIDs  []string  `bson:"photo_ids" json:"photo_ids"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NewReview validates the input and fills the derived location.
func NewReview(id, userID, username string, lat, lng float64, text string, rating int, photoIDs []string, now time.Time) (*Review, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if photoIDs == nil {
		photoIDs = []string{}
	}
	return &Review{
		ID:        id,
		UserID:    userID,
		Username:  username,
		Lat:       lat,
		Lng:       lng,
		Location:  NewGeoPoint(lat, lng),
		Text:      text,
		Rating:    rating,
		PhotoIDs:  photoIDs,
		CreatedAt: now,
	}, nil
}

// Photo is a stored image blob.
type Photo struct {
	ID          string
	Filename    string
	ContentType string
	Data        []byte
}
