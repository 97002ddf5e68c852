package entity

import (
	"fmt"
	"time"
)

type AdStatus string

const (
	AdStatusActive   AdStatus = "active"
	AdStatusInactive AdStatus = "inactive"
	AdStatusPending  AdStatus = "pending"
)

func ParseAdStatus(s string) (AdStatus, bool) {
	switch AdStatus(s) {
	case "":
		return AdStatusActive, true
	case AdStatusActive, AdStatusInactive, AdStatusPending:
		return AdStatus(s), true
	}
	return "", false
}

type AdPhoto struct {
	URL      string `bson:"url" json:"url"`
	Filename string `bson:"filename" json:"filename"`
	Size     int64  `bson:"size" json:"size"`
	MimeType string `bson:"mimetype" json:"mimetype"`
}

// Ad is a classified listing. Location is present only for ads that carry
// coordinates; ads without it never match a radius search.
type Ad struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	OwnerID     string    `bson:"owner_id" json:"owner_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Subcategory string    `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Country     string    `bson:"country" json:"country"`
	City        string    `bson:"city,omitempty" json:"city,omitempty"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Currency    string    `bson:"currency" json:"currency"`
	Photos      []AdPhoto `bson:"photos" json:"photos"`
	Status      AdStatus  `bson:"status" json:"status"`
	Views       int64     `bson:"views" json:"views"`
	Lat         *float64  `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng         *float64  `bson:"lng,omitempty" json:"lng,omitempty"`
	Location    *GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// SetCoordinates validates and stores a coordinate pair, deriving Location.
// Passing both nil clears the location.
func (a *Ad) SetCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return fmt.Errorf("%w: lat and lng must be supplied together", ErrValidation)
	}
	if lat == nil {
		a.Lat, a.Lng, a.Location = nil, nil, nil
		return nil
	}
	if err := ValidateCoordinates(*lat, *lng); err != nil {
		return err
	}
	la, ln := *lat, *lng
	a.Lat, a.Lng = &la, &ln
	a.Location = NewGeoPoint(la, ln)
	return nil
}

// AdFilter narrows an ad listing. Nil/empty fields are ignored.
type AdFilter struct {
	Category    string
	Subcategory string
	Country     string
	City        string
	Status      AdStatus
	MinPrice    *float64
	MaxPrice    *float64
	Query       string
	Near        *RadiusQuery
	Page        int
	Limit       int
}
