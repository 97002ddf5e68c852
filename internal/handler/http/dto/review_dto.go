package dto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type PhotoRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Data        string `json:"data" binding:"required,base64"`
}

type CreateReviewRequest struct {
	Lat    *float64       `json:"lat" binding:"required,latitude"`
	Lng    *float64       `json:"lng" binding:"required,longitude"`
	Review string         `json:"review" binding:"required"`
	Rating int            `json:"rating" binding:"required,min=1,max=5"`
	Photos []PhotoRequest `json:"photos" binding:"omitempty,dive"`
}

func (r CreateReviewRequest) ToInput(userID string) (usecasecontract.CreateReviewInput, error) {
	in := usecasecontract.CreateReviewInput{
		UserID: userID,
		Lat:    *r.Lat,
		Lng:    *r.Lng,
		Text:   r.Review,
		Rating: r.Rating,
	}
	for i, p := range r.Photos {
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return in, fmt.Errorf("%w: photo %d is not valid base64", entity.ErrValidation, i)
		}
		in.Photos = append(in.Photos, usecasecontract.PhotoUpload{
			Filename:    p.Filename,
			ContentType: p.ContentType,
			Data:        data,
		})
	}
	return in, nil
}

type PhotoResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

type ReviewResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Username  string           `json:"username"`
	Lat       float64          `json:"lat"`
	Lng       float64          `json:"lng"`
	Location  *entity.GeoPoint `json:"location"`
	Review    string           `json:"review"`
	Rating    int              `json:"rating"`
	PhotoIDs  []string         `json:"photo_ids"`
	Photos    []PhotoResponse  `json:"photos"`
	// Distance from the search center in meters, set on nearby results only.
	Distance  *float64         `json:"distance,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToReviewResponse embeds the resolved photos as base64 payloads.
func ToReviewResponse(review *entity.Review, photos []*entity.Photo) ReviewResponse {
	out := ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		Username:  review.Username,
		Lat:       review.Lat,
		Lng:       review.Lng,
		Location:  review.Location,
		Review:    review.Text,
		Rating:    review.Rating,
		PhotoIDs:  review.PhotoIDs,
		Photos:    make([]PhotoResponse, 0, len(photos)),
		CreatedAt: review.CreatedAt,
	}
	for _, p := range photos {
		out.Photos = append(out.Photos, PhotoResponse{
			ID:          p.ID,
			Filename:    p.Filename,
			ContentType: p.ContentType,
			Data:        base64.StdEncoding.EncodeToString(p.Data),
		})
	}
	return out
}
