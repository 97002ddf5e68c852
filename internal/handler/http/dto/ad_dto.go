package dto

import (
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type LocationRequest struct {
	Lat *float64 `json:"lat" binding:"required,latitude"`
	Lng *float64 `json:"lng" binding:"required,longitude"`
}

type AdPhotoRequest struct {
	URL      string `json:"url" binding:"required,url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size" binding:"gte=0"`
	MimeType string `json:"mimetype"`
}

// AdRequest is shared by create and update; update applies only the
// fields that are present.
type AdRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=120"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Category    *string          `json:"category"`
	Subcategory *string          `json:"subcategory"`
	Country     *string          `json:"country"`
	City        *string          `json:"city"`
	Address     *string          `json:"address"`
	Price       *float64         `json:"price" binding:"omitempty,gte=0"`
	Currency    *string          `json:"currency" binding:"omitempty,len=3"`
	Status      *string          `json:"status" binding:"omitempty,adstatus"`
	Photos      []AdPhotoRequest `json:"photos" binding:"omitempty,dive"`
	Location    *LocationRequest `json:"location"`
}

func (r AdRequest) ToInput() usecasecontract.AdInput {
	in := usecasecontract.AdInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Country:     r.Country,
		City:        r.City,
		Address:     r.Address,
		Price:       r.Price,
		Currency:    r.Currency,
		Status:      r.Status,
	}
	if r.Photos != nil {
		in.Photos = make([]entity.AdPhoto, 0, len(r.Photos))
		for _, p := range r.Photos {
			in.Photos = append(in.Photos, entity.AdPhoto{URL: p.URL, Filename: p.Filename, Size: p.Size, MimeType: p.MimeType})
		}
	}
	if r.Location != nil {
		in.Lat, in.Lng = r.Location.Lat, r.Location.Lng
	}
	return in
}
