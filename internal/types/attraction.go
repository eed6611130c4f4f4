package types

import (
	"github.com/google/uuid"
)

// AnonymousUserName is shown as the author of every review. The store keeps
// an optional user_id but review authorship is never rendered by name.
const AnonymousUserName = "Anonymous"

// DefaultCategory is used when no category can be inferred for a record.
const DefaultCategory = "Popular Destinations"

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
}

// Attraction is the nested public shape served to clients.
type Attraction struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Location     Location  `json:"location"`
	Rating       float64   `json:"rating"`
	Reviews      []Review  `json:"reviews"`
	Category     string    `json:"category"`
	AdmissionFee *string   `json:"admission_fee,omitempty"`
	OpeningHours *string   `json:"opening_hours,omitempty"`
	Website      *string   `json:"website,omitempty"`
}

// AttractionInput is an attraction without its store-assigned fields. It is
// also the seed file record format.
type AttractionInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Location     Location `json:"location"`
	Rating       float64  `json:"rating"`
	Category     string   `json:"category"`
	AdmissionFee *string  `json:"admission_fee,omitempty"`
	OpeningHours *string  `json:"opening_hours,omitempty"`
	Website      *string  `json:"website,omitempty"`
}

// Input strips the id and reviews from a.
func (a Attraction) Input() AttractionInput {
	return AttractionInput{
		Name:         a.Name,
		Description:  a.Description,
		Image:        a.Image,
		Location:     a.Location,
		Rating:       a.Rating,
		Category:     a.Category,
		AdmissionFee: a.AdmissionFee,
		OpeningHours: a.OpeningHours,
		Website:      a.Website,
	}
}

type LocationPatch struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address *string  `json:"address,omitempty"`
	City    *string  `json:"city,omitempty"`
	State   *string  `json:"state,omitempty"`
}

// AttractionPatch is a partial update; nil fields are left untouched.
type AttractionPatch struct {
	Name         *string        `json:"name,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Image        *string        `json:"image,omitempty"`
	Location     *LocationPatch `json:"location,omitempty"`
	Rating       *float64       `json:"rating,omitempty"`
	Category     *string        `json:"category,omitempty"`
	AdmissionFee *string        `json:"admission_fee,omitempty"`
	OpeningHours *string        `json:"opening_hours,omitempty"`
	Website      *string        `json:"website,omitempty"`
}

// FullPatch turns a complete input into a patch that overwrites every column.
// Optional fields that are nil stay nil and are therefore not overwritten.
func FullPatch(in AttractionInput) AttractionPatch {
	return AttractionPatch{
		Name:        &in.Name,
		Description: &in.Description,
		Image:       &in.Image,
		Location: &LocationPatch{
			Lat:     &in.Location.Lat,
			Lng:     &in.Location.Lng,
			Address: &in.Location.Address,
			City:    &in.Location.City,
			State:   &in.Location.State,
		},
		Rating:       &in.Rating,
		Category:     &in.Category,
		AdmissionFee: in.AdmissionFee,
		OpeningHours: in.OpeningHours,
		Website:      in.Website,
	}
}

// AttractionFilter narrows a listing. Query matches name, city or state
// case-insensitively; Category must match exactly, ignoring case.
type AttractionFilter struct {
	Query    string `json:"q,omitempty"`
	Category string `json:"category,omitempty"`
}
