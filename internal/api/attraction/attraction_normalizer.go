package attraction

import (
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/usa-attractions/internal/types"
)

// AttractionRow is the flat storage shape of the attractions table.
type AttractionRow struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Image        string
	Latitude     float64
	Longitude    float64
	Address      string
	City         string
	State        string
	Rating       float64
	Category     string
	AdmissionFee *string
	OpeningHours *string
	Website      *string
	Reviews      []ReviewRow
}

// ReviewRow is one reviews table row. The json tags match the keys produced by
// json_build_object in the listing query.
type ReviewRow struct {
	ID           uuid.UUID  `json:"id"`
	AttractionID uuid.UUID  `json:"attraction_id"`
	UserID       *uuid.UUID `json:"user_id"`
	Rating       float64    `json:"rating"`
	Comment      string     `json:"comment"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ColumnValue is one column assignment of a partial update.
type ColumnValue struct {
	Column string
	Value  any
}

// ToAttraction converts a storage row into the nested public shape.
func ToAttraction(row AttractionRow) types.Attraction {
	reviews := make([]types.Review, 0, len(row.Reviews))
	for _, r := range row.Reviews {
		reviews = append(reviews, ToReview(r))
	}

	return types.Attraction{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Image:       row.Image,
		Location: types.Location{
			Lat:     row.Latitude,
			Lng:     row.Longitude,
			Address: row.Address,
			City:    row.City,
			State:   row.State,
		},
		Rating:       row.Rating,
		Reviews:      reviews,
		Category:     row.Category,
		AdmissionFee: row.AdmissionFee,
		OpeningHours: row.OpeningHours,
		Website:      row.Website,
	}
}

// ToReview converts a review row. The author is always shown as anonymous.
func ToReview(row ReviewRow) types.Review {
	return types.Review{
		ID:       row.ID,
		UserID:   row.UserID,
		UserName: types.AnonymousUserName,
		Rating:   row.Rating,
		Comment:  row.Comment,
		Date:     row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToRow flattens a full attraction input into the storage shape.
func ToRow(in types.AttractionInput) AttractionRow {
	return AttractionRow{
		Name:         in.Name,
		Description:  in.Description,
		Image:        in.Image,
		Latitude:     in.Location.Lat,
		Longitude:    in.Location.Lng,
		Address:      in.Location.Address,
		City:         in.Location.City,
		State:        in.Location.State,
		Rating:       in.Rating,
		Category:     in.Category,
		AdmissionFee: in.AdmissionFee,
		OpeningHours: in.OpeningHours,
		Website:      in.Website,
	}
}

// PatchColumns flattens a partial update. Absent fields produce no column,
// so the store leaves them untouched. Order is stable.
func PatchColumns(p types.AttractionPatch) []ColumnValue {
	var cols []ColumnValue
	add := func(column string, present bool, value any) {
		if present {
			cols = append(cols, ColumnValue{Column: column, Value: value})
		}
	}

	add("name", p.Name != nil, deref(p.Name))
	add("description", p.Description != nil, deref(p.Description))
	add("image", p.Image != nil, deref(p.Image))
	if loc := p.Location; loc != nil {
		add("latitude", loc.Lat != nil, deref(loc.Lat))
		add("longitude", loc.Lng != nil, deref(loc.Lng))
		add("address", loc.Address != nil, deref(loc.Address))
		add("city", loc.City != nil, deref(loc.City))
		add("state", loc.State != nil, deref(loc.State))
	}
	add("rating", p.Rating != nil, deref(p.Rating))
	add("category", p.Category != nil, deref(p.Category))
	add("admission_fee", p.AdmissionFee != nil, deref(p.AdmissionFee))
	add("opening_hours", p.OpeningHours != nil, deref(p.OpeningHours))
	add("website", p.Website != nil, deref(p.Website))

	return cols
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
