package types

import (
	"github.com/google/uuid"
)

type Review struct {
	ID       uuid.UUID  `json:"id"`
	UserID   *uuid.UUID `json:"userId,omitempty"`
	UserName string     `json:"userName"`
	Rating   float64    `json:"rating"`
	Comment  string     `json:"comment"`
	Date     string     `json:"date"`
}

type ReviewRequest struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}
