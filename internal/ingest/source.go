package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/FACorreiaa/usa-attractions/internal/types"
)

// Source yields the candidate attractions of one ingestion batch.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]types.AttractionInput, error)
}

// LiteralSource serves a fixed in-memory list.
type LiteralSource struct {
	Items []types.AttractionInput
}

// NewLiteralSource returns the built-in list of New York City attractions.
func NewLiteralSource() *LiteralSource {
	return &LiteralSource{Items: nycAttractions()}
}

func (s *LiteralSource) Name() string { return "literal" }

func (s *LiteralSource) Fetch(context.Context) ([]types.AttractionInput, error) {
	out := make([]types.AttractionInput, len(s.Items))
	copy(out, s.Items)
	return out, nil
}

// FileSource reads a JSON array of attractions in the seed data format.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(context.Context) ([]types.AttractionInput, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", s.Path, err)
	}
	var items []types.AttractionInput
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", s.Path, err)
	}
	return items, nil
}

func strPtr(s string) *string { return &s }

func nycAttractions() []types.AttractionInput {
	return []types.AttractionInput{
		{
			Name:         "Statue of Liberty",
			Description:  "Iconic symbol of freedom and democracy, standing tall in New York Harbor.",
			Image:        "https://images.unsplash.com/photo-1605130284535-11dd9eedc58a?auto=format&fit=crop&q=80&w=800",
			Location:     types.Location{Lat: 40.6892, Lng: -74.0445, Address: "Liberty Island", City: "New York City", State: "NY"},
			Rating:       4.8,
			Category:     "Landmarks",
			AdmissionFee: strPtr("$23.50 for adults, $12 for children (4-12)"),
			OpeningHours: strPtr("9:00 AM - 5:00 PM daily"),
			Website:      strPtr("https://www.nps.gov/stli/"),
		},
		{
			Name:         "Empire State Building",
			Description:  "Iconic Art Deco skyscraper with observation decks offering panoramic city views.",
			Image:        "https://images.unsplash.com/photo-1555109307-f0b72a1f3729?auto=format&fit=crop&q=80&w=800",
			Location:     types.Location{Lat: 40.7484, Lng: -73.9857, Address: "20 W 34th St", City: "New York City", State: "NY"},
			Rating:       4.7,
			Category:     "Landmarks",
			AdmissionFee: strPtr("$42 for adults, $36 for children (6-12)"),
			OpeningHours: strPtr("8:00 AM - 2:00 AM daily"),
			Website:      strPtr("https://www.esbnyc.com/"),
		},
		{
			Name:         "Central Park",
			Description:  "Sprawling urban oasis with walking paths, a zoo, and various attractions.",
			Image:        "https://images.unsplash.com/photo-1570168007204-dfb528c6958f?auto=format&fit=crop&q=80&w=800",
			Location:     types.Location{Lat: 40.7829, Lng: -73.9654, Address: "Central Park", City: "New York City", State: "NY"},
			Rating:       4.9,
			Category:     "Parks and Gardens",
			AdmissionFee: strPtr("Free"),
			OpeningHours: strPtr("6:00 AM - 1:00 AM daily"),
			Website:      strPtr("https://www.centralparknyc.org/"),
		},
		{
			Name:         "Metropolitan Museum of Art",
			Description:  "World-renowned art museum with an extensive collection spanning over 5,000 years of human creativity.",
			Image:        "https://images.unsplash.com/photo-1542341375-af70f5e4c819?auto=format&fit=crop&q=80&w=800",
			Location:     types.Location{Lat: 40.7794, Lng: -73.9632, Address: "1000 5th Ave", City: "New York City", State: "NY"},
			Rating:       4.8,
			Category:     "Museums and Galleries",
			AdmissionFee: strPtr("$25 for adults, free for children under 12"),
			OpeningHours: strPtr("10:00 AM - 5:00 PM, Closed Wednesdays"),
			Website:      strPtr("https://www.metmuseum.org/"),
		},
		{
			Name:         "Times Square",
			Description:  "Iconic intersection known for its bright lights, Broadway theaters, and vibrant atmosphere.",
			Image:        "https://images.unsplash.com/photo-1535905557558-afc4877a26fc?auto=format&fit=crop&q=80&w=800",
			Location:     types.Location{Lat: 40.7580, Lng: -73.9855, Address: "Times Square", City: "New York City", State: "NY"},
			Rating:       4.7,
			Category:     "Popular Destinations",
			AdmissionFee: strPtr("Free"),
			OpeningHours: strPtr("24/7"),
			Website:      strPtr("https://www.timessquarenyc.org/"),
		},
	}
}
