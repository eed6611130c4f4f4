package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/usa-attractions/internal/types"
)

const (
	DefaultImage        = "https://images.unsplash.com/photo-1501594907352-04cda38ebc29"
	DefaultPrice        = "Contact for pricing"
	DefaultOpeningHours = "Hours not available"
	DefaultDescription  = "Explore this New York City attraction"
)

type keywordSet struct {
	category string
	keywords []string
}

// categoryKeywords is ordered; the first set with a match wins.
var categoryKeywords = []keywordSet{
	{"Museums and Galleries", []string{"museum", "gallery", "art", "exhibition", "collection"}},
	{"Parks and Gardens", []string{"park", "garden", "botanical", "green space", "recreation"}},
	{"Landmarks", []string{"building", "tower", "bridge", "statue", "monument", "square", "center"}},
	{"Historical Sites", []string{"historic", "heritage", "memorial", "cemetery", "church", "cathedral"}},
	{"Cultural Attractions", []string{"theater", "theatre", "opera", "concert", "hall", "performance", "broadway"}},
	{"Popular Destinations", []string{"attraction", "tourist", "famous", "destination", "spot"}},
	{"Sightseeing", []string{"observation", "view", "deck", "tour", "cruise"}},
	{"Things to Do", []string{"activity", "experience", "entertainment", "shopping"}},
}

// nameOverrides pins well-known places whose names would otherwise hit a
// misleading keyword ("times square" contains "square").
var nameOverrides = []struct {
	fragment string
	category string
}{
	{"empire state", "Landmarks"},
	{"statue of liberty", "Landmarks"},
	{"brooklyn bridge", "Landmarks"},
	{"central park", "Parks and Gardens"},
	{"times square", "Popular Destinations"},
	{"metropolitan museum", "Museums and Galleries"},
	{"broadway", "Cultural Attractions"},
	{"ellis island", "Historical Sites"},
}

// InferCategory picks a display category from free text. Name overrides are
// consulted first, then the keyword table against name, category and
// description; otherwise types.DefaultCategory.
func InferCategory(name, category, description string) string {
	name = strings.ToLower(name)
	category = strings.ToLower(category)
	description = strings.ToLower(description)

	for _, o := range nameOverrides {
		if strings.Contains(name, o.fragment) {
			return o.category
		}
	}

	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(name, kw) || strings.Contains(category, kw) || strings.Contains(description, kw) {
				return set.category
			}
		}
	}
	return types.DefaultCategory
}

// FormatDescription builds a short description from listing statistics when
// the source has none.
func FormatDescription(description, category string, reviewsCount int, totalScore float64) string {
	if strings.TrimSpace(description) != "" {
		return description
	}
	var parts []string
	if reviewsCount > 0 {
		parts = append(parts, fmt.Sprintf("%d reviews on Google Maps", reviewsCount))
	}
	if category != "" {
		parts = append(parts, category+" in New York City")
	}
	if totalScore > 0 {
		parts = append(parts, fmt.Sprintf("Rated %.1f stars", totalScore))
	}
	if len(parts) == 0 {
		return DefaultDescription
	}
	return strings.Join(parts, ". ")
}

// SelectBestImage returns the first absolute http(s) URL.
func SelectBestImage(images []string) string {
	for _, img := range images {
		if strings.HasPrefix(img, "http") {
			return img
		}
	}
	return DefaultImage
}

// FormatPrice accepts a string or an array of strings.
func FormatPrice(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return DefaultPrice
		}
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, " - ")
	}
	return DefaultPrice
}

type dayHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// FormatOpeningHours accepts a string, an array of strings or an array of
// {day, hours} objects.
func FormatOpeningHours(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return DefaultOpeningHours
		}
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.Join(list, ", ")
	}
	var days []dayHours
	if err := json.Unmarshal(raw, &days); err == nil && len(days) > 0 {
		out := make([]string, 0, len(days))
		for _, d := range days {
			out = append(out, d.Day+": "+d.Hours)
		}
		return strings.Join(out, ", ")
	}
	return DefaultOpeningHours
}
