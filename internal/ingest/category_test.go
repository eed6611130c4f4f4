package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/usa-attractions/internal/types"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name, title, category, description, want string
	}{
		{name: "times square override beats square keyword", title: "Times Square", want: "Popular Destinations"},
		{name: "empire state override", title: "Empire State Building", want: "Landmarks"},
		{name: "override ignores case", title: "ELLIS ISLAND National Museum of Immigration", want: "Historical Sites"},
		{name: "museum keyword", title: "Guggenheim Museum", want: "Museums and Galleries"},
		{name: "park keyword", title: "Bryant Park", want: "Parks and Gardens"},
		{name: "keyword in category text", title: "The Cloisters", category: "Art museum", want: "Museums and Galleries"},
		{name: "cathedral", title: "St. Patrick's Cathedral", want: "Historical Sites"},
		{name: "concert hall", title: "Carnegie Hall", want: "Cultural Attractions"},
		{name: "keyword in description", title: "Top of the Rock", description: "Observation deck", want: "Sightseeing"},
		{name: "table order wins", title: "Brooklyn Botanic Garden", description: "Historic garden", want: "Parks and Gardens"},
		{name: "no match falls back", title: "Katz's Delicatessen", category: "Deli", description: "Pastrami sandwiches since 1888.", want: types.DefaultCategory},
		{name: "empty input", want: "Popular Destinations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCategory(tt.title, tt.category, tt.description))
		})
	}
}

func TestFormatDescription(t *testing.T) {
	assert.Equal(t, "Given.", FormatDescription("Given.", "Park", 10, 4.5))
	assert.Equal(t, "120 reviews on Google Maps. Park in New York City. Rated 4.5 stars",
		FormatDescription("", "Park", 120, 4.46))
	assert.Equal(t, "Rated 3.0 stars", FormatDescription("", "", 0, 3))
	assert.Equal(t, DefaultDescription, FormatDescription("  ", "", 0, 0))
}

func TestSelectBestImage(t *testing.T) {
	assert.Equal(t, DefaultImage, SelectBestImage(nil))
	assert.Equal(t, DefaultImage, SelectBestImage([]string{"", "data:image/png;base64,xx"}))
	assert.Equal(t, "https://img/2", SelectBestImage([]string{"/relative", "https://img/2", "https://img/3"}))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: ``, want: DefaultPrice},
		{raw: `null`, want: DefaultPrice},
		{raw: `""`, want: DefaultPrice},
		{raw: `"$$"`, want: "$$"},
		{raw: `["$10","$20"]`, want: "$10 - $20"},
		{raw: `{"min":10}`, want: DefaultPrice},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(json.RawMessage(tt.raw)), "raw=%s", tt.raw)
	}
}

func TestFormatOpeningHours(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: ``, want: DefaultOpeningHours},
		{raw: `null`, want: DefaultOpeningHours},
		{raw: `"24/7"`, want: "24/7"},
		{raw: `["Mon 9-5","Tue 9-5"]`, want: "Mon 9-5, Tue 9-5"},
		{raw: `[{"day":"Monday","hours":"7 AM to 10 PM"},{"day":"Tuesday","hours":"Closed"}]`, want: "Monday: 7 AM to 10 PM, Tuesday: Closed"},
		{raw: `[]`, want: DefaultOpeningHours},
		{raw: `42`, want: DefaultOpeningHours},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatOpeningHours(json.RawMessage(tt.raw)), "raw=%s", tt.raw)
	}
}
