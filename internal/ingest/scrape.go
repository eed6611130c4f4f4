package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FACorreiaa/usa-attractions/internal/scraper"
	"github.com/FACorreiaa/usa-attractions/internal/types"
)

// DefaultSearchStrings are the New York City queries sent to the actor when
// the configuration provides none.
var DefaultSearchStrings = []string{
	// Landmarks
	"Empire State Building",
	"Statue of Liberty",
	"Brooklyn Bridge",
	"Chrysler Building",
	"One World Trade Center",
	// Sightseeing
	"Times Square New York",
	"Rockefeller Center",
	"Grand Central Terminal",
	"Fifth Avenue New York",
	"Broadway Theater District",
	// Historical sites
	"Ellis Island",
	"Federal Hall NYC",
	"Trinity Church Wall Street",
	"St. Patrick's Cathedral NYC",
	"Theodore Roosevelt Birthplace",
	// Cultural
	"Metropolitan Opera House",
	"Carnegie Hall",
	"Lincoln Center",
	"Radio City Music Hall",
	"Broadway Shows",
	// Parks and gardens
	"Central Park attractions",
	"Bryant Park",
	"High Line park",
	"Brooklyn Botanic Garden",
	"Washington Square Park",
	// Museums and galleries
	"Metropolitan Museum of Art",
	"MoMA NYC",
	"American Museum of Natural History",
	"Whitney Museum",
	"Guggenheim Museum",
}

var newYorkKeywords = []string{"new york", "ny", "nyc", "manhattan", "brooklyn", "queens", "bronx", "staten island"}

// PlaceSearcher runs a place search; *scraper.Client implements it.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, input scraper.Input) ([]scraper.PlaceItem, error)
}

// ScrapeSource fetches places from the scraping actor and keeps those in New York.
type ScrapeSource struct {
	searcher         PlaceSearcher
	searchStrings    []string
	maxCrawledPlaces int
	logger           *slog.Logger
}

func NewScrapeSource(searcher PlaceSearcher, searchStrings []string, maxCrawledPlaces int, logger *slog.Logger) *ScrapeSource {
	if len(searchStrings) == 0 {
		searchStrings = DefaultSearchStrings
	}
	if maxCrawledPlaces <= 0 {
		maxCrawledPlaces = 100
	}
	return &ScrapeSource{
		searcher:         searcher,
		searchStrings:    searchStrings,
		maxCrawledPlaces: maxCrawledPlaces,
		logger:           logger,
	}
}

func (s *ScrapeSource) Name() string { return "scrape" }

func (s *ScrapeSource) Fetch(ctx context.Context) ([]types.AttractionInput, error) {
	items, err := s.searcher.SearchPlaces(ctx, scraper.NewInput(s.searchStrings, s.maxCrawledPlaces))
	if err != nil {
		return nil, fmt.Errorf("scrape failed: %w", err)
	}

	out := make([]types.AttractionInput, 0, len(items))
	for _, item := range items {
		if !IsNewYork(item.Address) {
			s.logger.DebugContext(ctx, "Skipping place outside New York", slog.String("title", item.Title), slog.String("address", item.Address))
			continue
		}
		out = append(out, PlaceToInput(item))
	}
	s.logger.InfoContext(ctx, "Scraped places filtered", slog.Int("scraped", len(items)), slog.Int("kept", len(out)))
	return out, nil
}

// IsNewYork reports whether an address mentions New York City or one of its boroughs.
func IsNewYork(address string) bool {
	address = strings.ToLower(address)
	for _, kw := range newYorkKeywords {
		if strings.Contains(address, kw) {
			return true
		}
	}
	return false
}

// PlaceToInput maps a scraped place to the seed shape. Missing coordinates become zero.
func PlaceToInput(item scraper.PlaceItem) types.AttractionInput {
	var lat, lng float64
	if item.Location != nil {
		lat, lng = item.Location.Lat, item.Location.Lng
	}
	category := item.CategoryText()

	in := types.AttractionInput{
		Name:        item.Title,
		Description: FormatDescription(item.Description, category, item.ReviewsCount, item.TotalScore),
		Image:       SelectBestImage(item.AllImages()),
		Location: types.Location{
			Lat:     lat,
			Lng:     lng,
			Address: item.Address,
			City:    "New York City",
			State:   "NY",
		},
		Rating:       item.TotalScore,
		Category:     InferCategory(item.Title, category, item.Description),
		AdmissionFee: strPtr(FormatPrice(item.PriceRange)),
		OpeningHours: strPtr(FormatOpeningHours(item.OpeningHours)),
	}
	if item.Website != "" {
		in.Website = strPtr(item.Website)
	}
	return in
}
