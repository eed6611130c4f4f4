package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/usa-attractions/config"
)

// DefaultStartURL is the map search the actor starts from, centred on Manhattan.
const DefaultStartURL = "https://www.google.com/maps/search/attractions/@40.7128,-74.0060,12z"

var ErrMissingToken = errors.New("apify token is not configured")

type StartURL struct {
	URL string `json:"url"`
}

type ProxyConfiguration struct {
	UseApifyProxy bool `json:"useApifyProxy"`
}

// Input is the google-maps-scraper actor input.
type Input struct {
	SearchStrings       []string           `json:"searchStrings"`
	MaxCrawledPlaces    int                `json:"maxCrawledPlaces"`
	Language            string             `json:"language"`
	MaxImages           int                `json:"maxImages"`
	IncludeReviews      bool               `json:"includeReviews"`
	MaxReviews          int                `json:"maxReviews"`
	ReviewsSort         string             `json:"reviewsSort,omitempty"`
	IncludeOpeningHours bool               `json:"includeOpeningHours"`
	IncludePriceRange   bool               `json:"includePriceRange"`
	ProxyConfiguration  ProxyConfiguration `json:"proxyConfiguration"`
	StartURLs           []StartURL         `json:"startUrls,omitempty"`
}

// NewInput builds the actor input used for New York City scrapes.
func NewInput(searchStrings []string, maxCrawledPlaces int) Input {
	return Input{
		SearchStrings:       searchStrings,
		MaxCrawledPlaces:    maxCrawledPlaces,
		Language:            "en",
		MaxImages:           3,
		IncludeReviews:      true,
		MaxReviews:          20,
		ReviewsSort:         "newest",
		IncludeOpeningHours: true,
		IncludePriceRange:   true,
		ProxyConfiguration:  ProxyConfiguration{UseApifyProxy: true},
		StartURLs:           []StartURL{{URL: DefaultStartURL}},
	}
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceItem is one dataset item produced by the actor. PriceRange and
// OpeningHours vary in shape between actor versions and are kept raw.
type PlaceItem struct {
	PlaceID      string          `json:"placeId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	CategoryName string          `json:"categoryName"`
	Address      string          `json:"address"`
	Location     *Coordinates    `json:"location"`
	TotalScore   float64         `json:"totalScore"`
	ReviewsCount int             `json:"reviewsCount"`
	Images       []string        `json:"images"`
	ImageURLs    []string        `json:"imageUrls"`
	Website      string          `json:"website"`
	PriceRange   json.RawMessage `json:"priceRange"`
	OpeningHours json.RawMessage `json:"openingHours"`
}

// CategoryText returns whichever category field the actor filled in.
func (p PlaceItem) CategoryText() string {
	if p.Category != "" {
		return p.Category
	}
	return p.CategoryName
}

// AllImages returns every image URL the item carries.
func (p PlaceItem) AllImages() []string {
	out := make([]string, 0, len(p.Images)+len(p.ImageURLs))
	out = append(out, p.Images...)
	return append(out, p.ImageURLs...)
}

// Client runs Apify actors synchronously and returns their dataset items.
type Client struct {
	baseURL    string
	token      string
	actor      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.ScraperConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		actor:      cfg.Actor,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SearchPlaces runs the actor with input and waits for its dataset.
func (c *Client) SearchPlaces(ctx context.Context, input Input) ([]PlaceItem, error) {
	ctx, span := otel.Tracer("ApifyClient").Start(ctx, "SearchPlaces")
	defer span.End()
	span.SetAttributes(
		attribute.String("apify.actor", c.actor),
		attribute.Int("apify.search_strings", len(input.SearchStrings)),
	)

	if c.token == "" {
		span.SetStatus(codes.Error, "missing token")
		return nil, ErrMissingToken
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(c.actor), url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build actor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.InfoContext(ctx, "Running scraping actor", slog.String("actor", c.actor), slog.Int("queries", len(input.SearchStrings)))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("actor run request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WarnContext(ctx, "Error closing response body", slog.Any("error", err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		span.SetStatus(codes.Error, resp.Status)
		return nil, fmt.Errorf("actor run failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var items []PlaceItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("failed to decode dataset items: %w", err)
	}

	c.logger.InfoContext(ctx, "Scraping actor finished",
		slog.Int("items", len(items)),
		slog.Duration("duration", time.Since(start)))
	span.SetAttributes(attribute.Int("apify.items", len(items)))
	span.SetStatus(codes.Ok, "")
	return items, nil
}
