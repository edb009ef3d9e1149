package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mvw/internal/library"
)

// Plot detail levels accepted by the OMDb API.
const (
	PlotShort = "short"
	PlotFull  = "full"
)

var (
	// ErrNotFound indicates the catalog has no entry for the title or id.
	ErrNotFound = errors.New("movie not found")
	// ErrInvalidKey indicates the API rejected the configured key.
	ErrInvalidKey = errors.New("invalid api key")
	// ErrSchemaMismatch indicates a response payload missing required fields.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// payload models the flat OMDb item response. Response/Error carry the
// API-level outcome; everything else is catalog data.
type payload struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	DVD        string `json:"DVD"`
	BoxOffice  string `json:"BoxOffice"`
	Production string `json:"Production"`
	Website    string `json:"Website"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// SearchResult is a single entry from an OMDb title search.
type SearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
}

type searchResponse struct {
	Search       []SearchResult `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error"`
}

// Fetcher defines the catalog operations the review session depends on.
type Fetcher interface {
	FetchByTitle(ctx context.Context, title string) (*library.Movie, error)
	FetchByID(ctx context.Context, imdbID, plot string) (*library.Movie, error)
}

// Client provides access to the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	plot       string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPlot sets the default plot detail requested from the API.
func WithPlot(plot string) Option {
	return func(c *Client) {
		plot = strings.ToLower(strings.TrimSpace(plot))
		if plot == PlotShort || plot == PlotFull {
			c.plot = plot
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		plot:       PlotShort,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchByTitle fetches the catalog record matching a title exactly.
func (c *Client) FetchByTitle(ctx context.Context, title string) (*library.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	return c.fetchItem(ctx, url.Values{"t": {title}, "plot": {c.plot}})
}

// FetchByID fetches the catalog record for an IMDb id. An empty plot uses
// the client default.
func (c *Client) FetchByID(ctx context.Context, imdbID, plot string) (*library.Movie, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.New("imdb id is required")
	}
	if plot != PlotShort && plot != PlotFull {
		plot = c.plot
	}
	return c.fetchItem(ctx, url.Values{"i": {imdbID}, "plot": {plot}})
}

// Search returns catalog candidates loosely matching a title. Useful when
// two films share a name and the caller must pick an id.
func (c *Client) Search(ctx context.Context, title string) ([]SearchResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title is required")
	}

	var parsed searchResponse
	if err := c.get(ctx, url.Values{"s": {title}, "type": {"movie"}}, &parsed); err != nil {
		return nil, err
	}
	if strings.EqualFold(parsed.Response, "False") {
		return nil, apiError(parsed.Error)
	}
	return parsed.Search, nil
}

// ValidateKey reports whether the given API key is accepted by the catalog.
// A network failure surfaces as an error rather than a rejection.
func ValidateKey(ctx context.Context, key, baseURL string, opts ...Option) (bool, error) {
	client, err := New(key, baseURL, opts...)
	if err != nil {
		return false, err
	}
	_, err = client.FetchByID(ctx, "tt0816692", "")
	if errors.Is(err, ErrInvalidKey) {
		return false, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}
	return true, nil
}

func (c *Client) fetchItem(ctx context.Context, params url.Values) (*library.Movie, error) {
	var parsed payload
	if err := c.get(ctx, params, &parsed); err != nil {
		return nil, err
	}
	if strings.EqualFold(parsed.Response, "False") {
		return nil, apiError(parsed.Error)
	}
	return toMovie(parsed)
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)
	params.Set("r", "json")

	endpoint := c.baseURL + "/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build omdb request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("omdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidKey
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("omdb request: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode omdb response: %w", err)
	}
	return nil
}

// toMovie maps the provider payload onto the fixed library record shape.
// Records missing the identity fields are rejected rather than stored with
// absent attributes.
func toMovie(p payload) (*library.Movie, error) {
	if strings.TrimSpace(p.ImdbID) == "" {
		return nil, fmt.Errorf("%w: response missing imdbID", ErrSchemaMismatch)
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: response missing Title", ErrSchemaMismatch)
	}

	return &library.Movie{
		ImdbID:     p.ImdbID,
		Title:      p.Title,
		Year:       cleanField(p.Year),
		Rated:      cleanField(p.Rated),
		Released:   cleanField(p.Released),
		Runtime:    cleanField(p.Runtime),
		Genre:      cleanField(p.Genre),
		Director:   cleanField(p.Director),
		Writer:     cleanField(p.Writer),
		Actors:     cleanField(p.Actors),
		Plot:       cleanField(p.Plot),
		Language:   cleanField(p.Language),
		Country:    cleanField(p.Country),
		Awards:     cleanField(p.Awards),
		PosterLink: cleanField(p.Poster),
		Metascore:  cleanField(p.Metascore),
		ImdbRating: parseRating(p.ImdbRating),
		ImdbVotes:  cleanField(p.ImdbVotes),
		Type:       cleanField(p.Type),
		DVD:        cleanField(p.DVD),
		BoxOffice:  cleanField(p.BoxOffice),
		Production: cleanField(p.Production),
		Website:    cleanField(p.Website),
	}, nil
}

func apiError(message string) error {
	message = strings.TrimSpace(message)
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "not found"), strings.Contains(lower, "incorrect imdb id"):
		return ErrNotFound
	case strings.Contains(lower, "api key"):
		return fmt.Errorf("%w: %s", ErrInvalidKey, message)
	case message == "":
		return errors.New("omdb request failed")
	default:
		return fmt.Errorf("omdb request failed: %s", message)
	}
}

// cleanField normalizes the API's "N/A" placeholder to an empty string.
func cleanField(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func parseRating(value string) float64 {
	value = cleanField(value)
	if value == "" {
		return 0
	}
	rating, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return rating
}
