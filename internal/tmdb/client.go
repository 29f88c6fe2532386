package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/catchup/internal/fetch"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when TMDB has no matching movie.
var ErrNotFound = errors.New("movie not found")

// Client is a TMDB API client.
type Client struct {
	apiKey  string
	baseURL string
	fetcher fetch.Fetcher
	cache   *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithCacheTTL sets the cache TTL. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithFetcher routes requests through f instead of a private fetch.Client.
func WithFetcher(f fetch.Fetcher) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		cache:   newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = fetch.New(fetch.WithTimeout(10 * time.Second))
	}
	return c
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	key := "movie/" + strconv.FormatInt(tmdbID, 10)
	if movie, ok := c.cache.get(key); ok {
		return movie, nil
	}

	var movie Movie
	if err := c.getJSON(ctx, "/3/"+key, nil, &movie); err != nil {
		return nil, err
	}

	c.cache.set(key, &movie)
	return &movie, nil
}

// FindByIMDB resolves an IMDB id ("tt0137523") to a TMDB movie.
func (c *Client) FindByIMDB(ctx context.Context, imdbID string) (*Movie, error) {
	key := "imdb/" + imdbID
	if movie, ok := c.cache.get(key); ok {
		return movie, nil
	}

	var resp findResponse
	q := url.Values{"external_source": {"imdb_id"}}
	if err := c.getJSON(ctx, "/3/find/"+url.PathEscape(imdbID), q, &resp); err != nil {
		return nil, err
	}
	if len(resp.MovieResults) == 0 {
		return nil, ErrNotFound
	}

	movie := resp.MovieResults[0]
	if movie.IMDBID == "" {
		movie.IMDBID = imdbID
	}
	c.cache.set(key, &movie)
	return &movie, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)

	body, err := c.fetcher.Get(ctx, c.baseURL+path+"?"+q.Encode())
	if err != nil {
		if fetch.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("tmdb request: %w", err)
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
