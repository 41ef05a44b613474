// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jsingh/trendtracker/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// One extra attempt on a transport-level failure.
	maxRetries = 1
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyAlbum represents a Spotify album. Popularity is a pointer so a
// payload that omits the field is distinguishable from popularity zero.
type SpotifyAlbum struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	ReleaseDate  string          `json:"release_date"`
	TotalTracks  int             `json:"total_tracks"`
	Images       []SpotifyImage  `json:"images"`
	Popularity   *int            `json:"popularity"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

type searchResponse struct {
	Albums struct {
		Items []SpotifyAlbum `json:"items"`
	} `json:"albums"`
}

// SpotifyService implements [Catalog] against the Spotify Web API using the
// client credentials grant. The token source caches the bearer token for its
// validity window, so repeated lookups reuse one token instead of exchanging
// credentials per call.
type SpotifyService struct {
	baseURL    string
	tokens     oauth2.TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// SpotifyOpts contains configuration options for creating a SpotifyService.
type SpotifyOpts struct {
	ClientID     string
	ClientSecret string
	BaseURL      string  // defaults to the public API
	TokenURL     string  // defaults to the public accounts service
	RateLimit    float64 // requests per second, 0 disables limiting
	HTTPClient   *http.Client
	Logger       *log.Logger
}

// NewSpotifyService creates a new Spotify catalog client.
func NewSpotifyService(opts SpotifyOpts) (*SpotifyService, error) {
	if opts.ClientID == "" {
		return nil, fmt.Errorf("%w: client id", shared.ErrMissingCredentials)
	}
	if opts.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client secret", shared.ErrMissingCredentials)
	}

	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	grant := &clientcredentials.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		TokenURL:     opts.TokenURL,
	}
	authCtx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.HTTPClient)

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &SpotifyService{
		baseURL:    opts.BaseURL,
		tokens:     grant.TokenSource(authCtx),
		httpClient: opts.HTTPClient,
		limiter:    limiter,
		logger:     opts.Logger,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AcquireToken exchanges the client credentials for a bearer token via the
// token endpoint. A cached token is returned while it remains valid.
func (s *SpotifyService) AcquireToken(ctx context.Context) (*oauth2.Token, error) {
	token, err := s.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing access token", shared.ErrAuthFailed)
	}
	return token, nil
}

// doRequest performs an authenticated GET against the Spotify API and decodes
// the JSON response into result.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	token, err := s.AcquireToken(ctx)
	if err != nil {
		return err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
		}
	}

	apiURL := s.baseURL + endpoint

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err = s.httpClient.Do(req)
		if err == nil {
			break
		}
		if attempt >= maxRetries || ctx.Err() != nil {
			return fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
		}
		s.logger.Warn("catalog request failed, retrying", "endpoint", endpoint, "error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API status %d", shared.ErrFetchFailed, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrParseFailed, err)
		}
	}

	return nil
}

// SearchAlbum searches the catalog restricted to album items with a result
// limit of one. Returns nil when the query matched nothing.
func (s *SpotifyService) SearchAlbum(ctx context.Context, query string) (*SpotifyAlbum, error) {
	endpoint := fmt.Sprintf("/search?q=%s&type=album&limit=1", url.QueryEscape(query))

	var response searchResponse
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	if len(response.Albums.Items) == 0 {
		return nil, nil
	}
	return &response.Albums.Items[0], nil
}

// Album retrieves full album detail by ID.
func (s *SpotifyService) Album(ctx context.Context, albumID string) (*SpotifyAlbum, error) {
	var album SpotifyAlbum
	endpoint := fmt.Sprintf("/albums/%s", albumID)
	if err := s.doRequest(ctx, endpoint, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// SeveralAlbums retrieves multiple albums by their IDs (up to 20).
func (s *SpotifyService) SeveralAlbums(ctx context.Context, albumIDs []string) ([]SpotifyAlbum, error) {
	if len(albumIDs) == 0 {
		return nil, fmt.Errorf("%w: no album IDs provided", shared.ErrInvalidArgument)
	}
	if len(albumIDs) > 20 {
		return nil, fmt.Errorf("%w: maximum 20 album IDs allowed", shared.ErrInvalidArgument)
	}

	ids := strings.Join(albumIDs, ",")
	endpoint := fmt.Sprintf("/albums/?ids=%s", url.QueryEscape(ids))

	var response struct {
		Albums []SpotifyAlbum `json:"albums"`
	}

	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return response.Albums, nil
}
