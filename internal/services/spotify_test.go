package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jsingh/trendtracker/internal/shared"
)

// catalogServer stubs the token endpoint and the catalog API in one server.
func catalogServer(t *testing.T, tokenCalls *atomic.Int64, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token" {
			if tokenCalls != nil {
				tokenCalls.Add(1)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse token form: %v", err)
			}
			if grant := r.FormValue("grant_type"); grant != "client_credentials" {
				t.Errorf("expected grant_type client_credentials, got %s", grant)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "test_token", "token_type": "Bearer", "expires_in": 3600}`)
			return
		}
		handler(w, r)
	}))
}

func newTestService(t *testing.T, server *httptest.Server) *SpotifyService {
	t.Helper()
	srv, err := NewSpotifyService(SpotifyOpts{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		BaseURL:      server.URL,
		TokenURL:     server.URL + "/api/token",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return srv
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(SpotifyOpts{
				ClientID:     "test_client_id",
				ClientSecret: "test_client_secret",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if srv == nil {
				t.Fatal("expected service to be created")
			}

			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}

			if srv.baseURL != spotifyBaseURL {
				t.Errorf("expected default base URL, got %s", srv.baseURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(SpotifyOpts{ClientSecret: "test_client_secret"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(SpotifyOpts{ClientID: "test_client_id"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("AcquireToken", func(t *testing.T) {
		t.Run("Issues Bearer Token", func(t *testing.T) {
			server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			})
			defer server.Close()

			srv := newTestService(t, server)
			token, err := srv.AcquireToken(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token.AccessToken != "test_token" {
				t.Errorf("expected access token test_token, got %s", token.AccessToken)
			}
		})

		t.Run("Missing Access Token Field", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"token_type": "Bearer"}`)
			}))
			defer server.Close()

			srv, err := NewSpotifyService(SpotifyOpts{
				ClientID:     "test_client_id",
				ClientSecret: "test_client_secret",
				TokenURL:     server.URL,
			})
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}

			if _, err := srv.AcquireToken(context.Background()); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("Token Endpoint Unreachable", func(t *testing.T) {
			srv, err := NewSpotifyService(SpotifyOpts{
				ClientID:     "test_client_id",
				ClientSecret: "test_client_secret",
				TokenURL:     "http://127.0.0.1:1/api/token",
			})
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}

			if _, err := srv.AcquireToken(context.Background()); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})

		t.Run("Caches Token Across Calls", func(t *testing.T) {
			var tokenCalls atomic.Int64
			server := catalogServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"albums": {"items": []}}`)
			})
			defer server.Close()

			srv := newTestService(t, server)
			for range 3 {
				if _, err := srv.SearchAlbum(context.Background(), "anything"); err != nil {
					t.Fatalf("search failed: %v", err)
				}
			}

			if tokenCalls.Load() != 1 {
				t.Errorf("expected 1 token exchange, got %d", tokenCalls.Load())
			}
		})
	})

	t.Run("SearchAlbum", func(t *testing.T) {
		t.Run("Returns First Match", func(t *testing.T) {
			server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("expected path /search, got %s", r.URL.Path)
				}
				query := r.URL.Query()
				if query.Get("q") != "Test Album Test Artist" {
					t.Errorf("unexpected query %q", query.Get("q"))
				}
				if query.Get("type") != "album" {
					t.Errorf("expected type album, got %s", query.Get("type"))
				}
				if query.Get("limit") != "1" {
					t.Errorf("expected limit 1, got %s", query.Get("limit"))
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer test_token" {
					t.Errorf("expected bearer auth, got %s", auth)
				}

				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"albums": {"items": [{"id": "XYZ", "name": "Test Album", "uri": "spotify:album:XYZ"}]}}`)
			})
			defer server.Close()

			srv := newTestService(t, server)
			album, err := srv.SearchAlbum(context.Background(), "Test Album Test Artist")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if album == nil {
				t.Fatal("expected a match")
			}
			if album.ID != "XYZ" {
				t.Errorf("expected album id XYZ, got %s", album.ID)
			}
		})

		t.Run("No Match Returns Nil", func(t *testing.T) {
			server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"albums": {"items": []}}`)
			})
			defer server.Close()

			srv := newTestService(t, server)
			album, err := srv.SearchAlbum(context.Background(), "nothing matches this")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if album != nil {
				t.Errorf("expected nil album, got %+v", album)
			}
		})

		t.Run("API Error Status", func(t *testing.T) {
			server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			})
			defer server.Close()

			srv := newTestService(t, server)
			if _, err := srv.SearchAlbum(context.Background(), "anything"); !errors.Is(err, shared.ErrFetchFailed) {
				t.Errorf("expected ErrFetchFailed, got %v", err)
			}
		})
	})

	t.Run("Album", func(t *testing.T) {
		server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/albums/XYZ" {
				t.Errorf("expected path /albums/XYZ, got %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"id":         "XYZ",
				"name":       "Test Album",
				"popularity": 42,
				"images": []map[string]any{
					{"url": "http://art", "height": 640, "width": 640},
				},
				"external_urls": map[string]string{"spotify": "http://page"},
			})
		})
		defer server.Close()

		srv := newTestService(t, server)
		album, err := srv.Album(context.Background(), "XYZ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if album.Popularity == nil || *album.Popularity != 42 {
			t.Errorf("expected popularity 42, got %v", album.Popularity)
		}
		if len(album.Images) != 1 || album.Images[0].URL != "http://art" {
			t.Errorf("expected artwork http://art, got %+v", album.Images)
		}
		if album.ExternalURLs.Spotify != "http://page" {
			t.Errorf("expected external URL http://page, got %s", album.ExternalURLs.Spotify)
		}
	})

	t.Run("SeveralAlbums", func(t *testing.T) {
		t.Run("No IDs", func(t *testing.T) {
			server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {})
			defer server.Close()

			srv := newTestService(t, server)
			if _, err := srv.SeveralAlbums(context.Background(), nil); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("Too Many IDs", func(t *testing.T) {
			server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {})
			defer server.Close()

			ids := make([]string, 21)
			for i := range ids {
				ids[i] = fmt.Sprintf("id%d", i)
			}

			srv := newTestService(t, server)
			if _, err := srv.SeveralAlbums(context.Background(), ids); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("Batch Fetch", func(t *testing.T) {
			server := catalogServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/albums/" {
					t.Errorf("expected path /albums/, got %s", r.URL.Path)
				}
				if ids := r.URL.Query().Get("ids"); ids != "abc,def" {
					t.Errorf("expected ids abc,def, got %s", ids)
				}
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"albums": [{"id": "abc"}, {"id": "def"}]}`)
			})
			defer server.Close()

			srv := newTestService(t, server)
			albums, err := srv.SeveralAlbums(context.Background(), []string{"abc", "def"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(albums) != 2 {
				t.Fatalf("expected 2 albums, got %d", len(albums))
			}
			if albums[1].ID != "def" {
				t.Errorf("expected second album def, got %s", albums[1].ID)
			}
		})
	})
}

func TestAlbumIDFromURI(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"spotify:album:4yP0hdKOZPNshxUOjY0cZj", "4yP0hdKOZPNshxUOjY0cZj"},
		{"spotify:track:4yP0hdKOZPNshxUOjY0cZj", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := AlbumIDFromURI(tc.uri); got != tc.want {
			t.Errorf("AlbumIDFromURI(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}
