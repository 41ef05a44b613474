// package services defines clients for the external APIs the tracker talks to
//
// Spotify (music catalog), Twitter (social metrics, pending)
package services

import (
	"context"
	"strings"
)

// Catalog defines the music catalog operations the enrichment passes need.
type Catalog interface {
	// SearchAlbum searches the catalog for the best-effort album match of a
	// free-text query. Returns nil without an error when nothing matched.
	SearchAlbum(ctx context.Context, query string) (*SpotifyAlbum, error)

	// Album retrieves full album detail by catalog identifier.
	Album(ctx context.Context, id string) (*SpotifyAlbum, error)
}

// SocialService provides engagement metrics for an artist on a social platform.
type SocialService interface {
	// TweetVolume reports how much an artist is currently being talked about.
	TweetVolume(ctx context.Context, artist string) (int, error)

	// Name returns the name of the platform (e.g., "Twitter")
	Name() string
}

const albumURIPrefix = "spotify:album:"

// AlbumIDFromURI extracts the album identifier from a catalog URI reference
// such as "spotify:album:4yP0hdKOZPNshxUOjY0cZj". Returns "" when the URI
// does not carry the album prefix.
func AlbumIDFromURI(uri string) string {
	if !strings.HasPrefix(uri, albumURIPrefix) {
		return ""
	}
	return strings.TrimPrefix(uri, albumURIPrefix)
}
