package tasks

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jsingh/trendtracker/internal/models"
	"github.com/jsingh/trendtracker/internal/services"
	"github.com/jsingh/trendtracker/internal/shared"
)

// Image height of the artwork variant extracted from album detail.
const artworkHeight = 640

// Enricher runs the catalog enrichment passes over a release collection.
//
// Each pass returns a new collection carrying forward only the entries that
// passed, making drop-on-failure an explicit filter. The field passes share
// one fetched album detail per entry through an in-run memo, so an album is
// fetched at most once per enrichment run.
type Enricher struct {
	catalog services.Catalog
	logger  *log.Logger
	details map[string]*services.SpotifyAlbum
}

// NewEnricher creates an Enricher backed by the given catalog.
func NewEnricher(catalog services.Catalog, logger *log.Logger) *Enricher {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Enricher{
		catalog: catalog,
		logger:  logger,
		details: make(map[string]*services.SpotifyAlbum),
	}
}

// Identify resolves a catalog identifier for each entry by searching for
// title plus first artist. An entry whose search fails or matches nothing
// keeps an unset identifier; the field passes drop it later.
func (e *Enricher) Identify(ctx context.Context, collection models.ReleaseCollection) models.ReleaseCollection {
	out := make(models.ReleaseCollection, len(collection))
	for _, title := range collection.Titles() {
		entry := collection[title]
		out[title] = entry

		query := entry.Title
		if len(entry.Artists) > 0 {
			query += " " + entry.Artists[0]
		}

		album, err := e.catalog.SearchAlbum(ctx, query)
		if err != nil {
			e.logger.Warn("catalog search failed", "title", title, "error", err)
			continue
		}
		if album == nil {
			e.logger.Debug("no catalog match", "title", title)
			continue
		}

		id := album.ID
		if id == "" {
			id = services.AlbumIDFromURI(album.URI)
		}
		if id != "" {
			entry.Enriched().ID = id
		}
	}
	return out
}

// Popularity copies the 0-100 popularity score out of album detail. Entries
// without a resolved identifier or without a usable popularity field are
// dropped rather than kept as partial records.
func (e *Enricher) Popularity(ctx context.Context, collection models.ReleaseCollection) models.ReleaseCollection {
	out := make(models.ReleaseCollection, len(collection))
	for _, title := range collection.Titles() {
		entry := collection[title]

		album, ok := e.albumDetail(ctx, entry)
		if !ok {
			e.logger.Warn("dropping unresolved entry", "title", title)
			continue
		}
		if album.Popularity == nil || *album.Popularity < 0 || *album.Popularity > 100 {
			e.logger.Warn("dropping entry without popularity", "title", title)
			continue
		}

		popularity := *album.Popularity
		entry.Enriched().Popularity = &popularity
		out[title] = entry
	}
	return out
}

// Artwork extracts the cover-art URL from the album image variant whose
// height matches [artworkHeight]. No such image drops the entry.
func (e *Enricher) Artwork(ctx context.Context, collection models.ReleaseCollection) models.ReleaseCollection {
	out := make(models.ReleaseCollection, len(collection))
	for _, title := range collection.Titles() {
		entry := collection[title]

		album, ok := e.albumDetail(ctx, entry)
		if !ok {
			e.logger.Warn("dropping unresolved entry", "title", title)
			continue
		}

		artworkURL := ""
		for _, image := range album.Images {
			if image.Height == artworkHeight && image.URL != "" {
				artworkURL = image.URL
				break
			}
		}
		if artworkURL == "" {
			e.logger.Warn("dropping entry without artwork", "title", title)
			continue
		}

		entry.Enriched().ArtworkURL = artworkURL
		out[title] = entry
	}
	return out
}

// CanonicalURL extracts the album's public catalog page URL. An absent
// external URL drops the entry.
func (e *Enricher) CanonicalURL(ctx context.Context, collection models.ReleaseCollection) models.ReleaseCollection {
	out := make(models.ReleaseCollection, len(collection))
	for _, title := range collection.Titles() {
		entry := collection[title]

		album, ok := e.albumDetail(ctx, entry)
		if !ok {
			e.logger.Warn("dropping unresolved entry", "title", title)
			continue
		}
		if album.ExternalURLs.Spotify == "" {
			e.logger.Warn("dropping entry without catalog URL", "title", title)
			continue
		}

		entry.Enriched().CatalogURL = album.ExternalURLs.Spotify
		out[title] = entry
	}
	return out
}

// Run executes the passes in order: identify, popularity, artwork, canonical URL.
func (e *Enricher) Run(ctx context.Context, collection models.ReleaseCollection) models.ReleaseCollection {
	collection = e.Identify(ctx, collection)
	collection = e.Popularity(ctx, collection)
	collection = e.Artwork(ctx, collection)
	return e.CanonicalURL(ctx, collection)
}

// albumDetail fetches (or recalls) the full album detail behind an entry.
// The ok result is false for entries whose identifier was never resolved,
// carries an error payload, or whose fetch failed.
func (e *Enricher) albumDetail(ctx context.Context, entry *models.ReleaseEntry) (*services.SpotifyAlbum, bool) {
	if entry.Enrichment == nil || entry.Enrichment.ID == "" {
		return nil, false
	}
	// An identifier holding a brace means an error payload leaked into the
	// field upstream; treat it as unresolved.
	if strings.ContainsRune(entry.Enrichment.ID, '{') {
		return nil, false
	}

	if album, ok := e.details[entry.Enrichment.ID]; ok {
		return album, true
	}

	album, err := e.catalog.Album(ctx, entry.Enrichment.ID)
	if err != nil || album == nil {
		if err != nil {
			e.logger.Warn("album detail fetch failed", "id", entry.Enrichment.ID, "error", err)
		}
		return nil, false
	}

	e.details[entry.Enrichment.ID] = album
	return album, true
}
