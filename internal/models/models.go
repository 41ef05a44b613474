// package models defines the data model for scraped releases and their catalog enrichment
package models

import "sort"

// ReleaseEntry identifies one scraped review, either an album or a track.
type ReleaseEntry struct {
	Title      string      `json:"title"`
	Artists    []string    `json:"artists"`
	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Enrichment carries the catalog fields populated progressively by the
// enrichment passes. TweetVolume belongs to the social metrics integration,
// which is not available yet, so it is always absent.
type Enrichment struct {
	ID          string `json:"id,omitempty"`
	Popularity  *int   `json:"popularity,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
	CatalogURL  string `json:"catalog_url,omitempty"`
	TweetVolume *int   `json:"tweet_volume,omitempty"`
}

// Enriched returns the entry's enrichment record, allocating it on first use.
func (e *ReleaseEntry) Enriched() *Enrichment {
	if e.Enrichment == nil {
		e.Enrichment = &Enrichment{}
	}
	return e.Enrichment
}

// ReleaseCollection maps a release title to its entry. Keys are unique by
// construction: a duplicate title overwrites the earlier occurrence.
type ReleaseCollection map[string]*ReleaseEntry

// Titles returns the collection's keys in sorted order.
func (c ReleaseCollection) Titles() []string {
	titles := make([]string, 0, len(c))
	for title := range c {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// ArtistIndex inverts a collection into a mapping from artist name to the
// sorted titles credited to that artist.
func ArtistIndex(c ReleaseCollection) map[string][]string {
	index := make(map[string][]string)
	for _, title := range c.Titles() {
		for _, artist := range c[title].Artists {
			index[artist] = append(index[artist], title)
		}
	}
	return index
}

// Artists returns the sorted artist names of an index produced by [ArtistIndex].
func Artists(index map[string][]string) []string {
	artists := make([]string, 0, len(index))
	for artist := range index {
		artists = append(artists, artist)
	}
	sort.Strings(artists)
	return artists
}
