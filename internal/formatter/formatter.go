// package formatter persists release collections as pretty-printed JSON or as the tabular trends CSV
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsingh/trendtracker/internal/models"
	"github.com/jsingh/trendtracker/internal/shared"
)

// Placeholder for the social metric column until the integration lands.
const metricPlaceholder = "N/A"

// WriteJSON persists a collection to path as pretty-printed JSON with a
// two-space indent.
func WriteJSON(collection models.ReleaseCollection, path string) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	return nil
}

// ReadJSON reads a collection previously written by [WriteJSON].
func ReadJSON(path string) (models.ReleaseCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var collection models.ReleaseCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	return collection, nil
}

// WriteCSV persists a collection to path in the tabular trends format: one
// row per artist with the artist's titles joined by ", " and a placeholder
// social metric.
func WriteCSV(collection models.ReleaseCollection, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	defer f.Close()

	return WriteArtistRows(f, models.ArtistIndex(collection))
}

// WriteArtistRows writes the trends CSV rows for an artist-to-titles index.
func WriteArtistRows(w io.Writer, index map[string][]string) error {
	writer := csv.NewWriter(w)

	headers := []string{"Music Artist", "Recent Tracks", "Twitter Volume"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}

	for _, artist := range models.Artists(index) {
		record := []string{artist, strings.Join(index[artist], ", "), metricPlaceholder}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrWriteFailed, err)
	}
	return nil
}
