// package services defines interface Catalog for resolving map identifiers
// against an external song catalog over HTTP.
package services

import (
	"context"

	"saberlist/internal/models"
)

// Catalog defines the interface for song catalog providers that resolve an
// opaque map identifier into validated song metadata.
type Catalog interface {
	// MapByKey resolves a song by its catalog key.
	// Returns shared.ErrSongNotFound when the catalog has no complete record for the key.
	MapByKey(ctx context.Context, key string) (*models.Song, error)

	// MapByHash resolves a song by its stable content hash.
	MapByHash(ctx context.Context, hash string) (*models.Song, error)

	// Name returns the name of the catalog (e.g., "BeatSaver")
	Name() string
}

// CoverCache is the process-wide hash → cover URL mapping consulted before
// any network call and populated opportunistically as songs resolve.
// Implementations must be safe for concurrent use.
type CoverCache interface {
	Lookup(hash string) (string, bool)
	Put(hash, url string)
}
