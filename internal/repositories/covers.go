package repositories

import (
	"database/sql"
	"fmt"
)

// CoverRepository persists cover URLs to the covers table so cached entries
// survive process restarts.
type CoverRepository struct {
	db *sql.DB
}

// NewCoverRepository creates a new CoverRepository with the given database connection
func NewCoverRepository(db *sql.DB) *CoverRepository {
	return &CoverRepository{db: db}
}

// Get retrieves the cover URL for a hash.
func (r *CoverRepository) Get(hash string) (string, error) {
	var url string
	err := r.db.QueryRow("SELECT url FROM covers WHERE hash = ?", hash).Scan(&url)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("cover not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query cover: %w", err)
	}
	return url, nil
}

// Upsert stores the cover URL for a hash, overwriting any previous value.
func (r *CoverRepository) Upsert(hash, url string) error {
	query := `
		INSERT INTO covers (hash, url) VALUES (?, ?)
		ON CONFLICT(hash) DO UPDATE SET url = excluded.url
	`
	if _, err := r.db.Exec(query, hash, url); err != nil {
		return fmt.Errorf("failed to upsert cover: %w", err)
	}
	return nil
}

// All returns every persisted cover entry.
func (r *CoverRepository) All() (map[string]string, error) {
	rows, err := r.db.Query("SELECT hash, url FROM covers")
	if err != nil {
		return nil, fmt.Errorf("failed to query covers: %w", err)
	}
	defer rows.Close()

	covers := make(map[string]string)
	for rows.Next() {
		var hash, url string
		if err := rows.Scan(&hash, &url); err != nil {
			return nil, fmt.Errorf("failed to scan cover: %w", err)
		}
		covers[hash] = url
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return covers, nil
}
