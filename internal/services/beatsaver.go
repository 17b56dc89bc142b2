// BeatSaver [Catalog] implementation
//
// Response types based on the BeatSaver map detail endpoints.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"saberlist/internal/models"
	"saberlist/internal/shared"
)

const (
	defaultBSBaseURL      = "https://beatsaver.com/api"
	defaultBSCoverBaseURL = "https://beatsaver.com"
	defaultBSRateLimit    = 8.0
)

// mapDifficulties mirrors metadata.difficulties in the detail response.
// Pointer fields so a missing flag is distinguishable from false.
type mapDifficulties struct {
	Easy       *bool `json:"easy"`
	Normal     *bool `json:"normal"`
	Hard       *bool `json:"hard"`
	Expert     *bool `json:"expert"`
	ExpertPlus *bool `json:"expertPlus"`
}

// mapMetadata mirrors the metadata object in the detail response.
type mapMetadata struct {
	SongName     *string          `json:"songName"`
	Difficulties *mapDifficulties `json:"difficulties"`
}

// mapDetail mirrors the catalog's map detail response. Every required field
// is pointer-typed: the upstream service returns structurally incomplete
// records for unknown or removed content.
type mapDetail struct {
	Hash     *string      `json:"hash"`
	Key      *string      `json:"key"`
	CoverURL *string      `json:"coverURL"`
	Metadata *mapMetadata `json:"metadata"`
}

// BeatSaverService implements the Catalog interface for the BeatSaver API.
//
// Requests are rate limited and successful resolutions populate the injected
// [CoverCache] with the song's absolute cover URL.
type BeatSaverService struct {
	baseURL      string
	coverBaseURL string
	httpClient   *http.Client
	limiter      *rate.Limiter
	covers       CoverCache
}

// NewBeatSaverService creates a new BeatSaver catalog client.
// The cover cache is optional; pass nil to disable cache population.
func NewBeatSaverService(cfg shared.CatalogConfig, covers CoverCache) *BeatSaverService {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBSBaseURL
	}

	coverBaseURL := cfg.CoverBaseURL
	if coverBaseURL == "" {
		coverBaseURL = defaultBSCoverBaseURL
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultBSRateLimit
	}

	return &BeatSaverService{
		baseURL:      baseURL,
		coverBaseURL: coverBaseURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout()},
		limiter:      rate.NewLimiter(rate.Limit(limit), 1),
		covers:       covers,
	}
}

// Name returns the catalog name.
func (b *BeatSaverService) Name() string {
	return "BeatSaver"
}

// MapByKey resolves a song by its catalog key via GET /maps/detail/{key}.
func (b *BeatSaverService) MapByKey(ctx context.Context, key string) (*models.Song, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty map key", shared.ErrInvalidArgument)
	}
	return b.fetchSong(ctx, fmt.Sprintf("/maps/detail/%s", url.PathEscape(key)))
}

// MapByHash resolves a song by its content hash via GET /maps/by-hash/{hash}.
func (b *BeatSaverService) MapByHash(ctx context.Context, hash string) (*models.Song, error) {
	if hash == "" {
		return nil, fmt.Errorf("%w: empty map hash", shared.ErrInvalidArgument)
	}
	return b.fetchSong(ctx, fmt.Sprintf("/maps/by-hash/%s", url.PathEscape(hash)))
}

// fetchSong performs one detail request and validates the response into a Song.
func (b *BeatSaverService) fetchSong(ctx context.Context, endpoint string) (*models.Song, error) {
	var detail mapDetail
	if err := b.doRequest(ctx, endpoint, &detail); err != nil {
		return nil, err
	}

	song, err := b.songFromDetail(detail)
	if err != nil {
		return nil, err
	}

	if b.covers != nil {
		if _, ok := b.covers.Lookup(song.Hash); !ok {
			b.covers.Put(song.Hash, song.CoverURL)
		}
	}

	return song, nil
}

// doRequest performs a rate-limited GET against the catalog.
//
// A 404 is a resolution failure, any other fault is a transport failure;
// both are recoverable and neither leaves partial state behind.
func (b *BeatSaverService) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}

	apiURL := b.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrSongNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}

	return nil
}

// songFromDetail validates a detail response into a Song. Any missing
// required field means the record is treated as absent, never as a partially
// populated song.
func (b *BeatSaverService) songFromDetail(detail mapDetail) (*models.Song, error) {
	if detail.Hash == nil || detail.Key == nil || detail.CoverURL == nil ||
		detail.Metadata == nil || detail.Metadata.SongName == nil || detail.Metadata.Difficulties == nil {
		return nil, shared.ErrSongNotFound
	}

	diffs := detail.Metadata.Difficulties
	if diffs.Easy == nil || diffs.Normal == nil || diffs.Hard == nil || diffs.Expert == nil || diffs.ExpertPlus == nil {
		return nil, shared.ErrSongNotFound
	}

	return &models.Song{
		Hash:     *detail.Hash,
		Key:      *detail.Key,
		Name:     *detail.Metadata.SongName,
		CoverURL: b.coverBaseURL + *detail.CoverURL,
		Difficulties: models.SongDifficulties{
			Easy:       *diffs.Easy,
			Normal:     *diffs.Normal,
			Hard:       *diffs.Hard,
			Expert:     *diffs.Expert,
			ExpertPlus: *diffs.ExpertPlus,
		},
	}, nil
}

// SetTimeout overrides the HTTP client timeout. Used by tests.
func (b *BeatSaverService) SetTimeout(d time.Duration) {
	b.httpClient.Timeout = d
}
