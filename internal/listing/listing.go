// Package listing turns scraped pages into ordered channel listings.
package listing

import "time"

// Kind distinguishes navigable folders from playable media.
type Kind string

const (
	KindFolder Kind = "folder"
	KindMedia  Kind = "media"
)

// ContentType describes what a media item is.
type ContentType string

const (
	ContentEpisode ContentType = "episode"
	ContentClip    ContentType = "clip"
	ContentTrailer ContentType = "trailer"
)

// MediaType is the playback type of a media item.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// Item is a single entry in a listing.
// Folder items carry a navigation id; media items carry an absolute media URL.
type Item struct {
	Name          string      `json:"name"`
	ID            string      `json:"id"`
	Kind          Kind        `json:"kind"`
	ImageURL      string      `json:"image_url,omitempty"`
	Overview      string      `json:"overview,omitempty"`
	SeasonNumber  int         `json:"season_number,omitempty"`
	EpisodeNumber int         `json:"episode_number,omitempty"`
	ContentType   ContentType `json:"content_type,omitempty"`
	MediaType     MediaType   `json:"media_type,omitempty"`
}

// Result is a listing annotated with its cache hints.
type Result struct {
	Items            []Item        `json:"items"`
	TotalRecordCount int           `json:"total_record_count"`
	CacheTTL         time.Duration `json:"cache_ttl"`
	DataVersion      string        `json:"data_version"`
}

// CachePolicy stamps results with a validity window and a data version.
// Callers that store results must treat entries older than TTL, or tagged
// with a different DataVersion, as invalid.
type CachePolicy struct {
	TTL         time.Duration
	DataVersion string
}

// Stamp wraps items in a Result. It holds no state.
func (p CachePolicy) Stamp(items []Item) Result {
	if items == nil {
		items = []Item{}
	}
	return Result{
		Items:            items,
		TotalRecordCount: len(items),
		CacheTTL:         p.TTL,
		DataVersion:      p.DataVersion,
	}
}
