// Package channel exposes the catch-up catalog as a browsable channel.
package channel

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"strings"

	"github.com/vmunix/catchup/internal/listing"
)

//go:embed images/*.png
var images embed.FS

// ImageType names a packaged channel image.
type ImageType string

const (
	ImageThumb    ImageType = "thumb"
	ImageBackdrop ImageType = "backdrop"
)

// ParseImageType accepts image kinds case-insensitively.
func ParseImageType(s string) ImageType {
	return ImageType(strings.ToLower(strings.TrimSpace(s)))
}

// Image is a packaged image resource. The caller closes Body.
type Image struct {
	Format string
	Body   io.ReadCloser
}

// Features describes what the channel supports.
type Features struct {
	CanSearch               bool                  `json:"can_search"`
	MaxPageSize             int                   `json:"max_page_size"`
	ContentTypes            []listing.ContentType `json:"content_types"`
	MediaTypes              []listing.MediaType   `json:"media_types"`
	SupportsSortOrderToggle bool                  `json:"supports_sort_order_toggle"`
	DefaultSortFields       []string              `json:"default_sort_fields"`
}

// Page selects a window of a listing. A zero Limit means the maximum page size.
type Page struct {
	StartIndex int
	Limit      int
}

// Channel is the host-facing facade over a Lister.
type Channel struct {
	settings Settings
	lister   Lister
}

// NewChannel creates a channel facade.
func NewChannel(settings Settings, lister Lister) *Channel {
	if settings.MaxPageSize <= 0 {
		settings.MaxPageSize = DefaultMaxPageSize
	}
	return &Channel{settings: settings, lister: lister}
}

func (c *Channel) Name() string        { return c.settings.Name }
func (c *Channel) HomePageURL() string { return c.settings.HomeURL }
func (c *Channel) DataVersion() string { return c.settings.Cache.DataVersion }

// IsEnabledFor reports whether the channel is visible to a user. It is visible to everyone.
func (c *Channel) IsEnabledFor(userID string) bool {
	return true
}

// Features returns the channel capabilities.
func (c *Channel) Features() Features {
	return Features{
		CanSearch:               false,
		MaxPageSize:             c.settings.MaxPageSize,
		ContentTypes:            []listing.ContentType{listing.ContentClip},
		MediaTypes:              []listing.MediaType{listing.MediaVideo},
		SupportsSortOrderToggle: true,
		DefaultSortFields:       []string{"date_created", "name", "runtime"},
	}
}

// ListChildren returns one page of the listing for folderID.
// TotalRecordCount is always the size of the whole listing.
func (c *Channel) ListChildren(ctx context.Context, folderID string, page Page) (listing.Result, error) {
	res, err := c.lister.Listing(ctx, folderID)
	if err != nil {
		return listing.Result{}, err
	}
	return paginate(res, page, c.settings.MaxPageSize), nil
}

func paginate(res listing.Result, page Page, maxSize int) listing.Result {
	total := len(res.Items)
	limit := page.Limit
	if limit <= 0 || limit > maxSize {
		limit = maxSize
	}
	start := max(page.StartIndex, 0)
	start = min(start, total)
	end := min(start+limit, total)

	res.Items = res.Items[start:end:end]
	res.TotalRecordCount = total
	return res
}

// SupportedImages lists the image kinds Image can serve.
func (c *Channel) SupportedImages() []ImageType {
	return []ImageType{ImageThumb, ImageBackdrop}
}

// Image opens a packaged image.
func (c *Channel) Image(kind ImageType) (*Image, error) {
	switch kind {
	case ImageThumb, ImageBackdrop:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImageType, kind)
	}
	data, err := images.ReadFile("images/" + string(kind) + ".png")
	if err != nil {
		return nil, fmt.Errorf("read %s image: %w", kind, err)
	}
	return &Image{Format: "png", Body: io.NopCloser(bytes.NewReader(data))}, nil
}

// MediaSource is a playable stream for a media item.
type MediaSource struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Container string `json:"container,omitempty"`
}

// MediaInfo resolves the playable stream behind a media item id.
// Media ids are player page URLs and stream resolution is not offered, so it always
// returns ErrNotImplemented.
func (c *Channel) MediaInfo(ctx context.Context, id string) (*MediaSource, error) {
	return nil, fmt.Errorf("media info for %q: %w", id, ErrNotImplemented)
}

// AllMedia would list every item in the catalog. Bulk listing is not offered.
func (c *Channel) AllMedia(ctx context.Context) (listing.Result, error) {
	return listing.Result{}, fmt.Errorf("all media: %w", ErrNotImplemented)
}

// Search is not offered; Features reports CanSearch false.
func (c *Channel) Search(ctx context.Context, term string) (listing.Result, error) {
	return listing.Result{}, fmt.Errorf("search: %w", ErrNotImplemented)
}
