package trailers

//go:generate mockgen -source=source.go -destination=mocks/source.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/library"
	"github.com/vmunix/catchup/internal/listing"
	"github.com/vmunix/catchup/internal/tmdb"
	"github.com/vmunix/catchup/pkg/titlematch"
)

// Candidate is a trailer chosen for a movie.
type Candidate struct {
	Name       string
	URL        string
	Score      float64
	Confidence titlematch.Confidence
}

// Source finds a trailer for a movie.
type Source interface {
	Find(ctx context.Context, movie library.Movie) (Candidate, error)
}

// MetadataLookup resolves canonical titles from provider ids.
type MetadataLookup interface {
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
	FindByIMDB(ctx context.Context, imdbID string) (*tmdb.Movie, error)
}

// ChannelSource picks trailers out of channel listings by title.
type ChannelSource struct {
	lister        channel.Lister
	folders       []string
	meta          MetadataLookup
	minConfidence titlematch.Confidence
	log           *slog.Logger
}

// NewChannelSource searches the given folder ids through lister. meta may be nil.
func NewChannelSource(lister channel.Lister, folders []string, meta MetadataLookup, minConfidence titlematch.Confidence, log *slog.Logger) *ChannelSource {
	if log == nil {
		log = slog.Default()
	}
	return &ChannelSource{
		lister:        lister,
		folders:       folders,
		meta:          meta,
		minConfidence: max(minConfidence, titlematch.ConfidenceLow),
		log:           log.With("component", "trailer-source"),
	}
}

// Find returns the best matching media item across all trailer folders.
// Items whose name carries a year different from the movie's are ignored.
func (s *ChannelSource) Find(ctx context.Context, movie library.Movie) (Candidate, error) {
	titles, year := s.titlesFor(ctx, movie)

	items, err := s.mediaItems(ctx)
	if err != nil {
		return Candidate{}, err
	}

	names := make([]string, len(items))
	for i, item := range items {
		title, y := titlematch.SplitYear(titlematch.StripTrailerSuffix(item.Name))
		if year > 0 && y > 0 && y != year {
			continue
		}
		names[i] = title
	}

	best := titlematch.Result{Index: -1}
	for _, title := range titles {
		if r := titlematch.Match(title, names); r.Score > best.Score && r.Index >= 0 {
			best = r
		}
	}
	if best.Index < 0 || best.Confidence < s.minConfidence {
		return Candidate{}, fmt.Errorf("%s: %w", movie.String(), ErrNoTrailer)
	}

	item := items[best.Index]
	return Candidate{
		Name:       item.Name,
		URL:        item.ID,
		Score:      best.Score,
		Confidence: best.Confidence,
	}, nil
}

func (s *ChannelSource) titlesFor(ctx context.Context, movie library.Movie) ([]string, int) {
	titles := []string{movie.Title}
	year := movie.Year
	if s.meta == nil {
		return titles, year
	}

	var m *tmdb.Movie
	var err error
	switch {
	case movie.TMDBID() > 0:
		m, err = s.meta.GetMovie(ctx, movie.TMDBID())
	case movie.IMDBID() != "":
		m, err = s.meta.FindByIMDB(ctx, movie.IMDBID())
	default:
		return titles, year
	}
	if err != nil {
		s.log.Debug("metadata lookup failed", "movie", movie.String(), "error", err)
		return titles, year
	}

	canonical := m.Titles()
	if !slices.Contains(canonical, movie.Title) {
		canonical = append(canonical, movie.Title)
	}
	if year == 0 {
		year = m.Year()
	}
	return canonical, year
}

// mediaItems lists every configured folder. A failing folder is skipped unless
// the context is done.
func (s *ChannelSource) mediaItems(ctx context.Context) ([]listing.Item, error) {
	var items []listing.Item
	for _, folder := range s.folders {
		res, err := s.lister.Listing(ctx, folder)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil, err
			}
			s.log.Warn("trailer folder unavailable", "folder", folder, "error", err)
			continue
		}
		for _, item := range res.Items {
			if item.Kind == listing.KindMedia {
				items = append(items, item)
			}
		}
	}
	return items, nil
}
