package trailers

//go:generate mockgen -source=downloader.go -destination=mocks/downloader.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/fetch"
	"github.com/vmunix/catchup/internal/library"
)

const (
	defaultTrailerExt = ".mp4"
	sniffLen          = 512
)

// StreamResolver turns a channel media id into a playable stream.
type StreamResolver interface {
	MediaInfo(ctx context.Context, id string) (*channel.MediaSource, error)
}

// ChannelDownloader stores the trailer a Source picks for each movie.
type ChannelDownloader struct {
	source   Source
	resolver StreamResolver
	fetcher  fetch.Fetcher
	log      *slog.Logger
}

var _ Downloader = (*ChannelDownloader)(nil)

// NewChannelDownloader creates a downloader over source. Candidates are resolved
// to streams through resolver before anything is fetched.
func NewChannelDownloader(source Source, resolver StreamResolver, fetcher fetch.Fetcher, log *slog.Logger) *ChannelDownloader {
	if log == nil {
		log = slog.Default()
	}
	return &ChannelDownloader{
		source:   source,
		resolver: resolver,
		fetcher:  fetcher,
		log:      log.With("component", "trailer-downloader"),
	}
}

// TrailerPath is where a trailer for movie is stored: "<video base>-trailer<ext>".
func TrailerPath(movie library.Movie, ext string) string {
	base := strings.TrimSuffix(movie.VideoPath, filepath.Ext(movie.VideoPath))
	return base + "-trailer" + ext
}

// Download finds and saves a trailer. Existing files are never overwritten.
func (d *ChannelDownloader) Download(ctx context.Context, movie library.Movie) (Download, error) {
	cand, err := d.source.Find(ctx, movie)
	if err != nil {
		return Download{}, err
	}

	stream, err := d.resolver.MediaInfo(ctx, cand.URL)
	if err != nil {
		return Download{SourceURL: cand.URL}, fmt.Errorf("resolve trailer stream: %w", err)
	}

	result := Download{SourceURL: stream.URL, Path: TrailerPath(movie, extFromURL(stream.URL))}
	if _, err := os.Stat(result.Path); err == nil {
		return result, fmt.Errorf("%s: %w", result.Path, ErrTrailerExists)
	}

	d.log.Debug("downloading trailer", "movie", movie.String(), "item", cand.URL, "url", stream.URL, "score", cand.Score)

	body, err := d.fetcher.Get(ctx, stream.URL)
	if err != nil {
		return result, fmt.Errorf("fetch trailer: %w", err)
	}
	defer body.Close()

	video, err := videoReader(body)
	if err != nil {
		return result, fmt.Errorf("%s: %w", stream.URL, err)
	}
	if err := writeAtomic(result.Path, video); err != nil {
		return result, err
	}
	return result, nil
}

// videoReader sniffs the start of r and rejects empty or text bodies.
// The returned reader yields the sniffed bytes followed by the rest of r.
func videoReader(r io.Reader) (io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read trailer: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("empty body: %w", ErrNotVideo)
	}
	head = head[:n]
	if ct := http.DetectContentType(head); strings.HasPrefix(ct, "text/") {
		return nil, fmt.Errorf("got %s: %w", ct, ErrNotVideo)
	}
	return io.MultiReader(bytes.NewReader(head), r), nil
}

// writeAtomic streams r to a temp file beside dest and renames it into place.
func writeAtomic(dest string, r io.Reader) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".trailer-*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write trailer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if _, err := os.Stat(dest); err == nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%s: %w", dest, ErrTrailerExists)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename trailer: %w", err)
	}
	return nil
}

func extFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return defaultTrailerExt
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if library.IsVideoFile("x" + ext) {
		return ext
	}
	return defaultTrailerExt
}
