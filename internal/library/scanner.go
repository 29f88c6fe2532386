package library

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/vmunix/catchup/pkg/titlematch"
)

var videoExts = map[string]bool{
	".mkv": true, ".mp4": true, ".m4v": true, ".avi": true,
	".mov": true, ".wmv": true, ".ts": true, ".webm": true,
}

// Matches "{tmdb-550}", "{imdb-tt0137523}", "[tmdbid-550]" and "[imdbid-tt0137523]".
var providerTag = regexp.MustCompile(`(?i)[\{\[](tmdb|imdb)(?:id)?[-=]([a-z0-9]+)[\}\]]`)

const trailersDir = "trailers"

// IsVideoFile reports whether path has a known video extension.
func IsVideoFile(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// IsTrailerFile reports whether a file name follows the local trailer naming
// convention: "trailer.mkv" or "<anything>-trailer.mkv".
func IsTrailerFile(name string) bool {
	if !IsVideoFile(name) {
		return false
	}
	base := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	return base == "trailer" ||
		strings.HasSuffix(base, "-trailer") ||
		strings.HasSuffix(base, ".trailer") ||
		strings.HasSuffix(base, "_trailer")
}

// Scanner walks library roots for movie directories.
type Scanner struct {
	roots []string
	log   *slog.Logger
}

// NewScanner creates a scanner over roots.
func NewScanner(roots []string, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{roots: roots, log: log.With("component", "library")}
}

// Movies returns every movie under the roots, sorted by directory.
// A movie is a directory holding a non-trailer, non-sample video file; its
// subdirectories are not searched for further movies.
func (s *Scanner) Movies(ctx context.Context) ([]Movie, error) {
	if len(s.roots) == 0 {
		return nil, ErrNoRoots
	}

	var movies []Movie
	for _, root := range s.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if path == root {
					return walkErr
				}
				s.log.Warn("skipping unreadable path", "path", path, "error", walkErr)
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && (strings.EqualFold(d.Name(), trailersDir) || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}

			movie, ok, err := s.readMovieDir(path)
			if err != nil {
				s.log.Warn("skipping movie directory", "path", path, "error", err)
				return nil
			}
			if !ok {
				return nil
			}
			movies = append(movies, movie)
			if path == root {
				return nil
			}
			return filepath.SkipDir
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, &ScanError{Root: root, Err: err}
		}
	}

	slices.SortFunc(movies, func(a, b Movie) int { return strings.Compare(a.Dir, b.Dir) })
	return movies, nil
}

// readMovieDir inspects one directory. ok is false when it holds no feature video.
func (s *Scanner) readMovieDir(dir string) (Movie, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Movie{}, false, err
	}

	var video string
	var videoSize int64
	var trailers []string
	for _, e := range entries {
		if e.IsDir() {
			if strings.EqualFold(e.Name(), trailersDir) {
				trailers = append(trailers, trailerDirFiles(filepath.Join(dir, e.Name()))...)
			}
			continue
		}
		name := e.Name()
		if !IsVideoFile(name) {
			continue
		}
		if IsTrailerFile(name) {
			trailers = append(trailers, filepath.Join(dir, name))
			continue
		}
		if strings.Contains(strings.ToLower(name), "sample") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if video == "" || info.Size() > videoSize {
			video, videoSize = filepath.Join(dir, name), info.Size()
		}
	}
	if video == "" {
		return Movie{}, false, nil
	}

	movie := movieFromDirName(filepath.Base(dir))
	movie.Dir = dir
	movie.VideoPath = video
	movie.LocalTrailers = trailers

	nfoPath := filepath.Join(dir, "movie.nfo")
	if _, err := os.Stat(nfoPath); err != nil {
		nfoPath = strings.TrimSuffix(video, filepath.Ext(video)) + ".nfo"
	}
	if info, err := readNFO(nfoPath); err == nil {
		mergeNFO(&movie, info)
	} else if !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("ignoring nfo", "path", nfoPath, "error", err)
	}
	return movie, true, nil
}

func trailerDirFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && IsVideoFile(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}

// movieFromDirName reads "Title (Year) {tmdb-123}" style folder names.
func movieFromDirName(name string) Movie {
	ids := map[string]string{}
	for _, m := range providerTag.FindAllStringSubmatch(name, -1) {
		setProviderID(ids, strings.ToLower(m[1]), m[2])
	}
	clean := strings.Join(strings.Fields(providerTag.ReplaceAllString(name, "")), " ")
	title, year := titlematch.SplitYear(clean)
	return Movie{Title: title, Year: year, ProviderIDs: ids}
}

// mergeNFO fills gaps from the nfo. Folder tags win over nfo ids.
func mergeNFO(m *Movie, info nfoInfo) {
	if info.Title != "" {
		m.Title = info.Title
	}
	if m.Year == 0 {
		m.Year = info.Year
	}
	for k, v := range info.ProviderIDs {
		setProviderID(m.ProviderIDs, k, v)
	}
}
