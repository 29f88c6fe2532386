// Package library discovers movies on disk and the local trailers they already have.
package library

import (
	"fmt"
	"strconv"
)

// Provider id keys.
const (
	ProviderTMDB = "tmdb"
	ProviderIMDB = "imdb"
)

// Movie is a movie directory found under a library root.
type Movie struct {
	Title         string
	Year          int
	Dir           string
	VideoPath     string
	ProviderIDs   map[string]string
	LocalTrailers []string
}

// HasLocalTrailer reports whether at least one trailer file sits next to the movie.
func (m Movie) HasLocalTrailer() bool {
	return len(m.LocalTrailers) > 0
}

// TMDBID returns the TMDB id, or 0 when unknown.
func (m Movie) TMDBID() int64 {
	id, err := strconv.ParseInt(m.ProviderIDs[ProviderTMDB], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// IMDBID returns the IMDB id ("tt0133093"), or "".
func (m Movie) IMDBID() string {
	return m.ProviderIDs[ProviderIMDB]
}

func (m Movie) String() string {
	if m.Year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
	return m.Title
}
