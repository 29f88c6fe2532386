// Package tmdb looks up canonical movie titles on The Movie Database.
package tmdb

import "strconv"

// Movie is the subset of TMDB movie metadata used for trailer matching.
type Movie struct {
	ID            int64  `json:"id"`
	IMDBID        string `json:"imdb_id,omitempty"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title,omitempty"`
	Overview      string `json:"overview,omitempty"`
	ReleaseDate   string `json:"release_date"` // "2024-03-01"
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Titles returns the title and, when different, the original title.
func (m *Movie) Titles() []string {
	if m.OriginalTitle == "" || m.OriginalTitle == m.Title {
		return []string{m.Title}
	}
	return []string{m.Title, m.OriginalTitle}
}

type findResponse struct {
	MovieResults []Movie `json:"movie_results"`
}
