package trailers

import "errors"

var (
	// ErrNoTrailer indicates no configured source had a confident match for the movie.
	ErrNoTrailer = errors.New("no trailer found")

	// ErrTrailerExists indicates the destination file is already present.
	ErrTrailerExists = errors.New("trailer already exists")

	// ErrNotVideo indicates the fetched body is a text document, such as a player page.
	ErrNotVideo = errors.New("response is not a video")
)
