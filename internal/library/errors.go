package library

import "errors"

var (
	// ErrNoRoots indicates the scanner was built without any library roots.
	ErrNoRoots = errors.New("no library roots configured")

	// ErrInvalidNFO indicates a movie.nfo that could not be decoded.
	ErrInvalidNFO = errors.New("invalid nfo")
)

// ScanError wraps a failure to walk a library root.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return "scan " + e.Root + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
