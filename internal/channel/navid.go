package channel

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind selects the rule set used for a child listing.
type Kind string

const (
	KindPrograms Kind = "programs"
	KindEpisodes Kind = "episodes"
)

const navDelimiter = "_"

// Valid reports whether k is a known listing kind.
func (k Kind) Valid() bool {
	return k == KindPrograms || k == KindEpisodes
}

// NavID is a decoded navigation identifier: which page to fetch and how to read it.
type NavID struct {
	Kind Kind
	URL  string
}

// NewNavID builds a validated navigation identifier.
func NewNavID(kind Kind, sourceURL string) (NavID, error) {
	if !kind.Valid() {
		return NavID{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidNavigationID, kind)
	}
	if !isAbsoluteURL(sourceURL) {
		return NavID{}, fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidNavigationID, sourceURL)
	}
	return NavID{Kind: kind, URL: sourceURL}, nil
}

// ParseNavID decodes "{kind}_{url}". Only the first underscore is significant,
// so URLs may contain underscores of their own.
func ParseNavID(s string) (NavID, error) {
	kind, rest, ok := strings.Cut(s, navDelimiter)
	if !ok {
		return NavID{}, fmt.Errorf("%w: missing delimiter in %q", ErrInvalidNavigationID, s)
	}
	return NewNavID(Kind(kind), rest)
}

// String encodes the identifier for use as a folder id.
func (n NavID) String() string {
	return string(n.Kind) + navDelimiter + n.URL
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
