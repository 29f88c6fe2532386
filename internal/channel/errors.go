package channel

import "errors"

var (
	// ErrInvalidNavigationID is returned for malformed or unrecognized folder ids.
	ErrInvalidNavigationID = errors.New("invalid navigation id")
	// ErrUnsupportedImageType is returned for image kinds the channel does not ship.
	ErrUnsupportedImageType = errors.New("unsupported image type")
	// ErrNotImplemented is returned by capabilities the channel does not offer.
	ErrNotImplemented = errors.New("not implemented")
)
