package content

// Sentinel errors for content discovery and descriptor parsing. These enable
// consistent classification of per-item failures across build stages.

import "errors"

var (
	// ErrMalformedMetadata indicates a descriptor is missing a required field
	// or has a field of the wrong shape.
	ErrMalformedMetadata = errors.New("malformed metadata descriptor")

	// ErrNoAuthors indicates a post descriptor declared an empty author list.
	ErrNoAuthors = errors.New("post has no authors")

	// ErrDuplicateDirectory indicates two content items of the same kind
	// declared the same directory. Directories are the identity of a
	// content item, so a collision fails discovery.
	ErrDuplicateDirectory = errors.New("duplicate content directory")

	// ErrSourceScanFailed indicates listing the source tree failed.
	ErrSourceScanFailed = errors.New("content source scan failed")
)
