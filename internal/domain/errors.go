package domain

import "errors"

// ErrIncompleteCatalog is returned when a catalog is constructed with a
// missing mode/class entry or an empty fallback. Lookup is total only
// because construction enforces completeness up front.
var ErrIncompleteCatalog = errors.New("catalog is missing an image entry")
