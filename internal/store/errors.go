// Sentinel errors shared by the store implementations. Handlers translate
// ErrSpotNotFound into an HTTP 404 and ErrDuplicateSpotNumber into a 400.
package store

import "errors"

// ErrSpotNotFound is returned when no spot matches the given ID (or, for
// conditional updates, when the status precondition fails).
var ErrSpotNotFound = errors.New("parking spot not found")

// ErrDuplicateSpotNumber is returned by Insert when another spot already
// uses the requested spot number.
var ErrDuplicateSpotNumber = errors.New("spot number already exists")
