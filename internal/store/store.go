package store

import (
	"context"

	"parking-backend/internal/model"
)

// SpotFilter narrows FindMany results. Zero-value fields are ignored; set
// fields combine as a conjunction. Search matches case-insensitive
// substrings of spot_number or vehicle_license.
type SpotFilter struct {
	Status   string
	SpotType string
	Search   string
}

// StatusCount is one row of the per-status aggregation. Revenue is the sum
// of hourly rates for spots in that status, counted only when the status is
// "occupied" (everything else contributes 0).
type StatusCount struct {
	Status  string  `bson:"_id"`
	Count   int     `bson:"count"`
	Revenue float64 `bson:"revenue"`
}

// Store defines the persistence operations against the spot collection.
type Store interface {
	// FindByID returns the spot with the given ID, or ErrSpotNotFound.
	FindByID(ctx context.Context, id string) (*model.ParkingSpot, error)

	// FindMany returns all spots matching the filter, ordered by
	// spot_number ascending.
	FindMany(ctx context.Context, filter SpotFilter) ([]model.ParkingSpot, error)

	// Insert persists a new spot. Returns ErrDuplicateSpotNumber if the
	// spot number is already taken.
	Insert(ctx context.Context, spot *model.ParkingSpot) error

	// UpdateFields merges the supplied fields into the stored document and
	// returns the updated spot. Keys absent from fields are left untouched;
	// a key present with a nil value clears that field.
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*model.ParkingSpot, error)

	// UpdateFieldsIfStatus is UpdateFields with a status precondition: the
	// merge happens only if the stored status equals expectedStatus, as a
	// single conditional update. ErrSpotNotFound covers both a missing ID
	// and a status mismatch; callers that need to tell them apart follow up
	// with FindByID.
	UpdateFieldsIfStatus(ctx context.Context, id, expectedStatus string, fields map[string]any) (*model.ParkingSpot, error)

	// Delete removes the spot, or returns ErrSpotNotFound.
	Delete(ctx context.Context, id string) error

	// AggregateByStatus returns one StatusCount per distinct status value
	// present in the collection.
	AggregateByStatus(ctx context.Context) ([]StatusCount, error)
}
