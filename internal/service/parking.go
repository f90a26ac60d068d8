package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"parking-backend/internal/model"
	"parking-backend/internal/store"
)

// ErrSpotNotAvailable is returned by CheckIn when the spot exists but is not
// in the available state. Handlers translate it into an HTTP 400.
var ErrSpotNotAvailable = errors.New("parking spot is not available")

// ErrSpotNotOccupied is returned by CheckOut when the spot exists but is not
// occupied. Handlers translate it into an HTTP 400.
var ErrSpotNotOccupied = errors.New("parking spot is not occupied")

// CreateSpotInput carries the creatable spot fields. A nil HourlyRate falls
// back to the default rate; an empty Status defaults to available.
type CreateSpotInput struct {
	SpotNumber string
	SpotType   string
	HourlyRate *float64
	Status     string
}

// UpdateSpotInput carries the editable spot fields. Nil fields are left
// untouched. Updating Status does not touch the occupancy fields; only
// CheckIn and CheckOut do that.
type UpdateSpotInput struct {
	SpotNumber *string
	SpotType   *string
	HourlyRate *float64
	Status     *string
}

// CheckInInput carries the vehicle details for a check-in.
type CheckInInput struct {
	VehicleLicense string
	DriverName     *string
	DriverPhone    *string
}

// ParkingService implements spot CRUD, the occupancy state machine and the
// dashboard aggregation on top of a Store.
type ParkingService struct {
	store store.Store
}

// NewParkingService creates a service backed by the given store.
func NewParkingService(s store.Store) *ParkingService {
	return &ParkingService{store: s}
}

// CreateSpot persists a new spot with a fresh ID. The spot number must be
// unused; store.ErrDuplicateSpotNumber is surfaced as-is.
func (s *ParkingService) CreateSpot(ctx context.Context, in CreateSpotInput) (*model.ParkingSpot, error) {
	spot := &model.ParkingSpot{
		ID:         uuid.NewString(),
		SpotNumber: in.SpotNumber,
		SpotType:   in.SpotType,
		HourlyRate: model.DefaultHourlyRate,
		Status:     model.StatusAvailable,
		CreatedAt:  time.Now().UTC(),
	}
	if in.HourlyRate != nil {
		spot.HourlyRate = *in.HourlyRate
	}
	if in.Status != "" {
		spot.Status = in.Status
	}

	if err := s.store.Insert(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

// GetSpot returns a single spot by ID.
func (s *ParkingService) GetSpot(ctx context.Context, id string) (*model.ParkingSpot, error) {
	return s.store.FindByID(ctx, id)
}

// ListSpots returns spots matching the filter, ordered by spot number.
func (s *ParkingService) ListSpots(ctx context.Context, filter store.SpotFilter) ([]model.ParkingSpot, error) {
	return s.store.FindMany(ctx, filter)
}

// UpdateSpot merges the non-nil input fields into the spot and returns the
// updated record.
func (s *ParkingService) UpdateSpot(ctx context.Context, id string, in UpdateSpotInput) (*model.ParkingSpot, error) {
	fields := map[string]any{}
	if in.SpotNumber != nil {
		fields["spot_number"] = *in.SpotNumber
	}
	if in.SpotType != nil {
		fields["spot_type"] = *in.SpotType
	}
	if in.HourlyRate != nil {
		fields["hourly_rate"] = *in.HourlyRate
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	return s.store.UpdateFields(ctx, id, fields)
}

// DeleteSpot removes a spot by ID.
func (s *ParkingService) DeleteSpot(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// CheckIn assigns a vehicle to an available spot. The transition is a single
// conditional update keyed on status=available, so two racing check-ins
// cannot both succeed.
func (s *ParkingService) CheckIn(ctx context.Context, id string, in CheckInInput) (*model.ParkingSpot, error) {
	now := time.Now().UTC()
	fields := map[string]any{
		"status":          model.StatusOccupied,
		"is_occupied":     true,
		"vehicle_license": in.VehicleLicense,
		"driver_name":     in.DriverName,
		"driver_phone":    in.DriverPhone,
		"entry_time":      now,
		"exit_time":       nil,
	}

	spot, err := s.store.UpdateFieldsIfStatus(ctx, id, model.StatusAvailable, fields)
	if errors.Is(err, store.ErrSpotNotFound) {
		return nil, s.transitionFailure(ctx, id, ErrSpotNotAvailable)
	}
	return spot, err
}

// CheckOut releases an occupied spot, clearing the vehicle association and
// stamping the exit time. The entry time is preserved.
func (s *ParkingService) CheckOut(ctx context.Context, id string) (*model.ParkingSpot, error) {
	now := time.Now().UTC()
	fields := map[string]any{
		"status":          model.StatusAvailable,
		"is_occupied":     false,
		"vehicle_license": nil,
		"driver_name":     nil,
		"driver_phone":    nil,
		"exit_time":       now,
	}

	spot, err := s.store.UpdateFieldsIfStatus(ctx, id, model.StatusOccupied, fields)
	if errors.Is(err, store.ErrSpotNotFound) {
		return nil, s.transitionFailure(ctx, id, ErrSpotNotOccupied)
	}
	return spot, err
}

// transitionFailure decides between "no such spot" and "wrong state" after a
// conditional update matched nothing.
func (s *ParkingService) transitionFailure(ctx context.Context, id string, stateErr error) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	return stateErr
}

// DashboardStats folds the per-status aggregation into the dashboard
// payload. Every status contributes to the totals; only the four known
// statuses fill a named bucket.
func (s *ParkingService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	rows, err := s.store.AggregateByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{}
	for _, row := range rows {
		stats.TotalSpots += row.Count
		stats.TotalRevenue += row.Revenue

		switch row.Status {
		case model.StatusAvailable:
			stats.AvailableSpots = row.Count
		case model.StatusOccupied:
			stats.OccupiedSpots = row.Count
		case model.StatusReserved:
			stats.ReservedSpots = row.Count
		case model.StatusMaintenance:
			stats.MaintenanceSpots = row.Count
		}
	}
	return stats, nil
}
