package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"parking-backend/internal/model"
)

// memoryStore is a map-backed Store. It backs the test suite and lets the
// service run without a MongoDB instance (data does not survive restarts).
type memoryStore struct {
	mu    sync.RWMutex
	spots map[string]model.ParkingSpot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() Store {
	return &memoryStore{spots: make(map[string]model.ParkingSpot)}
}

func (s *memoryStore) FindByID(_ context.Context, id string) (*model.ParkingSpot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spot, ok := s.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	return &spot, nil
}

func (s *memoryStore) FindMany(_ context.Context, filter SpotFilter) ([]model.ParkingSpot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spots := []model.ParkingSpot{}
	for _, spot := range s.spots {
		if matches(spot, filter) {
			spots = append(spots, spot)
		}
	}
	sort.Slice(spots, func(i, j int) bool {
		return spots[i].SpotNumber < spots[j].SpotNumber
	})
	return spots, nil
}

func matches(spot model.ParkingSpot, filter SpotFilter) bool {
	if filter.Status != "" && spot.Status != filter.Status {
		return false
	}
	if filter.SpotType != "" && spot.SpotType != filter.SpotType {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if strings.Contains(strings.ToLower(spot.SpotNumber), needle) {
			return true
		}
		if spot.VehicleLicense != nil && strings.Contains(strings.ToLower(*spot.VehicleLicense), needle) {
			return true
		}
		return false
	}
	return true
}

func (s *memoryStore) Insert(_ context.Context, spot *model.ParkingSpot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.spots {
		if existing.SpotNumber == spot.SpotNumber {
			return ErrDuplicateSpotNumber
		}
	}
	s.spots[spot.ID] = *spot
	return nil
}

func (s *memoryStore) UpdateFields(_ context.Context, id string, fields map[string]any) (*model.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spot, ok := s.spots[id]
	if !ok {
		return nil, ErrSpotNotFound
	}
	applyFields(&spot, fields)
	s.spots[id] = spot
	return &spot, nil
}

func (s *memoryStore) UpdateFieldsIfStatus(_ context.Context, id, expectedStatus string, fields map[string]any) (*model.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spot, ok := s.spots[id]
	if !ok || spot.Status != expectedStatus {
		return nil, ErrSpotNotFound
	}
	applyFields(&spot, fields)
	s.spots[id] = spot
	return &spot, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.spots[id]; !ok {
		return ErrSpotNotFound
	}
	delete(s.spots, id)
	return nil
}

func (s *memoryStore) AggregateByStatus(_ context.Context) ([]StatusCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := make(map[string]*StatusCount)
	for _, spot := range s.spots {
		row, ok := byStatus[spot.Status]
		if !ok {
			row = &StatusCount{Status: spot.Status}
			byStatus[spot.Status] = row
		}
		row.Count++
		if spot.Status == model.StatusOccupied {
			row.Revenue += spot.HourlyRate
		}
	}

	rows := make([]StatusCount, 0, len(byStatus))
	for _, row := range byStatus {
		rows = append(rows, *row)
	}
	return rows, nil
}

// applyFields merges the supplied document fields into the spot. Keys use
// the persisted (bson) field names so both store implementations accept the
// same update maps.
func applyFields(spot *model.ParkingSpot, fields map[string]any) {
	for key, value := range fields {
		switch key {
		case "spot_number":
			spot.SpotNumber = value.(string)
		case "spot_type":
			spot.SpotType = value.(string)
		case "status":
			spot.Status = value.(string)
		case "is_occupied":
			spot.IsOccupied = value.(bool)
		case "hourly_rate":
			spot.HourlyRate = value.(float64)
		case "vehicle_license":
			spot.VehicleLicense = asStringPtr(value)
		case "driver_name":
			spot.DriverName = asStringPtr(value)
		case "driver_phone":
			spot.DriverPhone = asStringPtr(value)
		case "reserved_by":
			spot.ReservedBy = asStringPtr(value)
		case "entry_time":
			spot.EntryTime = asTimePtr(value)
		case "exit_time":
			spot.ExitTime = asTimePtr(value)
		}
	}
}

func asStringPtr(value any) *string {
	switch v := value.(type) {
	case string:
		return &v
	case *string:
		return v
	}
	return nil
}

func asTimePtr(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	}
	return nil
}
