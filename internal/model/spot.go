package model

import "time"

// Spot status values. Status is stored as an open string; these four are the
// ones the dashboard knows how to bucket.
const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusReserved    = "reserved"
	StatusMaintenance = "maintenance"
)

// Spot type values (informational, not enforced).
const (
	TypeRegular  = "regular"
	TypeHandicap = "handicap"
	TypeVIP      = "vip"
	TypeElectric = "electric"
)

// DefaultHourlyRate applies when a spot is created without a rate.
const DefaultHourlyRate = 5.0

// ParkingSpot represents a single parking space record. Documents are keyed
// by the application-generated ID, not the storage-native primary key.
// Vehicle and driver fields are non-null only while the spot is occupied.
type ParkingSpot struct {
	ID             string     `bson:"id" json:"id"`
	SpotNumber     string     `bson:"spot_number" json:"spot_number"`
	SpotType       string     `bson:"spot_type" json:"spot_type"`
	IsOccupied     bool       `bson:"is_occupied" json:"is_occupied"`
	VehicleLicense *string    `bson:"vehicle_license" json:"vehicle_license"`
	DriverName     *string    `bson:"driver_name" json:"driver_name"`
	DriverPhone    *string    `bson:"driver_phone" json:"driver_phone"`
	EntryTime      *time.Time `bson:"entry_time" json:"entry_time"`
	ExitTime       *time.Time `bson:"exit_time" json:"exit_time"`
	HourlyRate     float64    `bson:"hourly_rate" json:"hourly_rate"`
	ReservedBy     *string    `bson:"reserved_by" json:"reserved_by"`
	Status         string     `bson:"status" json:"status"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
}

// DashboardStats aggregates counts and an approximate revenue figure over
// all spots. Revenue is the sum of hourly rates of currently occupied spots,
// a snapshot proxy rather than time-based accrual.
type DashboardStats struct {
	TotalSpots       int     `json:"total_spots"`
	AvailableSpots   int     `json:"available_spots"`
	OccupiedSpots    int     `json:"occupied_spots"`
	ReservedSpots    int     `json:"reserved_spots"`
	MaintenanceSpots int     `json:"maintenance_spots"`
	TotalRevenue     float64 `json:"total_revenue"`
}
