package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parking-backend/internal/model"
)

const queryTimeout = 5 * time.Second

// mongoStore implements the Store interface against a MongoDB collection.
// Documents are matched on the application-level "id" field.
type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed store.
func NewMongoStore(coll *mongo.Collection) Store {
	return &mongoStore{coll: coll}
}

func (s *mongoStore) FindByID(ctx context.Context, id string) (*model.ParkingSpot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var spot model.ParkingSpot
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&spot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find spot %s: %w", id, err)
	}
	return &spot, nil
}

func (s *mongoStore) FindMany(ctx context.Context, filter SpotFilter) ([]model.ParkingSpot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.SpotType != "" {
		query["spot_type"] = filter.SpotType
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"spot_number": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"vehicle_license": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "spot_number", Value: 1}})
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find spots: %w", err)
	}
	defer cursor.Close(ctx)

	spots := []model.ParkingSpot{}
	if err := cursor.All(ctx, &spots); err != nil {
		return nil, fmt.Errorf("decode spots: %w", err)
	}
	return spots, nil
}

func (s *mongoStore) Insert(ctx context.Context, spot *model.ParkingSpot) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Spot number uniqueness is enforced at creation only.
	count, err := s.coll.CountDocuments(ctx, bson.M{"spot_number": spot.SpotNumber})
	if err != nil {
		return fmt.Errorf("check spot number %q: %w", spot.SpotNumber, err)
	}
	if count > 0 {
		return ErrDuplicateSpotNumber
	}

	if _, err := s.coll.InsertOne(ctx, spot); err != nil {
		return fmt.Errorf("insert spot %q: %w", spot.SpotNumber, err)
	}
	return nil
}

func (s *mongoStore) UpdateFields(ctx context.Context, id string, fields map[string]any) (*model.ParkingSpot, error) {
	return s.updateWhere(ctx, bson.M{"id": id}, fields)
}

func (s *mongoStore) UpdateFieldsIfStatus(ctx context.Context, id, expectedStatus string, fields map[string]any) (*model.ParkingSpot, error) {
	return s.updateWhere(ctx, bson.M{"id": id, "status": expectedStatus}, fields)
}

// updateWhere runs a single conditional $set and returns the post-update
// document, so status transitions never go through a read-then-write window.
func (s *mongoStore) updateWhere(ctx context.Context, filter bson.M, fields map[string]any) (*model.ParkingSpot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if len(fields) == 0 {
		var spot model.ParkingSpot
		err := s.coll.FindOne(ctx, filter).Decode(&spot)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSpotNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("find spot: %w", err)
		}
		return &spot, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var spot model.ParkingSpot
	err := s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": bson.M(fields)}, opts).Decode(&spot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update spot: %w", err)
	}
	return &spot, nil
}

func (s *mongoStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete spot %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrSpotNotFound
	}
	return nil
}

func (s *mongoStore) AggregateByStatus(ctx context.Context) ([]StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Revenue is hourly_rate per occupied spot, a snapshot rather than
	// time-based accrual.
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", model.StatusOccupied}},
				"$hourly_rate",
				0,
			}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate spots by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []StatusCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode status aggregation: %w", err)
	}
	return rows, nil
}
