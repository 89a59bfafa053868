package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"khidma/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrCreateProviderDay upserts the provider-day row keyed on
// (providerId, date). $setOnInsert plus the unique index make the lazy
// creation safe under concurrent callers: both see the same row.
func (r *MongoScheduleRepo) GetOrCreateProviderDay(ctx context.Context, providerID string, date time.Time) (*models.ProviderDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date}
	update := bson.M{"$setOnInsert": bson.M{
		"id":                 uuid.New().String(),
		"providerId":         providerID,
		"date":               date,
		"isClosed":           false,
		"isBusy":             false,
		"totalRequestsCount": 0,
		"createdAt":          time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var day models.ProviderDay
	if err := r.providerDayColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&day); err != nil {
		return nil, fmt.Errorf("error upserting provider day %s/%s: %w", providerID, date.Format("2006-01-02"), err)
	}
	return &day, nil
}

// GetOrCreateWorkerDay upserts the ledger row keyed on
// (workerId, providerDayId) with zero assignments and the fixed
// per-worker daily capacity.
func (r *MongoScheduleRepo) GetOrCreateWorkerDay(ctx context.Context, workerID, providerDayID string) (*models.ProviderDayWorker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"workerId": workerID, "providerDayId": providerDayID}
	update := bson.M{"$setOnInsert": bson.M{
		"id":                   uuid.New().String(),
		"workerId":             workerID,
		"providerDayId":        providerDayID,
		"nbOfAssignedRequests": 0,
		"capacity":             models.WorkerDayCapacity,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var row models.ProviderDayWorker
	if err := r.workerDayColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&row); err != nil {
		return nil, fmt.Errorf("error upserting worker day %s/%s: %w", workerID, providerDayID, err)
	}
	return &row, nil
}

// IncrementAssignment adds one assignment to the worker-day row. The
// capacity guard lives in the filter, so two racing allocators can never
// push the counter past capacity: the loser matches no document and gets
// ErrCapacityExhausted.
func (r *MongoScheduleRepo) IncrementAssignment(ctx context.Context, workerDayID string) (*models.ProviderDayWorker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":    workerDayID,
		"$expr": bson.M{"$lt": bson.A{"$nbOfAssignedRequests", "$capacity"}},
	}
	update := bson.M{"$inc": bson.M{"nbOfAssignedRequests": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var row models.ProviderDayWorker
	err := r.workerDayColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCapacityExhausted
	}
	if err != nil {
		return nil, fmt.Errorf("error incrementing assignment on worker day %s: %w", workerDayID, err)
	}
	return &row, nil
}

// IncrementRequestCount adds one to the day's monotonic request counter.
func (r *MongoScheduleRepo) IncrementRequestCount(ctx context.Context, providerDayID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.providerDayColl.UpdateOne(ctx,
		bson.M{"id": providerDayID},
		bson.M{
			"$inc": bson.M{"totalRequestsCount": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("error incrementing request count on provider day %s: %w", providerDayID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider day %s not found", providerDayID)
	}
	return nil
}
