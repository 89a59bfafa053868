package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"khidma/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetProviderDayBusy sets the derived busy flag on a provider day.
func (r *MongoScheduleRepo) SetProviderDayBusy(ctx context.Context, providerDayID string, busy bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.providerDayColl.UpdateOne(ctx,
		bson.M{"id": providerDayID},
		bson.M{"$set": bson.M{"isBusy": busy, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("error setting busy flag on provider day %s: %w", providerDayID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("provider day %s not found", providerDayID)
	}
	return nil
}

// SetProviderDayClosed upserts the provider-day row and sets its manual
// closure flag. Used by the provider-facing closure endpoint.
func (r *MongoScheduleRepo) SetProviderDayClosed(ctx context.Context, providerID string, date time.Time, closed bool) (*models.ProviderDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "date": date}
	update := bson.M{
		"$set": bson.M{"isClosed": closed, "updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"id":                 uuid.New().String(),
			"providerId":         providerID,
			"date":               date,
			"isBusy":             false,
			"totalRequestsCount": 0,
			"createdAt":          time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var day models.ProviderDay
	if err := r.providerDayColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&day); err != nil {
		return nil, fmt.Errorf("error setting closed flag on provider day %s/%s: %w", providerID, date.Format("2006-01-02"), err)
	}
	return &day, nil
}

// UpsertServiceDay sets the derived closure flag for a service on a
// provider day, creating the row when absent. The propagator recomputes
// every service of the provider through this call.
func (r *MongoScheduleRepo) UpsertServiceDay(ctx context.Context, serviceID, providerDayID string, closed bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"serviceId": serviceID, "providerDayId": providerDayID}
	update := bson.M{
		"$set": bson.M{"isClosed": closed},
		"$setOnInsert": bson.M{
			"id":            uuid.New().String(),
			"serviceId":     serviceID,
			"providerDayId": providerDayID,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.serviceDayColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting service day %s/%s: %w", serviceID, providerDayID, err)
	}
	return nil
}
