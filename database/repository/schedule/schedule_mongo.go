package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"khidma/database"
	"khidma/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	client          *mongo.Client
	providerDayColl *mongo.Collection
	workerDayColl   *mongo.Collection
	serviceDayColl  *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() *MongoScheduleRepo {
	db := database.DB()
	repo := &MongoScheduleRepo{
		client:          database.MongoClient,
		providerDayColl: db.Collection("provider_days"),
		workerDayColl:   db.Collection("provider_day_workers"),
		serviceDayColl:  db.Collection("provider_day_services"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create schedule indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the unique indexes backing the atomic upserts.
// The natural keys must be unique or concurrent lazy creation could
// materialize duplicate rows.
func (r *MongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.providerDayColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return err
	}
	if _, err := r.workerDayColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workerId", Value: 1}, {Key: "providerDayId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerDayId", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := r.serviceDayColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "serviceId", Value: 1}, {Key: "providerDayId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerDayId", Value: 1}}},
	})
	return err
}

// GetProviderDay returns the row for (providerID, date), or nil when absent.
func (r *MongoScheduleRepo) GetProviderDay(ctx context.Context, providerID string, date time.Time) (*models.ProviderDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.ProviderDay
	err := r.providerDayColl.FindOne(ctx, bson.M{"providerId": providerID, "date": date}).Decode(&day)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching provider day %s/%s: %w", providerID, date.Format("2006-01-02"), err)
	}
	return &day, nil
}

// ListProviderDays returns the materialized rows with from <= date < to.
func (r *MongoScheduleRepo) ListProviderDays(ctx context.Context, providerID string, from, to time.Time) ([]models.ProviderDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.providerDayColl.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching provider days for %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var days []models.ProviderDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("error decoding provider days: %w", err)
	}
	return days, nil
}

// ListWorkerDays returns all ledger rows belonging to the given provider days.
func (r *MongoScheduleRepo) ListWorkerDays(ctx context.Context, providerDayIDs []string) ([]models.ProviderDayWorker, error) {
	if len(providerDayIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.workerDayColl.Find(ctx, bson.M{"providerDayId": bson.M{"$in": providerDayIDs}})
	if err != nil {
		return nil, fmt.Errorf("error fetching worker days: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.ProviderDayWorker
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding worker days: %w", err)
	}
	return rows, nil
}

// ListServiceDays returns the service's closure rows for the given provider days.
func (r *MongoScheduleRepo) ListServiceDays(ctx context.Context, serviceID string, providerDayIDs []string) ([]models.ProviderDayService, error) {
	if len(providerDayIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"serviceId": serviceID, "providerDayId": bson.M{"$in": providerDayIDs}}
	cursor, err := r.serviceDayColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching service days for %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var rows []models.ProviderDayService
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding service days: %w", err)
	}
	return rows, nil
}
