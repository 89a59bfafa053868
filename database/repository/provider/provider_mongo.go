package providerRepo

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

// ErrNotFound is returned when a provider or service does not exist.
var ErrNotFound = errors.New("not found")

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	providerColl *mongo.Collection
	workerColl   *mongo.Collection
	serviceColl  *mongo.Collection
}

// NewMongoProviderRepo constructs a new instance of MongoProviderRepo.
func NewMongoProviderRepo() *MongoProviderRepo {
	db := database.DB()
	repo := &MongoProviderRepo{
		providerColl: db.Collection("providers"),
		workerColl:   db.Collection("workers"),
		serviceColl:  db.Collection("services"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create provider indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.providerColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := r.workerColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "city", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := r.serviceColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}}},
	})
	return err
}

// GetByID retrieves a provider document by ID.
func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := r.providerColl.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching provider with id %s: %w", id, err)
	}
	return &provider, nil
}

// GetServiceByID retrieves a service document by ID.
func (r *MongoProviderRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := r.serviceColl.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service with id %s: %w", id, err)
	}
	return &service, nil
}

// ListServices retrieves all services of a provider.
func (r *MongoProviderRepo) ListServices(ctx context.Context, providerID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.serviceColl.Find(ctx, bson.M{"providerId": providerID})
	if err != nil {
		return nil, fmt.Errorf("error fetching services for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

// ListWorkers retrieves all workers of a provider ordered by worker ID.
func (r *MongoProviderRepo) ListWorkers(ctx context.Context, providerID string) ([]models.Worker, error) {
	return r.findWorkers(ctx, bson.M{"providerId": providerID})
}

// ListWorkersByCity retrieves a provider's workers in one city ordered by worker ID.
func (r *MongoProviderRepo) ListWorkersByCity(ctx context.Context, providerID string, city models.CityCode) ([]models.Worker, error) {
	return r.findWorkers(ctx, bson.M{"providerId": providerID, "city": city})
}

func (r *MongoProviderRepo) findWorkers(ctx context.Context, filter bson.M) ([]models.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.workerColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []models.Worker
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("error decoding workers: %w", err)
	}
	return workers, nil
}
