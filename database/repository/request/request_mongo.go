package requestRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"khidma/database"
	"khidma/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a request does not exist.
var ErrNotFound = errors.New("request not found")

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	requestColl  *mongo.Collection
	locationColl *mongo.Collection
}

// NewMongoRequestRepo constructs a new instance of MongoRequestRepo.
func NewMongoRequestRepo() *MongoRequestRepo {
	db := database.DB()
	repo := &MongoRequestRepo{
		requestColl:  db.Collection("requests"),
		locationColl: db.Collection("locations"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create request indexes: %v\n", err)
	}
	return repo
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.requestColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := r.locationColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "fullAddress", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "geo", Value: "2dsphere"}}},
	})
	return err
}

// GetOrCreateLocation upserts a location keyed on its full address.
func (r *MongoRequestRepo) GetOrCreateLocation(ctx context.Context, loc models.Location) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"fullAddress": loc.FullAddress}
	update := bson.M{"$setOnInsert": bson.M{
		"id":          uuid.New().String(),
		"city":        loc.City,
		"fullAddress": loc.FullAddress,
		"miniAddress": loc.MiniAddress,
		"lat":         loc.Lat,
		"lng":         loc.Lng,
		"geo": models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{loc.Lng, loc.Lat},
		},
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.Location
	if err := r.locationColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("error upserting location: %w", err)
	}
	return &stored, nil
}

// Create inserts a new request document.
func (r *MongoRequestRepo) Create(ctx context.Context, req *models.Request) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.requestColl.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its ID, with the location embedded.
func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.Request
	if err := r.requestColl.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching request %s: %w", id, err)
	}

	var loc models.Location
	if err := r.locationColl.FindOne(ctx, bson.M{"id": req.LocationID}).Decode(&loc); err == nil {
		req.Location = &loc
	}
	return &req, nil
}
