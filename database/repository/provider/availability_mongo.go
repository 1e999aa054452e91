package providerRepo

import (
	"context"
	"fmt"
	"time"

	"homehelper/database"
	"homehelper/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AvailabilityRepository defines persistence for provider weekly availability.
type AvailabilityRepository interface {
	SetWeekly(providerID string, slots []models.Availability) error
	GetWeekly(providerID string) ([]models.Availability, error)
}

type weeklyAvailability struct {
	ProviderID string                `bson:"provider_id"`
	Slots      []models.Availability `bson:"slots"`
	UpdatedAt  time.Time             `bson:"updated_at"`
}

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	repo := &MongoAvailabilityRepo{coll: database.Collection("availability")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "provider_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// SetWeekly replaces the provider's weekly availability document.
func (r *MongoAvailabilityRepo) SetWeekly(providerID string, slots []models.Availability) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := weeklyAvailability{ProviderID: providerID, Slots: slots, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"provider_id": providerID}, doc, opts); err != nil {
		return fmt.Errorf("failed to set availability for provider %s: %w", providerID, err)
	}
	return nil
}

// GetWeekly returns the provider's weekly availability, or nil when unset.
func (r *MongoAvailabilityRepo) GetWeekly(providerID string) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc weeklyAvailability
	if err := r.coll.FindOne(ctx, bson.M{"provider_id": providerID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch availability for provider %s: %w", providerID, err)
	}
	return doc.Slots, nil
}
