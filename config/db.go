package config

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Agent-cat/Midland/utils"
)

var db *mongo.Database

// ConnectDB connects to MongoDB and creates the indexes the invariants rely
// on. Fatal on failure: the service cannot run without its store.
func ConnectDB() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "midland"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		utils.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		utils.Fatal("failed to ping MongoDB", zap.Error(err))
	}

	db = client.Database(dbName)
	ensureIndexes(ctx)
	utils.Info("mongodb connected", zap.String("database", dbName))
}

// GetCollection returns a handle in the connected database.
func GetCollection(name string) *mongo.Collection {
	return db.Collection(name)
}

// CollectionName reads a collection name override from env.
func CollectionName(envKey, fallback string) string {
	if name := os.Getenv(envKey); name != "" {
		return name
	}
	return fallback
}

func ensureIndexes(ctx context.Context) {
	// The unique compound index is the real enforcer of the no-duplicate
	// invariant; the handler's pre-insert lookup only exists to return the
	// existing record with the conflict.
	properties := CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")
	_, err := db.Collection(properties).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: 1},
			{Key: "location", Value: 1},
			{Key: "address", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		utils.Warn("failed to create property uniqueness index", zap.Error(err))
	}

	views := CollectionName("MONGODB_COLLECTION_VIEWS", "property_views")
	_, err = db.Collection(views).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "propertyId", Value: 1},
			{Key: "viewedAt", Value: -1},
		},
	})
	if err != nil {
		utils.Warn("failed to create view lookup index", zap.Error(err))
	}

	users := CollectionName("MONGODB_COLLECTION_USER", "user")
	for _, field := range []string{"email", "username", "phno"} {
		_, err = db.Collection(users).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			utils.Warn("failed to create user uniqueness index",
				zap.String("field", field), zap.Error(err))
		}
	}
}
