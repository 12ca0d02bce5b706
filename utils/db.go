package utils

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DatabaseName is the mongo database holding all storefront collections.
const DatabaseName = "tiara"

// ConnectDB connects to MongoDB using MONGO_URI and verifies the
// connection with a ping.
func ConnectDB() *mongo.Client {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB: ", err)
	}

	log.Println("Connected to MongoDB")
	return client
}

// NextSequence returns the next store-assigned integer identifier for
// the named entity, backed by an atomic $inc on the counters collection.
func NextSequence(ctx context.Context, db *mongo.Database, name string) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// EnsureIndexes creates the unique indexes the auth flows rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("admin_users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// SeedAdminUser upserts the admin-panel account from ADMIN_USERNAME and
// ADMIN_PASSWORD. Existing accounts are left untouched, so a rotated
// password in the environment does not overwrite a live one.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
	}

	admins := db.Collection("admin_users")
	count, err := admins.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	id, err := NextSequence(ctx, db, "admin_users")
	if err != nil {
		return err
	}
	_, err = admins.InsertOne(ctx, bson.M{
		"_id":      id,
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	log.Println("Admin user seeded")
	return nil
}
