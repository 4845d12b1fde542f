package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureRestaurantIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("restaurants").Indexes()

	// Owner listing always filters on isDeleted as well, so index both.
	ownerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner", Value: 1},
			{Key: "isDeleted", Value: 1},
		},
		Options: options.Index().SetName("owner_live_index"),
	}

	log.Println("EnsureRestaurantIndexes: creating owner_live_index")
	_, err := indexes.CreateOne(ctx, ownerIndex)
	if err != nil {
		log.Println("EnsureRestaurantIndexes: owner index error:", err)
		return err
	}
	log.Println("EnsureRestaurantIndexes: owner_live_index created")
	return nil
}

func EnsureMenuItemIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("menu_items").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "restaurant", Value: 1}},
			Options: options.Index().SetName("restaurant_index"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category_index"),
		},
	}

	log.Println("EnsureMenuItemIndexes: creating restaurant and category indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureMenuItemIndexes: index error:", err)
		return err
	}
	log.Println("EnsureMenuItemIndexes: indexes created")
	return nil
}
