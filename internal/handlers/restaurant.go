package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restaurant-manager/internal/models"
)

// liveFilter matches documents that are not soft-deleted. The $ne form also
// matches documents written before the flag existed.
func liveFilter() bson.M {
	return bson.M{"isDeleted": bson.M{"$ne": true}}
}

func liveRestaurantByID(id primitive.ObjectID) bson.M {
	filter := liveFilter()
	filter["_id"] = id
	return filter
}

func liveRestaurantsByOwner(owner primitive.ObjectID) bson.M {
	filter := liveFilter()
	filter["owner"] = owner
	return filter
}

func liveOwnedRestaurant(id, owner primitive.ObjectID) bson.M {
	filter := liveRestaurantByID(id)
	filter["owner"] = owner
	return filter
}

// loadOwnedRestaurant loads a live restaurant and verifies the caller owns
// it, reporting errRestaurantNotFound / errRestaurantForbidden separately.
func loadOwnedRestaurant(ctx context.Context, db *mongo.Database, id, caller primitive.ObjectID) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := db.Collection("restaurants").FindOne(ctx, liveRestaurantByID(id)).Decode(&restaurant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Restaurant{}, errRestaurantNotFound
		}
		return models.Restaurant{}, err
	}
	if err := checkRestaurantAccess(restaurant, caller); err != nil {
		return models.Restaurant{}, err
	}
	return restaurant, nil
}

// CreateRestaurant inserts a restaurant owned by the caller. Any
// authenticated user may create; there is no authorization failure here.
func CreateRestaurant(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "RESTAURANT")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "RESTAURANT", "unauthorized")
			return
		}

		var input RestaurantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, "RESTAURANT", "invalid body")
			return
		}
		if err := validateNewRestaurant(input); err != nil {
			respondWithError(c, http.StatusBadRequest, "RESTAURANT", err.Error())
			return
		}

		now := time.Now()
		restaurant := models.Restaurant{
			Name:         input.Name,
			Description:  input.Description,
			CuisineType:  input.CuisineType,
			Address:      *input.Address,
			Contact:      *input.Contact,
			OpeningHours: input.OpeningHours,
			Owner:        caller,
			IsDeleted:    false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("restaurants").InsertOne(ctx, restaurant)
		if err != nil {
			log.Println("[RESTAURANT] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, "RESTAURANT", "db error")
			return
		}

		restaurant.ID, _ = res.InsertedID.(primitive.ObjectID)
		log.Println("[RESTAURANT] [INFO] created:", restaurant.ID.Hex())
		respondWithData(c, http.StatusCreated, restaurant)
	}
}

// GetRestaurants lists the caller's live restaurants.
func GetRestaurants(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "RESTAURANT")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "RESTAURANT", "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("restaurants").Find(ctx, liveRestaurantsByOwner(caller))
		if err != nil {
			log.Println("[RESTAURANT] [ERROR] list failed:", err)
			respondWithError(c, http.StatusInternalServerError, "RESTAURANT", "db error")
			return
		}
		defer cursor.Close(ctx)

		restaurants := []models.Restaurant{}
		if err := cursor.All(ctx, &restaurants); err != nil {
			log.Println("[RESTAURANT] [ERROR] list decode failed:", err)
			respondWithError(c, http.StatusInternalServerError, "RESTAURANT", "db error")
			return
		}

		respondWithData(c, http.StatusOK, restaurants)
	}
}

// GetRestaurant returns one of the caller's restaurants. A soft-deleted or
// unknown id is a 404 for everyone; a live restaurant with another owner is
// a 403.
func GetRestaurant(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "RESTAURANT")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "RESTAURANT", "unauthorized")
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "RESTAURANT", "restaurant not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		restaurant, err := loadOwnedRestaurant(ctx, db, id, caller)
		if err != nil {
			respondRestaurantAccessError(c, err)
			return
		}

		respondWithData(c, http.StatusOK, restaurant)
	}
}

// UpdateRestaurant applies a partial update to one of the caller's
// restaurants. Absent or empty fields are left unchanged.
func UpdateRestaurant(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "RESTAURANT")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "RESTAURANT", "unauthorized")
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "RESTAURANT", "restaurant not found")
			return
		}

		var input RestaurantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondWithError(c, http.StatusBadRequest, "RESTAURANT", "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		restaurant, err := loadOwnedRestaurant(ctx, db, id, caller)
		if err != nil {
			respondRestaurantAccessError(c, err)
			return
		}

		if err := applyRestaurantUpdate(&restaurant, input); err != nil {
			respondWithError(c, http.StatusBadRequest, "RESTAURANT", err.Error())
			return
		}
		restaurant.UpdatedAt = time.Now()

		_, err = db.Collection("restaurants").ReplaceOne(ctx, liveOwnedRestaurant(id, caller), restaurant)
		if err != nil {
			log.Println("[RESTAURANT] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "RESTAURANT", "db error")
			return
		}

		log.Println("[RESTAURANT] [INFO] updated:", id.Hex())
		respondWithData(c, http.StatusOK, restaurant)
	}
}

// DeleteRestaurant soft-deletes a restaurant with one atomic check-and-set
// on existence, liveness and ownership, so a second delete (or a delete
// racing another) sees no matching document and gets a 404. Menu items are
// not cascaded.
func DeleteRestaurant(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "RESTAURANT")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "RESTAURANT", "unauthorized")
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "RESTAURANT", "restaurant not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		var restaurant models.Restaurant
		err = db.Collection("restaurants").FindOneAndUpdate(
			ctx,
			liveOwnedRestaurant(id, caller),
			bson.M{"$set": bson.M{
				"isDeleted": true,
				"deletedAt": now,
				"updatedAt": now,
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&restaurant)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "RESTAURANT", "restaurant not found")
				return
			}
			log.Println("[RESTAURANT] [ERROR] soft delete failed:", err)
			respondWithError(c, http.StatusInternalServerError, "RESTAURANT", "db error")
			return
		}

		log.Println("[RESTAURANT] [INFO] soft deleted:", id.Hex())
		respondWithData(c, http.StatusOK, restaurant)
	}
}

func respondRestaurantAccessError(c *gin.Context, err error) {
	switch err {
	case errRestaurantNotFound:
		respondWithError(c, http.StatusNotFound, "RESTAURANT", "restaurant not found")
	case errRestaurantForbidden:
		respondWithError(c, http.StatusForbidden, "RESTAURANT", "not authorized for this restaurant")
	default:
		log.Println("[RESTAURANT] [ERROR] lookup failed:", err)
		respondWithError(c, http.StatusInternalServerError, "RESTAURANT", "db error")
	}
}
