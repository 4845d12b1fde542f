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

	"restaurant-manager/internal/models"
)

// requireMenuOwnership checks that the path restaurant is a live document
// owned by the caller. Absence, soft deletion and foreign ownership all
// collapse into one not-found answer so the check leaks nothing about other
// owners' restaurants.
func requireMenuOwnership(ctx context.Context, db *mongo.Database, restaurantID, caller primitive.ObjectID) error {
	err := db.Collection("restaurants").FindOne(ctx, liveOwnedRestaurant(restaurantID, caller)).Err()
	if err == mongo.ErrNoDocuments {
		return errRestaurantNotFound
	}
	return err
}

// CreateMenuItem adds an item to one of the caller's restaurants. The
// ownership check runs before the form is parsed, so a rejected caller
// never gets a file written to the upload store.
func CreateMenuItem(db *mongo.Database, uploads *UploadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MENU")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "MENU", "unauthorized")
			return
		}

		restaurantID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "restaurant not found or unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := requireMenuOwnership(ctx, db, restaurantID, caller); err != nil {
			respondMenuOwnershipError(c, err)
			return
		}

		input, err := parseMenuItemRequest(c, uploads)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "MENU", err.Error())
			return
		}
		if err := validateNewMenuItem(input); err != nil {
			respondWithError(c, http.StatusBadRequest, "MENU", err.Error())
			return
		}

		image := models.DefaultMenuItemImage
		if input.ImageSet {
			image = input.ImagePath
		}

		now := time.Now()
		item := models.MenuItem{
			Name:         input.Name,
			Description:  input.Description,
			Price:        input.Price,
			Image:        image,
			Category:     input.Category,
			IsVegetarian: input.IsVegetarianSet && input.IsVegetarian,
			Restaurant:   restaurantID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("menu_items").InsertOne(ctx, item)
		if err != nil {
			log.Println("[MENU] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
			return
		}

		item.ID, _ = res.InsertedID.(primitive.ObjectID)
		log.Println("[MENU] [INFO] created:", item.ID.Hex())
		respondWithData(c, http.StatusCreated, item)
	}
}

// GetMenuItems lists a restaurant's menu. Publicly readable, no ownership
// check, and not filtered by the parent's soft-delete state.
func GetMenuItems(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MENU")

		restaurantID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "restaurant not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("menu_items").Find(ctx, bson.M{"restaurant": restaurantID})
		if err != nil {
			log.Println("[MENU] [ERROR] list failed:", err)
			respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
			return
		}
		defer cursor.Close(ctx)

		items := []models.MenuItem{}
		if err := cursor.All(ctx, &items); err != nil {
			log.Println("[MENU] [ERROR] list decode failed:", err)
			respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
			return
		}

		respondWithData(c, http.StatusOK, items)
	}
}

// GetMenuItem returns one item, scoped to the path restaurant: an item id
// that exists under a different restaurant is a 404.
func GetMenuItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MENU")

		restaurantID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "menu item not found")
			return
		}
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "menu item not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var item models.MenuItem
		err = db.Collection("menu_items").FindOne(ctx, bson.M{
			"_id":        itemID,
			"restaurant": restaurantID,
		}).Decode(&item)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "MENU", "menu item not found")
				return
			}
			log.Println("[MENU] [ERROR] get failed:", err)
			respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
			return
		}

		respondWithData(c, http.StatusOK, item)
	}
}

// UpdateMenuItem applies a partial update, swapping the stored image when a
// new one was uploaded. The record is written with the new reference first;
// only then is the old asset removed, best-effort, so a failed delete can
// never cost the new reference.
func UpdateMenuItem(db *mongo.Database, uploads *UploadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MENU")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "MENU", "unauthorized")
			return
		}

		restaurantID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "restaurant not found or unauthorized")
			return
		}
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "menu item not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := requireMenuOwnership(ctx, db, restaurantID, caller); err != nil {
			respondMenuOwnershipError(c, err)
			return
		}

		var item models.MenuItem
		err = db.Collection("menu_items").FindOne(ctx, bson.M{
			"_id":        itemID,
			"restaurant": restaurantID,
		}).Decode(&item)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "MENU", "menu item not found")
				return
			}
			log.Println("[MENU] [ERROR] load failed:", err)
			respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
			return
		}

		input, err := parseMenuItemRequest(c, uploads)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, "MENU", err.Error())
			return
		}

		if err := applyMenuItemUpdate(&item, input); err != nil {
			respondWithError(c, http.StatusBadRequest, "MENU", err.Error())
			return
		}

		previousImage := item.Image
		if input.ImageSet {
			item.Image = input.ImagePath
		}
		item.UpdatedAt = time.Now()

		_, err = db.Collection("menu_items").ReplaceOne(ctx, bson.M{
			"_id":        itemID,
			"restaurant": restaurantID,
		}, item)
		if err != nil {
			log.Println("[MENU] [ERROR] update failed:", err)
			respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
			return
		}

		if input.ImageSet {
			if stale := obsoleteImage(previousImage, item.Image); stale != "" {
				if err := uploads.Remove(stale); err != nil {
					log.Println("[MENU] [WARN] old image cleanup failed:", err)
				}
			}
		}

		log.Println("[MENU] [INFO] updated:", itemID.Hex())
		respondWithData(c, http.StatusOK, item)
	}
}

// DeleteMenuItem removes an item and then its stored image. Asset cleanup
// failure is logged and ignored: the record is already gone and an orphaned
// file must not fail the operation.
func DeleteMenuItem(db *mongo.Database, uploads *UploadStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, "MENU")

		caller, ok := callerID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "MENU", "unauthorized")
			return
		}

		restaurantID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "restaurant not found or unauthorized")
			return
		}
		itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
		if err != nil {
			respondWithError(c, http.StatusNotFound, "MENU", "menu item not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := requireMenuOwnership(ctx, db, restaurantID, caller); err != nil {
			respondMenuOwnershipError(c, err)
			return
		}

		var item models.MenuItem
		err = db.Collection("menu_items").FindOneAndDelete(ctx, bson.M{
			"_id":        itemID,
			"restaurant": restaurantID,
		}).Decode(&item)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, "MENU", "menu item not found")
				return
			}
			log.Println("[MENU] [ERROR] delete failed:", err)
			respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
			return
		}

		if stale := obsoleteImage(item.Image, ""); stale != "" {
			if err := uploads.Remove(stale); err != nil {
				log.Println("[MENU] [WARN] image cleanup failed:", err)
			}
		}

		log.Println("[MENU] [INFO] deleted:", itemID.Hex())
		respondWithData(c, http.StatusOK, item)
	}
}

func respondMenuOwnershipError(c *gin.Context, err error) {
	if err == errRestaurantNotFound {
		respondWithError(c, http.StatusNotFound, "MENU", "restaurant not found or unauthorized")
		return
	}
	log.Println("[MENU] [ERROR] ownership check failed:", err)
	respondWithError(c, http.StatusInternalServerError, "MENU", "db error")
}
