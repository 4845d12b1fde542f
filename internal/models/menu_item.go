package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MenuItemNameMaxLen        = 100
	MenuItemDescriptionMaxLen = 500

	// DefaultMenuItemImage is the placeholder reference used when no image
	// was uploaded. It is never deleted from disk.
	DefaultMenuItemImage = "no-photo.jpg"
)

// MenuItemCategories is the fixed set of allowed categories.
var MenuItemCategories = []string{
	"Appetizer",
	"Main Course",
	"Dessert",
	"Beverage",
	"Other",
}

func IsValidMenuItemCategory(value string) bool {
	for _, category := range MenuItemCategories {
		if value == category {
			return true
		}
	}
	return false
}

// MenuItem belongs to exactly one restaurant; its effective owner is the
// parent restaurant's owner. Items are hard-deleted, no soft-delete flag.
type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Category     string             `bson:"category" json:"category"`
	IsVegetarian bool               `bson:"isVegetarian" json:"isVegetarian"`
	Restaurant   primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
