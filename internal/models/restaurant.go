package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RestaurantNameMaxLen        = 50
	RestaurantDescriptionMaxLen = 500
)

// CuisineTypes is the fixed set of allowed cuisine tags.
var CuisineTypes = []string{
	"Italian",
	"Indian",
	"Mexican",
	"Chinese",
	"Japanese",
	"American",
	"Mediterranean",
	"Other",
}

// Weekdays in schedule order, as accepted in openingHours entries.
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func IsValidCuisine(value string) bool {
	for _, cuisine := range CuisineTypes {
		if value == cuisine {
			return true
		}
	}
	return false
}

func IsValidWeekday(value string) bool {
	for _, day := range Weekdays {
		if value == day {
			return true
		}
	}
	return false
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Address struct {
	Street      string       `bson:"street" json:"street"`
	City        string       `bson:"city" json:"city"`
	State       string       `bson:"state" json:"state"`
	ZipCode     string       `bson:"zipCode" json:"zipCode"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type Contact struct {
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

// OpeningHoursEntry describes one weekday's hours. Open and Close are
// free-form times ("09:00"); IsClosed marks the whole day closed.
type OpeningHoursEntry struct {
	Day      string `bson:"day" json:"day"`
	Open     string `bson:"open" json:"open"`
	Close    string `bson:"close" json:"close"`
	IsClosed bool   `bson:"isClosed" json:"isClosed"`
}

// Restaurant is the persisted restaurant document. Owner is set at creation
// and never changed. Soft delete is terminal: once IsDeleted is true the
// document is invisible to every read and mutation.
type Restaurant struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description" json:"description"`
	CuisineType  []string            `bson:"cuisineType" json:"cuisineType"`
	Address      Address             `bson:"address" json:"address"`
	Contact      Contact             `bson:"contact" json:"contact"`
	OpeningHours []OpeningHoursEntry `bson:"openingHours" json:"openingHours"`
	Owner        primitive.ObjectID  `bson:"owner" json:"owner"`
	IsDeleted    bool                `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt    *time.Time          `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
