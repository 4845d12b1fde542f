package handlers

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-manager/internal/models"
)

var (
	errRestaurantNotFound  = errors.New("restaurant not found")
	errRestaurantForbidden = errors.New("not the restaurant owner")
)

// RestaurantInput carries a create or update body. On update, fields keep
// their zero value when absent and are skipped by the merge.
type RestaurantInput struct {
	Name         string                     `json:"name"`
	Description  string                     `json:"description"`
	CuisineType  []string                   `json:"cuisineType"`
	Address      *models.Address            `json:"address"`
	Contact      *models.Contact            `json:"contact"`
	OpeningHours []models.OpeningHoursEntry `json:"openingHours"`
}

func validateNewRestaurant(input RestaurantInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		len(input.CuisineType) == 0 ||
		input.Address == nil ||
		input.Contact == nil {
		return fmt.Errorf("name, description, cuisineType, address and contact are required")
	}
	if len(input.Name) > models.RestaurantNameMaxLen {
		return fmt.Errorf("name cannot exceed %d characters", models.RestaurantNameMaxLen)
	}
	if len(input.Description) > models.RestaurantDescriptionMaxLen {
		return fmt.Errorf("description cannot exceed %d characters", models.RestaurantDescriptionMaxLen)
	}
	if err := validateCuisineTypes(input.CuisineType); err != nil {
		return err
	}
	if err := validateAddress(*input.Address); err != nil {
		return err
	}
	if err := validateContact(*input.Contact); err != nil {
		return err
	}
	return validateOpeningHours(input.OpeningHours)
}

func validateCuisineTypes(values []string) error {
	for _, value := range values {
		if !models.IsValidCuisine(value) {
			return fmt.Errorf("invalid cuisine type: %s", value)
		}
	}
	return nil
}

func validateAddress(address models.Address) error {
	if strings.TrimSpace(address.Street) == "" ||
		strings.TrimSpace(address.City) == "" ||
		strings.TrimSpace(address.State) == "" ||
		strings.TrimSpace(address.ZipCode) == "" {
		return fmt.Errorf("address must include street, city, state and zipCode")
	}
	return nil
}

func validateContact(contact models.Contact) error {
	if strings.TrimSpace(contact.Phone) == "" || strings.TrimSpace(contact.Email) == "" {
		return fmt.Errorf("contact must include phone and email")
	}
	return nil
}

func validateOpeningHours(entries []models.OpeningHoursEntry) error {
	if len(entries) > len(models.Weekdays) {
		return fmt.Errorf("openingHours cannot have more than %d entries", len(models.Weekdays))
	}
	seen := map[string]struct{}{}
	for _, entry := range entries {
		if !models.IsValidWeekday(entry.Day) {
			return fmt.Errorf("invalid openingHours day: %s", entry.Day)
		}
		if _, ok := seen[entry.Day]; ok {
			return fmt.Errorf("duplicate openingHours day: %s", entry.Day)
		}
		seen[entry.Day] = struct{}{}
	}
	return nil
}

// applyRestaurantUpdate merges the input into the restaurant, applying a
// field only when the incoming value is non-empty. Empty strings, nil
// objects and empty slices leave the stored value unchanged, so a caller
// cannot clear a field through update. Owner and the soft-delete fields are
// never touched.
func applyRestaurantUpdate(restaurant *models.Restaurant, input RestaurantInput) error {
	if name := strings.TrimSpace(input.Name); name != "" {
		if len(name) > models.RestaurantNameMaxLen {
			return fmt.Errorf("name cannot exceed %d characters", models.RestaurantNameMaxLen)
		}
		restaurant.Name = name
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		if len(description) > models.RestaurantDescriptionMaxLen {
			return fmt.Errorf("description cannot exceed %d characters", models.RestaurantDescriptionMaxLen)
		}
		restaurant.Description = description
	}
	if len(input.CuisineType) > 0 {
		if err := validateCuisineTypes(input.CuisineType); err != nil {
			return err
		}
		restaurant.CuisineType = input.CuisineType
	}
	if input.Address != nil {
		if err := validateAddress(*input.Address); err != nil {
			return err
		}
		restaurant.Address = *input.Address
	}
	if input.Contact != nil {
		if err := validateContact(*input.Contact); err != nil {
			return err
		}
		restaurant.Contact = *input.Contact
	}
	if len(input.OpeningHours) > 0 {
		if err := validateOpeningHours(input.OpeningHours); err != nil {
			return err
		}
		restaurant.OpeningHours = input.OpeningHours
	}
	return nil
}

// checkRestaurantAccess distinguishes a foreign-owned restaurant from a
// missing one: soft-deleted documents are reported as not found for every
// caller, a live document owned by someone else as forbidden.
func checkRestaurantAccess(restaurant models.Restaurant, caller primitive.ObjectID) error {
	if restaurant.IsDeleted {
		return errRestaurantNotFound
	}
	if restaurant.Owner != caller {
		return errRestaurantForbidden
	}
	return nil
}
