package handlers

import (
	"fmt"
	"strings"

	"restaurant-manager/internal/models"
)

func validateNewMenuItem(input MultipartMenuItemInput) error {
	name := strings.TrimSpace(input.Name)
	if !input.NameSet || name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > models.MenuItemNameMaxLen {
		return fmt.Errorf("name cannot exceed %d characters", models.MenuItemNameMaxLen)
	}
	if input.DescriptionSet && len(input.Description) > models.MenuItemDescriptionMaxLen {
		return fmt.Errorf("description cannot exceed %d characters", models.MenuItemDescriptionMaxLen)
	}
	if !input.PriceSet {
		return fmt.Errorf("price is required")
	}
	if input.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if !input.CategorySet || strings.TrimSpace(input.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if !models.IsValidMenuItemCategory(input.Category) {
		return fmt.Errorf("invalid category: %s", input.Category)
	}
	return nil
}

// applyMenuItemUpdate merges the parsed form into the item. A field is
// applied only when it was sent with a non-empty value; an empty string, a
// zero price and a false isVegetarian all leave the stored value unchanged,
// so update cannot clear a field. The image swap is resolved separately.
func applyMenuItemUpdate(item *models.MenuItem, input MultipartMenuItemInput) error {
	if name := strings.TrimSpace(input.Name); input.NameSet && name != "" {
		if len(name) > models.MenuItemNameMaxLen {
			return fmt.Errorf("name cannot exceed %d characters", models.MenuItemNameMaxLen)
		}
		item.Name = name
	}
	if description := strings.TrimSpace(input.Description); input.DescriptionSet && description != "" {
		if len(description) > models.MenuItemDescriptionMaxLen {
			return fmt.Errorf("description cannot exceed %d characters", models.MenuItemDescriptionMaxLen)
		}
		item.Description = description
	}
	if input.PriceSet && input.Price != 0 {
		if input.Price < 0 {
			return fmt.Errorf("price cannot be negative")
		}
		item.Price = input.Price
	}
	if category := strings.TrimSpace(input.Category); input.CategorySet && category != "" {
		if !models.IsValidMenuItemCategory(category) {
			return fmt.Errorf("invalid category: %s", category)
		}
		item.Category = category
	}
	if input.IsVegetarianSet && input.IsVegetarian {
		item.IsVegetarian = true
	}
	return nil
}

// obsoleteImage names the asset to clean up after an image swap: the
// previous reference, unless it is empty, the placeholder, or the same
// path that was just attached.
func obsoleteImage(oldPath, newPath string) string {
	if oldPath == "" || oldPath == models.DefaultMenuItemImage || oldPath == newPath {
		return ""
	}
	return oldPath
}
