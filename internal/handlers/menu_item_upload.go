package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// MultipartMenuItemInput is the parsed form of a create or update request.
// Each field carries a Set flag so the merge can tell "absent" from "sent
// empty".
type MultipartMenuItemInput struct {
	Name            string
	NameSet         bool
	Description     string
	DescriptionSet  bool
	Price           float64
	PriceSet        bool
	Category        string
	CategorySet     bool
	IsVegetarian    bool
	IsVegetarianSet bool
	ImagePath       string
	ImageSet        bool
}

// parseMenuItemRequest reads a multipart (or urlencoded) menu item form.
// When an image file is present it is written to the upload store here, so
// callers must have passed every ownership check before parsing.
func parseMenuItemRequest(c *gin.Context, uploads *UploadStore) (MultipartMenuItemInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Println("[MENU] [ERROR] form parse failed:", err)
		return MultipartMenuItemInput{}, err
	}

	input := MultipartMenuItemInput{}

	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartMenuItemInput{}, err
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}

	if value, ok := c.GetPostForm("isVegetarian"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return MultipartMenuItemInput{}, err
		}
		input.IsVegetarian = parsed
		input.IsVegetarianSet = true
	}

	file, err := c.FormFile("image")
	if err == nil {
		imagePath, err := uploads.SaveImage(file)
		if err != nil {
			return MultipartMenuItemInput{}, err
		}
		input.ImagePath = imagePath
		input.ImageSet = true
	} else {
		// gin versions differ in how a missing file is reported
		if !errors.Is(err, http.ErrMissingFile) &&
			!strings.Contains(err.Error(), "no such file") {
			return MultipartMenuItemInput{}, err
		}
	}

	return input, nil
}

func parseBoolValue(value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" {
		return true, nil
	}
	return strconv.ParseBool(value)
}
