package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newMenuItemFormContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/restaurants/1/menu", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMenuItemRequestSetsFlags(t *testing.T) {
	c := newMenuItemFormContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Pizza")
		_ = w.WriteField("price", "9.99")
		_ = w.WriteField("category", "Main Course")
		_ = w.WriteField("isVegetarian", "true")
	})

	uploads := NewUploadStore(t.TempDir())
	parsed, err := parseMenuItemRequest(c, uploads)
	if err != nil {
		t.Fatalf("parseMenuItemRequest returned error: %v", err)
	}
	if !parsed.NameSet || parsed.Name != "Pizza" {
		t.Fatalf("expected name=Pizza, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 9.99 {
		t.Fatalf("expected price=9.99, got %+v", parsed)
	}
	if !parsed.CategorySet || parsed.Category != "Main Course" {
		t.Fatalf("expected category=Main Course, got %+v", parsed)
	}
	if !parsed.IsVegetarianSet || !parsed.IsVegetarian {
		t.Fatalf("expected isVegetarian=true, got %+v", parsed)
	}
	if parsed.DescriptionSet || parsed.ImageSet {
		t.Fatalf("expected description and image unset, got %+v", parsed)
	}
}

func TestParseMenuItemRequestMissingFileIsNotAnError(t *testing.T) {
	c := newMenuItemFormContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Salad")
	})

	parsed, err := parseMenuItemRequest(c, NewUploadStore(t.TempDir()))
	if err != nil {
		t.Fatalf("parseMenuItemRequest returned error: %v", err)
	}
	if parsed.ImageSet {
		t.Fatalf("expected no image, got %+v", parsed)
	}
}

func TestParseMenuItemRequestStoresUploadedImage(t *testing.T) {
	payload := []byte("fake image bytes")
	c := newMenuItemFormContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("name", "Burger")
		part, err := w.CreateFormFile("image", "burger.jpg")
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		_, _ = part.Write(payload)
	})

	uploads := NewUploadStore(t.TempDir())
	parsed, err := parseMenuItemRequest(c, uploads)
	if err != nil {
		t.Fatalf("parseMenuItemRequest returned error: %v", err)
	}
	if !parsed.ImageSet || parsed.ImagePath == "" {
		t.Fatalf("expected stored image, got %+v", parsed)
	}
	if !uploads.Exists(parsed.ImagePath) {
		t.Fatalf("stored image %s does not resolve to a file", parsed.ImagePath)
	}
}

func TestParseMenuItemRequestRejectsBadPrice(t *testing.T) {
	c := newMenuItemFormContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("price", "cheap")
	})

	if _, err := parseMenuItemRequest(c, NewUploadStore(t.TempDir())); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestParseBoolValueAcceptsOn(t *testing.T) {
	parsed, err := parseBoolValue("on")
	if err != nil || !parsed {
		t.Fatalf("expected on=true, got %v err=%v", parsed, err)
	}
	if _, err := parseBoolValue("maybe"); err == nil {
		t.Fatal("expected error for invalid bool value")
	}
}
