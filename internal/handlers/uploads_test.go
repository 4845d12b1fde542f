package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"restaurant-manager/internal/models"
)

func uploadFileHeader(t *testing.T, filename string, payload []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("writing payload failed: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestSaveImageRoundTripsBytes(t *testing.T) {
	root := t.TempDir()
	store := NewUploadStore(root)
	payload := []byte("these are the image bytes")

	relPath, err := store.SaveImage(uploadFileHeader(t, "pizza.jpg", payload))
	if err != nil {
		t.Fatalf("SaveImage returned error: %v", err)
	}
	if !strings.HasPrefix(relPath, "uploads/menu-items/") {
		t.Fatalf("unexpected stored path %q", relPath)
	}

	saved, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		t.Fatalf("reading stored file failed: %v", err)
	}
	if !bytes.Equal(saved, payload) {
		t.Fatal("stored bytes differ from uploaded bytes")
	}
}

func TestSaveImageGeneratesUniqueNames(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	first, err := store.SaveImage(uploadFileHeader(t, "a.png", []byte("one")))
	if err != nil {
		t.Fatalf("first SaveImage failed: %v", err)
	}
	second, err := store.SaveImage(uploadFileHeader(t, "a.png", []byte("two")))
	if err != nil {
		t.Fatalf("second SaveImage failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct names for identical originals, got %q twice", first)
	}
}

func TestSaveImageRejectsUnsupportedExtension(t *testing.T) {
	store := NewUploadStore(t.TempDir())
	if _, err := store.SaveImage(uploadFileHeader(t, "malware.exe", []byte("x"))); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if _, err := store.SaveImage(uploadFileHeader(t, "noextension", []byte("x"))); err == nil {
		t.Fatal("expected error for missing extension")
	}
}

func TestRemoveDeletesStoredImage(t *testing.T) {
	root := t.TempDir()
	store := NewUploadStore(root)

	relPath, err := store.SaveImage(uploadFileHeader(t, "gone.jpg", []byte("bye")))
	if err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	if err := store.Remove(relPath); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if store.Exists(relPath) {
		t.Fatalf("file %s still exists after Remove", relPath)
	}
}

func TestRemoveIgnoresPlaceholderAndEmptyPaths(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	if err := store.Remove(models.DefaultMenuItemImage); err != nil {
		t.Fatalf("placeholder remove must be a no-op, got %v", err)
	}
	if err := store.Remove(""); err != nil {
		t.Fatalf("empty path remove must be a no-op, got %v", err)
	}
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store := NewUploadStore(t.TempDir())
	if err := store.Remove("uploads/menu-items/never-existed.jpg"); err != nil {
		t.Fatalf("removing a missing file must succeed, got %v", err)
	}
}

func TestRemoveRefusesPathsOutsideUploads(t *testing.T) {
	store := NewUploadStore(t.TempDir())

	if err := store.Remove("secrets/passwd"); err == nil {
		t.Fatal("expected refusal for non-upload path")
	}
	if err := store.Remove("uploads/../../etc/passwd"); err == nil {
		t.Fatal("expected refusal for traversal path")
	}
}
