package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant-manager/internal/models"
)

const menuItemUploadDir = "uploads/menu-items"

// UploadStore saves and deletes menu item images under a public root
// directory fixed at construction time.
type UploadStore struct {
	publicRoot string
}

func NewUploadStore(publicRoot string) *UploadStore {
	return &UploadStore{publicRoot: filepath.Clean(publicRoot)}
}

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

const maxImageSize = 5 << 20

// SaveImage writes the uploaded file under uploads/menu-items with a
// generated name and returns the relative path stored on the menu item.
func (s *UploadStore) SaveImage(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := uniqueImageName(extension)

	dir := filepath.Join(s.publicRoot, filepath.FromSlash(menuItemUploadDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] SaveImage: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] SaveImage: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] SaveImage: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] SaveImage: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return path.Join(menuItemUploadDir, filename), nil
}

// Remove deletes a previously stored image. The placeholder reference and
// empty paths are no-ops, and anything outside uploads/ is refused.
func (s *UploadStore) Remove(relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" || trimmed == models.DefaultMenuItemImage {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", relPath)
	}

	targetPath := filepath.Join(s.publicRoot, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget != s.publicRoot && !strings.HasPrefix(cleanTarget, s.publicRoot+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside public root: %s", relPath)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}

// Exists reports whether a stored relative path resolves to a file.
func (s *UploadStore) Exists(relPath string) bool {
	if strings.TrimSpace(relPath) == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.publicRoot, filepath.FromSlash(relPath)))
	return err == nil
}

// uniqueImageName combines a wall-clock timestamp with a random component,
// keeping collisions negligible even for uploads in the same millisecond.
func uniqueImageName(extension string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("menu-%d-%s%s", time.Now().UnixMilli(), random, extension)
}
