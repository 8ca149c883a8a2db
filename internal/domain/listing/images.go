package listing

import (
	"fmt"
	"strings"
)

// Image upload limits
const (
	MinImages    = 1
	MaxImages    = 12
	MaxImageSize = 5 * 1024 * 1024 // 5 MB per file
)

// ImageUpload describes a candidate image before acceptance
type ImageUpload struct {
	FileName    string
	Size        int64
	ContentType string
}

// ImageError is a per-file validation failure
type ImageError struct {
	FileName string
	Message  string
}

// ValidateImages filters a dropped file list into accepted uploads and
// per-file errors. Valid files are accepted even when siblings fail, and the
// accepted list never exceeds MaxImages regardless of how many were dropped.
func ValidateImages(existing int, uploads []ImageUpload) (accepted []ImageUpload, errs []ImageError) {
	capacity := MaxImages - existing
	if capacity < 0 {
		capacity = 0
	}

	for _, u := range uploads {
		if !strings.HasPrefix(u.ContentType, "image/") {
			errs = append(errs, ImageError{FileName: u.FileName, Message: "File is not an image"})
			continue
		}
		if u.Size > MaxImageSize {
			errs = append(errs, ImageError{FileName: u.FileName, Message: fmt.Sprintf("File exceeds the %d MB limit", MaxImageSize/(1024*1024))})
			continue
		}
		if len(accepted) >= capacity {
			errs = append(errs, ImageError{FileName: u.FileName, Message: fmt.Sprintf("At most %d images are allowed", MaxImages)})
			continue
		}
		accepted = append(accepted, u)
	}

	return accepted, errs
}

// CheckImageCount verifies the final image count satisfies the listing rules
func CheckImageCount(count int) error {
	if count < MinImages {
		return fmt.Errorf("at least %d image is required", MinImages)
	}
	if count > MaxImages {
		return fmt.Errorf("at most %d images are allowed", MaxImages)
	}
	return nil
}
