package model

// Media upload limits. The core treats stored media as an opaque URL; these
// bound what the upload path accepts.
const (
	MaxImageSizeBytes = int64(5 * 1024 * 1024)

	ProfilePictureWidth  = 200
	ProfilePictureHeight = 200

	ProfilePictureFolder = "avatars"
	PostImageFolder      = "posts"

	ContentTypeJPEG = "image/jpeg"

	ImageCacheControl = "public, max-age=31536000, immutable"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds MaxImageSizeBytes
	ErrFileTooLarge = NewInvalidInput("Image exceeds 5MB limit")

	// ErrInvalidImageType is returned for unsupported image content types
	ErrInvalidImageType = NewInvalidInput("Unsupported image type. Allowed: jpeg, png, gif, webp")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedImageType reports whether the content type may be uploaded.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

// UploadResult is the stored location of an uploaded object.
type UploadResult struct {
	URL string
	Key string
}
