package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/attendify/attendify-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// FileService stores attendance proof photos. Every proof is normalized to
// JPEG and compressed before it is written, and the returned reference is a
// public URL.
type FileService interface {
	// UploadAttendanceProof validates, compresses and stores a proof photo
	// under the attendance namespace for the user, returning its URL.
	UploadAttendanceProof(ctx context.Context, userID string, file io.Reader, filename string, clockType string) (string, error)

	// DeleteProof removes a previously uploaded proof by its URL. Best effort:
	// a URL that no longer resolves is an error for the caller to log, not
	// retry.
	DeleteProof(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAttendanceProof uploads an attendance clock-in/out proof photo.
// Compresses image to target size between 50KB - 150KB.
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, userID string, file io.Reader, filename string, clockType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	// Validate image format
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, 150*1024, 50*1024)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// Path: attendance/{userID}/{uuid}-{clockType}.jpg
	// Always output as JPEG after compression for consistency.
	newFilename := fmt.Sprintf("%s-%s.jpg", uuid.New().String(), clockType)
	path := filepath.Join("attendance", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	url, err := s.storage.GetURL(ctx, uploadedPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve proof URL: %w", err)
	}

	return url, nil
}

// DeleteProof deletes a proof photo by URL.
func (s *fileServiceImpl) DeleteProof(ctx context.Context, url string) error {
	path, err := s.storage.PathForURL(url)
	if err != nil {
		return fmt.Errorf("failed to resolve proof path: %w", err)
	}

	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete attendance proof: %w", err)
	}

	return nil
}

// ==================== HELPER FUNCTIONS ====================

// compressImage compresses an image to target size range.
// maxSize: maximum allowed size (e.g., 150KB)
// minSize: minimum target size (e.g., 50KB)
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	// Decode first: even an in-range payload must be a real image, and
	// non-JPEG input is re-encoded regardless of size.
	img, format, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if format == "jpeg" && len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	// Start with quality 85 and reduce progressively
	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		if len(compressed) <= maxSize {
			return compressed, nil
		}

		quality -= 5
	}

	// Still too large after quality reduction, resize toward the middle of the
	// target range.
	targetSize := 100 * 1024
	ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
	newWidth := int(float64(originalWidth) * ratio)
	newHeight := int(float64(originalHeight) * ratio)

	if newWidth < 600 {
		newWidth = 600
	}
	if newHeight < 400 {
		newHeight = 400
	}

	resized := resizeImage(img, newWidth, newHeight)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// resizeImage resizes an image using high-quality interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
