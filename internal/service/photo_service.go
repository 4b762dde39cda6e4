package service

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"skillswap/internal/config"
	"skillswap/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultPhotoUploadDir = "/tmp/skillswap/uploads"
	DefaultPhotoMaxMB     = 16

	// Profile photos are square; the master is capped at 512px and a
	// 128px webp thumbnail is written alongside it.
	PhotoMasterSize = 512
	PhotoThumbSize  = 128

	photoJPEGQuality = 85
	photoWebPQuality = 75
)

// UploadPhotoInput carries an uploaded profile photo.
type UploadPhotoInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// StoredPhoto describes the files written for one upload.
type StoredPhoto struct {
	Path      string `json:"path"`
	ThumbPath string `json:"thumb_path"`
}

// PhotoService validates, normalizes and stores profile photos on disk.
type PhotoService struct {
	uploadDir string
	maxBytes  int64
}

// NewPhotoService returns a new PhotoService.
func NewPhotoService(cfg *config.Config) *PhotoService {
	uploadDir := DefaultPhotoUploadDir
	maxMB := DefaultPhotoMaxMB
	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.UploadMaxMB > 0 {
			maxMB = cfg.UploadMaxMB
		}
	}
	return &PhotoService{
		uploadDir: uploadDir,
		maxBytes:  int64(maxMB) * 1024 * 1024,
	}
}

// Store validates the upload, square-crops and resizes it, then writes a JPEG
// master and a WebP thumbnail. Returned paths are relative to the upload dir.
func (s *PhotoService) Store(in UploadPhotoInput) (*StoredPhoto, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxBytes/(1024*1024)))
	}

	detected := http.DetectContentType(in.Content)
	if !isAllowedPhotoMIME(detected) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	master := resizePhoto(cropSquare(decoded), PhotoMasterSize)
	thumb := resizePhoto(master, PhotoThumbSize)

	jpegBytes, err := encodePhotoJPEG(master)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	webpBytes, err := encodePhotoWebP(thumb)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	name := uuid.New().String()
	rel := filepath.ToSlash(filepath.Join("photos", name+".jpg"))
	thumbRel := filepath.ToSlash(filepath.Join("photos", name+"_thumb.webp"))

	if err := writePhotoFile(filepath.Join(s.uploadDir, rel), jpegBytes); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := writePhotoFile(filepath.Join(s.uploadDir, thumbRel), webpBytes); err != nil {
		_ = os.Remove(filepath.Join(s.uploadDir, rel))
		return nil, models.NewInternalError(err)
	}

	return &StoredPhoto{Path: rel, ThumbPath: thumbRel}, nil
}

// Resolve maps a stored relative path back to a file on disk, rejecting
// anything that escapes the upload directory.
func (s *PhotoService) Resolve(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", models.NewValidationError("Invalid photo path")
	}
	full := filepath.Join(s.uploadDir, cleaned)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Photo", rel)
		}
		return "", models.NewInternalError(err)
	}
	return full, nil
}

func cropSquare(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}
	side := w
	if h < side {
		side = h
	}
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)
	return dst
}

func resizePhoto(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxSide, maxSide))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func encodePhotoJPEG(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: photoJPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePhotoWebP(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: photoWebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedPhotoMIME(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch strings.ToLower(mediaType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func writePhotoFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
