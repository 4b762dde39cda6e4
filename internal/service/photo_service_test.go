package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPhotoService(t *testing.T) *PhotoService {
	t.Helper()
	return NewPhotoService(&config.Config{UploadDir: t.TempDir(), UploadMaxMB: 1})
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoServiceStore(t *testing.T) {
	t.Parallel()
	svc := testPhotoService(t)

	stored, err := svc.Store(UploadPhotoInput{
		UserID:      1,
		Filename:    "me.png",
		ContentType: "image/png",
		Content:     encodeTestPNG(t, 800, 600),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Path)
	assert.NotEmpty(t, stored.ThumbPath)

	// Both files land on disk and resolve back
	full, err := svc.Resolve(stored.Path)
	require.NoError(t, err)
	masterFile, err := os.Open(full)
	require.NoError(t, err)
	defer masterFile.Close()

	decoded, format, err := image.Decode(masterFile)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, decoded.Bounds().Dx(), decoded.Bounds().Dy(), "master is square-cropped")
	assert.LessOrEqual(t, decoded.Bounds().Dx(), PhotoMasterSize)

	_, err = svc.Resolve(stored.ThumbPath)
	assert.NoError(t, err)
}

func TestPhotoServiceStoreSmallImageKeepsSize(t *testing.T) {
	t.Parallel()
	svc := testPhotoService(t)

	stored, err := svc.Store(UploadPhotoInput{
		UserID:  1,
		Content: encodeTestPNG(t, 64, 64),
	})
	require.NoError(t, err)

	full, err := svc.Resolve(stored.Path)
	require.NoError(t, err)
	f, err := os.Open(full)
	require.NoError(t, err)
	defer f.Close()

	decoded, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx(), "images below the cap are not upscaled")
}

func TestPhotoServiceStoreRejections(t *testing.T) {
	t.Parallel()
	svc := testPhotoService(t)

	t.Run("empty upload", func(t *testing.T) {
		_, err := svc.Store(UploadPhotoInput{UserID: 1})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := svc.Store(UploadPhotoInput{UserID: 1, Content: []byte("plain text, not pixels")})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("oversized", func(t *testing.T) {
		big := make([]byte, 2*1024*1024)
		_, err := svc.Store(UploadPhotoInput{UserID: 1, Content: big})
		assertAppErrorCode(t, err, models.CodeValidation)
	})
}

func TestPhotoServiceResolveTraversal(t *testing.T) {
	t.Parallel()
	svc := testPhotoService(t)

	for _, rel := range []string{"../etc/passwd", "..", "/etc/passwd", "photos/../../secret"} {
		_, err := svc.Resolve(rel)
		assertAppErrorCode(t, err, models.CodeValidation)
	}

	_, err := svc.Resolve("photos/missing.jpg")
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestCropSquare(t *testing.T) {
	t.Parallel()
	wide := image.NewRGBA(image.Rect(0, 0, 300, 100))
	cropped := cropSquare(wide)
	assert.Equal(t, 100, cropped.Bounds().Dx())
	assert.Equal(t, 100, cropped.Bounds().Dy())

	square := image.NewRGBA(image.Rect(0, 0, 50, 50))
	assert.Equal(t, square, cropSquare(square), "already-square images pass through")
}
