package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmoudhijazi1/diet-platform/internal/models"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAvatarProcessorResizesLargeImage(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&models.User{Username: "pat1", Role: models.RolePatient})

	driver := newFakeDriver()
	original := "avatars/" + user.ID.String() + "/original.png"
	driver.files[original] = pngBytes(t, 1024, 512)

	processor := NewAvatarProcessor(users, driver)
	require.NoError(t, processor.Process(context.Background(), AvatarJob{
		UserID:      user.ID,
		StoragePath: original,
	}))

	thumbPath := "avatars/" + user.ID.String() + "/thumb.png"
	data, ok := driver.files[thumbPath]
	require.True(t, ok, "thumbnail was not stored")

	thumb, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := thumb.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 256)
	assert.LessOrEqual(t, bounds.Dy(), 256)

	stored, err := users.GetByID(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+thumbPath, stored.AvatarURL)
}

// Smallest valid lossy webp: a 1x1 keyframe. Every allowed upload
// extension must be decodable by the worker.
const tinyWebP = "UklGRiQAAABXRUJQVlA4IBgAAAAwAQCdASoBAAEAAQAcJaQAA3AA/v3AgAA="

func TestAvatarProcessorHandlesWebP(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&models.User{Username: "pat1", Role: models.RolePatient})

	webpData, err := base64.StdEncoding.DecodeString(tinyWebP)
	require.NoError(t, err)

	driver := newFakeDriver()
	original := "avatars/" + user.ID.String() + "/original.webp"
	driver.files[original] = webpData

	processor := NewAvatarProcessor(users, driver)
	require.NoError(t, processor.Process(context.Background(), AvatarJob{
		UserID:      user.ID,
		StoragePath: original,
	}))

	// webp thumbnails are re-encoded as jpeg.
	thumbPath := "avatars/" + user.ID.String() + "/thumb.jpg"
	data, ok := driver.files[thumbPath]
	require.True(t, ok, "thumbnail was not stored")

	thumb, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, thumb.Bounds().Dx())
	assert.Equal(t, 1, thumb.Bounds().Dy())

	stored, err := users.GetByID(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+thumbPath, stored.AvatarURL)
}

func TestAvatarProcessorMissingFile(t *testing.T) {
	users := newFakeUserStore()
	user := users.add(&models.User{Username: "pat1", Role: models.RolePatient})

	processor := NewAvatarProcessor(users, newFakeDriver())
	err := processor.Process(context.Background(), AvatarJob{
		UserID:      user.ID,
		StoragePath: "avatars/missing/original.png",
	})
	assert.Error(t, err)
}
