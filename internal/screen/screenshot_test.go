package screen

import (
	"encoding/base64"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistWritesPNGAndBase64(t *testing.T) {
	dir := t.TempDir()
	c := NewCapturer(dir)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	res, err := c.persist(img, "screenshot_test.png")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "screenshot_test.png"), res.Path)
	assert.Contains(t, res.Message, res.Path)

	onDisk, err := os.ReadFile(res.Path)
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(res.Base64)
	require.NoError(t, err)
	assert.Equal(t, onDisk, decoded)
	assert.True(t, strings.HasPrefix(string(decoded), "\x89PNG"))
}

func TestCaptureRegionRejectsEmptyRegion(t *testing.T) {
	c := NewCapturer(t.TempDir())

	_, err := c.CaptureRegion(0, 0, 0, 100)
	assert.Error(t, err)

	_, err = c.CaptureRegion(10, 10, 640, -1)
	assert.Error(t, err)
}
