// Package screen captures the game screen for the vision model.
package screen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
)

// Result is the tool payload handed back to the model. The base64 field is
// what the transcript bridge later splices into a vision message.
type Result struct {
	Path    string `json:"path"`
	Base64  string `json:"base64"`
	Message string `json:"message"`
}

type Capturer struct {
	Dir string // screenshots directory, created on demand
}

func NewCapturer(dir string) *Capturer {
	if dir == "" {
		dir = "screenshots"
	}
	return &Capturer{Dir: dir}
}

// Capture grabs the primary display.
func (c *Capturer) Capture() (Result, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return Result{}, fmt.Errorf("no active displays")
	}

	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return Result{}, fmt.Errorf("capture display: %w", err)
	}

	return c.persist(img, fmt.Sprintf("screenshot_%s.png", timestamp()))
}

// CaptureRegion grabs a sub-region of the screen.
func (c *Capturer) CaptureRegion(x, y, width, height int) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, fmt.Errorf("invalid region %dx%d", width, height)
	}

	img, err := screenshot.CaptureRect(image.Rect(x, y, x+width, y+height))
	if err != nil {
		return Result{}, fmt.Errorf("capture region: %w", err)
	}

	return c.persist(img, fmt.Sprintf("screenshot_region_%s.png", timestamp()))
}

func (c *Capturer) persist(img image.Image, name string) (Result, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("encode png: %w", err)
	}

	path := filepath.Join(c.Dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Result{}, err
	}

	return Result{
		Path:    path,
		Base64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		Message: fmt.Sprintf("Screenshot saved to %s", path),
	}, nil
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}
