// internal/imageproc/encoder.go
package imageproc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension caps the longer side sent to the vision model.
	MaxDimension = 1024
	// JPEGQuality matches a 0.8 compression quality.
	JPEGQuality = 80

	dataURIPrefix = "data:image/jpeg;base64,"
	// pixelsPerToken approximates vision token cost.
	pixelsPerToken = 750
)

var (
	ErrInvalidImage      = errors.New("invalid image format")
	ErrCompressionFailed = errors.New("failed to compress image")
)

// Encoded is an image ready to embed in a vision request.
type Encoded struct {
	DataURI string
	Width   int
	Height  int
	Bytes   int
}

// TokenCost estimates the vision token cost of the encoded image.
func (e Encoded) TokenCost() int {
	return EstimateTokenCost(e.Width, e.Height)
}

type Encoder struct {
	MaxDimension int
	Quality      int
}

func NewEncoder() *Encoder {
	return &Encoder{MaxDimension: MaxDimension, Quality: JPEGQuality}
}

// EncodeDataURI decodes raw image bytes (jpeg, png, webp), shrinks them to fit
// MaxDimension, re-encodes as JPEG and returns a base64 data URI.
func (e *Encoder) EncodeDataURI(raw []byte) (string, error) {
	enc, err := e.Encode(raw)
	if err != nil {
		return "", err
	}
	return enc.DataURI, nil
}

func (e *Encoder) Encode(raw []byte) (Encoded, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Encoded{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	img := Resize(src, e.MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return Encoded{}, fmt.Errorf("%w: %v", ErrCompressionFailed, err)
	}
	b := img.Bounds()
	return Encoded{
		DataURI: dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:   b.Dx(),
		Height:  b.Dy(),
		Bytes:   buf.Len(),
	}, nil
}

// Resize scales img so neither side exceeds maxDim, keeping the aspect ratio.
// Images already within bounds are returned unchanged.
func Resize(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), maxDim)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// FitWithin returns the target size for a w x h image bounded by maxDim.
func FitWithin(w, h, maxDim int) (int, int) {
	if w <= maxDim && h <= maxDim {
		return w, h
	}
	aspect := float64(w) / float64(h)
	if w > h {
		return maxDim, atLeastOne(float64(maxDim) / aspect)
	}
	return atLeastOne(float64(maxDim) * aspect), maxDim
}

func atLeastOne(v float64) int {
	n := int(v + 0.5)
	if n < 1 {
		return 1
	}
	return n
}

func EstimateTokenCost(width, height int) int {
	return width * height / pixelsPerToken
}

// TokenCostFor predicts the token cost of raw after encoding. Only the image
// header is read.
func (e *Encoder) TokenCostFor(raw []byte) (int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	w, h := FitWithin(cfg.Width, cfg.Height, e.MaxDimension)
	return EstimateTokenCost(w, h), nil
}
