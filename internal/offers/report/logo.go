package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	logoMaxWidthMM  = 60.0
	logoMaxHeightMM = 40.0
	mmPerPixel      = 25.4 / 72.0
)

// logoMIME infers the image type from the stored file name.
func logoMIME(filename string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}

// pdfLogo is a logo decoded, flattened on white and re-encoded as PNG,
// with its printed size already fitted to the logo box.
type pdfLogo struct {
	png    []byte
	width  float64
	height float64
}

func preparePDFLogo(data []byte) (*pdfLogo, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil, fmt.Errorf("decode logo: empty image")
	}

	flat := imaging.Overlay(imaging.New(size.X, size.Y, color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}

	w, h := fitWithin(float64(size.X)*mmPerPixel, float64(size.Y)*mmPerPixel, logoMaxWidthMM, logoMaxHeightMM)
	return &pdfLogo{png: buf.Bytes(), width: w, height: h}, nil
}

// fitWithin scales (w, h) down, keeping the aspect ratio, until it fits the box.
// Smaller images keep their natural size.
func fitWithin(w, h, maxW, maxH float64) (float64, float64) {
	scale := 1.0
	if w > maxW {
		scale = maxW / w
	}
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}
