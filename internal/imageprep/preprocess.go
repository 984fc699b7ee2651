// Package imageprep renders uploaded screenshots into the raster variants
// the OCR backends read.
package imageprep

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"rosterscan/internal/domain"
)

const (
	minHeight    = 900
	targetHeight = 1300
	contrast     = 15
	sharpenSigma = 0.7
)

// Variant is one rendition of an input image on disk.
type Variant struct {
	Kind domain.ImageVariant
	Path string
}

// Variants holds the renditions produced for one input image. When the
// image could not be decoded, Normal is the original file, Inverted is empty
// and Degraded is set.
type Variants struct {
	Original string
	Normal   string
	Inverted string
	Degraded bool

	dir  string
	once sync.Once
	err  error
}

// List returns the variants that exist, normal first.
func (v *Variants) List() []Variant {
	out := []Variant{{Kind: domain.VariantNormal, Path: v.Normal}}
	if v.Inverted != "" {
		out = append(out, Variant{Kind: domain.VariantInverted, Path: v.Inverted})
	}
	return out
}

// Cleanup removes every file Prepare wrote. The original is never touched.
// Calling it more than once is safe.
func (v *Variants) Cleanup() error {
	v.once.Do(func() {
		if v.dir != "" {
			v.err = os.RemoveAll(v.dir)
		}
	})
	return v.err
}

// Preprocessor writes normalized and inverted copies of screenshots.
type Preprocessor struct {
	workDir string
	logger  *zap.Logger
}

// NewPreprocessor creates a Preprocessor writing under workDir (the system
// temp dir when empty).
func NewPreprocessor(workDir string, logger *zap.Logger) *Preprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preprocessor{workDir: workDir, logger: logger}
}

// Prepare decodes the image at path and writes the normal and inverted
// variants. A decode failure is not an error: the original file is returned
// as the only (degraded) variant.
func (p *Preprocessor) Prepare(ctx context.Context, path string) (*Variants, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		p.logger.Warn("imageprep.Prepare: decode failed, using original",
			zap.String("path", path), zap.Error(err))
		return &Variants{Original: path, Normal: path, Degraded: true}, nil
	}

	dir, err := os.MkdirTemp(p.workDir, "rosterscan-prep-*")
	if err != nil {
		return nil, fmt.Errorf("imageprep.Prepare: creating work dir: %w", err)
	}
	v := &Variants{Original: path, dir: dir}

	normal := Normalize(img)
	v.Normal = filepath.Join(dir, "normal.png")
	if err := imaging.Save(normal, v.Normal); err != nil {
		_ = v.Cleanup()
		return nil, fmt.Errorf("imageprep.Prepare: saving normal variant: %w", err)
	}

	if err := ctx.Err(); err != nil {
		_ = v.Cleanup()
		return nil, err
	}

	inverted := filepath.Join(dir, "inverted.png")
	if err := imaging.Save(imaging.Invert(normal), inverted); err != nil {
		p.logger.Warn("imageprep.Prepare: saving inverted variant failed",
			zap.String("path", path), zap.Error(err))
		return v, nil
	}
	v.Inverted = inverted
	return v, nil
}

// Normalize upscales short screenshots, converts to grayscale, stretches the
// intensity range and sharpens edges.
func Normalize(img image.Image) *image.NRGBA {
	if img.Bounds().Dy() < minHeight {
		img = imaging.Resize(img, 0, targetHeight, imaging.Lanczos)
	}
	gray := imaging.Grayscale(img)
	gray = stretch(gray)
	gray = imaging.AdjustContrast(gray, contrast)
	return imaging.Sharpen(gray, sharpenSigma)
}

// stretch maps the darkest pixel to black and the brightest to white.
func stretch(img *image.NRGBA) *image.NRGBA {
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(img.Pix); i += 4 {
		v := img.Pix[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo || (lo == 0 && hi == 255) {
		return img
	}
	span := float64(hi - lo)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		scale := func(x uint8) uint8 {
			if x <= lo {
				return 0
			}
			if x >= hi {
				return 255
			}
			return uint8(float64(x-lo) * 255 / span)
		}
		return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
	})
}
