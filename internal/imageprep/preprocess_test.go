package imageprep_test

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosterscan/internal/domain"
	"rosterscan/internal/imageprep"
)

func writeScreenshot(t *testing.T, dir string) string {
	t.Helper()
	img := imaging.New(200, 120, color.NRGBA{R: 40, G: 40, B: 60, A: 255})
	for x := 20; x < 180; x++ {
		for y := 50; y < 70; y++ {
			img.Set(x, y, color.NRGBA{R: 220, G: 220, B: 220, A: 255})
		}
	}
	path := filepath.Join(dir, "roster.png")
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestPrepare_WritesBothVariants(t *testing.T) {
	dir := t.TempDir()
	src := writeScreenshot(t, dir)
	p := imageprep.NewPreprocessor(dir, nil)

	v, err := p.Prepare(context.Background(), src)
	require.NoError(t, err)

	assert.False(t, v.Degraded)
	assert.Equal(t, src, v.Original)
	assert.FileExists(t, v.Normal)
	assert.FileExists(t, v.Inverted)

	list := v.List()
	require.Len(t, list, 2)
	assert.Equal(t, domain.VariantNormal, list[0].Kind)
	assert.Equal(t, domain.VariantInverted, list[1].Kind)

	normal, err := imaging.Open(v.Normal)
	require.NoError(t, err)
	assert.Equal(t, 1300, normal.Bounds().Dy(), "short screenshots are upscaled")

	require.NoError(t, v.Cleanup())
	assert.NoFileExists(t, v.Normal)
	assert.NoFileExists(t, v.Inverted)
	assert.FileExists(t, src, "original is kept")
	assert.NoError(t, v.Cleanup(), "second cleanup is a no-op")
}

func TestPrepare_UndecodableImageDegrades(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0o600))
	p := imageprep.NewPreprocessor(dir, nil)

	v, err := p.Prepare(context.Background(), src)
	require.NoError(t, err)

	assert.True(t, v.Degraded)
	assert.Equal(t, src, v.Normal)
	assert.Empty(t, v.Inverted)
	assert.Len(t, v.List(), 1)

	require.NoError(t, v.Cleanup())
	assert.FileExists(t, src)
}

func TestPrepare_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	src := writeScreenshot(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imageprep.NewPreprocessor(dir, nil).Prepare(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize_StretchesToFullRange(t *testing.T) {
	img := imaging.New(10, 1000, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	for y := 0; y < 1000; y++ {
		img.Set(0, y, color.NRGBA{R: 150, G: 150, B: 150, A: 255})
	}

	out := imageprep.Normalize(img)

	assert.Equal(t, 1000, out.Bounds().Dy())
	var lo, hi uint8 = 255, 0
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] < lo {
			lo = out.Pix[i]
		}
		if out.Pix[i] > hi {
			hi = out.Pix[i]
		}
	}
	assert.Equal(t, uint8(0), lo)
	assert.Equal(t, uint8(255), hi)
}
