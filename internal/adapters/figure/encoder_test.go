package figure

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirt-tools/cutviz/internal/domain"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(8 * x), G: uint8(12 * y), B: 0x40, A: 0xff})
		}
	}
	return img
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sim_dns_dust_xy.png")
	require.NoError(t, NewEncoder(100).Save(path, testImage()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), decoded.Bounds())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed away")
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim_tmp_dust_T.PDF")
	require.NoError(t, NewEncoder(72).Save(path, testImage()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := NewEncoder(100).Encode(&buf, ".svg", testImage())
	assert.ErrorIs(t, err, domain.ErrUnsupportedSuffix)

	path := filepath.Join(t.TempDir(), "figure.jpg")
	err = NewEncoder(100).Save(path, testImage())
	assert.ErrorIs(t, err, domain.ErrUnsupportedSuffix)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
