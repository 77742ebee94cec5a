package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromFilename(t *testing.T) {
	for name, expected := range map[string]Format{
		"a.jpg": JPEG, "a.JPEG": JPEG, "dir/x.png": PNG, "x.apng": PNG, "x.gif": GIF,
		"x.tif": TIFF, "x.tiff": TIFF, "x.webp": WEBP, "x.bmp": BMP,
	} {
		f, err := FormatFromFilename(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, f, name)
	}
	for _, name := range []string{"x", "x.pam", "x.jpg.txt"} {
		f, err := FormatFromFilename(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
		assert.Equal(t, UNKNOWN, f)
	}
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, "PNG", PNG.String())
	assert.Equal(t, "UNKNOWN", UNKNOWN.String())
	assert.Equal(t, TIFF, FormatFromDecoderName("tiff"))
	assert.Equal(t, UNKNOWN, FormatFromDecoderName("pam"))
	assert.True(t, JPEG.CanEncode())
	assert.False(t, WEBP.CanEncode())
	assert.False(t, UNKNOWN.CanEncode())
}
