package domain

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImageRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{0x00},
		[]byte("\x89PNG\r\n\x1a\n"),
		bytes.Repeat([]byte{0xff, 0x00, 0x7f}, 1000),
		[]byte("not really an image"),
	}
	for _, input := range inputs {
		encoded, err := EncodeImage(bytes.NewReader(input), ImageFormatJPEG)
		require.NoError(t, err)
		decoded, err := base64.StdEncoding.DecodeString(encoded.Base64)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
		raw, err := encoded.Decode()
		require.NoError(t, err)
		assert.Equal(t, input, raw)
	}
}

func TestUploadedImageEncodeUsesFormatMIMEType(t *testing.T) {
	png := UploadedImage{Data: []byte{1, 2, 3}, Format: ImageFormatPNG}.Encode()
	assert.Equal(t, "image/png", png.MIMEType)
	assert.Equal(t, "data:image/png;base64,AQID", png.DataURL())

	jpg := UploadedImage{Data: []byte{1, 2, 3}, Format: ImageFormatJPG}.Encode()
	assert.Equal(t, "image/jpeg", jpg.MIMEType)
}

func TestImageFormatFromName(t *testing.T) {
	for name, expected := range map[string]ImageFormat{
		"colosseum.png":  ImageFormatPNG,
		"colosseum.JPG":  ImageFormatJPG,
		"a/b/tower.jpeg": ImageFormatJPEG,
	} {
		format, err := ImageFormatFromName(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, format, name)
	}
	for _, name := range []string{"tower.gif", "tower", "", "tower.png.exe"} {
		_, err := ImageFormatFromName(name)
		assert.ErrorIs(t, err, ErrUnsupportedImageFormat, name)
	}
}

func TestReadUploadedImage(t *testing.T) {
	image, err := ReadUploadedImage(strings.NewReader("12345"), "photo.jpg", 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("12345"), image.Data)
	assert.Equal(t, ImageFormatJPG, image.Format)

	_, err = ReadUploadedImage(strings.NewReader("123456"), "photo.jpg", 5)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = ReadUploadedImage(strings.NewReader("123"), "photo.bmp", 5)
	assert.ErrorIs(t, err, ErrUnsupportedImageFormat)
}
