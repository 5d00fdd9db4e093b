package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

var (
	ErrUnsupportedImageFormat = errors.New("unsupported image format (expected png, jpg or jpeg)")
	ErrImageTooLarge          = errors.New("image too large")
)

// ImageFormat the declared format of an uploaded image, as given by its file extension.
type ImageFormat string

const (
	ImageFormatPNG  = ImageFormat("png")
	ImageFormatJPG  = ImageFormat("jpg")
	ImageFormatJPEG = ImageFormat("jpeg")
)

// ImageFormatFromName finds the image format by the extension of a file name or a URL path.
func ImageFormatFromName(name string) (ImageFormat, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	switch ImageFormat(ext) {
	case ImageFormatPNG, ImageFormatJPG, ImageFormatJPEG:
		return ImageFormat(ext), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, name)
}

// MIMEType is what providers expect alongside base64 image data.
func (f ImageFormat) MIMEType() string {
	if f == ImageFormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// UploadedImage raw bytes of an image received from the user. The content itself is never validated:
// malformed bytes simply fail at the provider.
type UploadedImage struct {
	Data   []byte
	Format ImageFormat
}

// ReadUploadedImage reads at most `maxSize` bytes from `r`; bigger images are rejected with ErrImageTooLarge.
// The format is deduced from `fileName`.
func ReadUploadedImage(r io.Reader, fileName string, maxSize int64) (UploadedImage, error) {
	format, err := ImageFormatFromName(fileName)
	if err != nil {
		return UploadedImage{}, err
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return UploadedImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > maxSize {
		return UploadedImage{}, ErrImageTooLarge
	}
	return UploadedImage{Data: data, Format: format}, nil
}

// Encode see EncodeImage.
func (u UploadedImage) Encode() EncodedImage {
	return EncodedImage{
		Base64:   base64.StdEncoding.EncodeToString(u.Data),
		MIMEType: u.Format.MIMEType(),
	}
}

// EncodedImage a transport-safe (base64) view of an uploaded image, used to build one outgoing request.
type EncodedImage struct {
	Base64   string
	MIMEType string
}

// EncodeImage reads the whole stream and returns its standard base64 encoding.
func EncodeImage(r io.Reader, format ImageFormat) (EncodedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	return UploadedImage{Data: data, Format: format}.Encode(), nil
}

// DataURL the image as a "data:" URL (used by OpenAI-style APIs and for displaying the image back).
func (e EncodedImage) DataURL() string {
	return "data:" + e.MIMEType + ";base64," + e.Base64
}

// Decode the raw bytes back, for SDKs which do their own base64 encoding.
func (e EncodedImage) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Base64)
}
