package qr

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"

	errors "github.com/barangay/docucheck/internal"
)

// Decode reads a PNG or JPEG from r and extracts the text of the first
// QR symbol found. A missing or unreadable symbol is reported as the
// QR_NOT_FOUND client error, never as an internal failure.
func Decode(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", errors.ErrQRNotFound
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errors.ErrQRNotFound
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", errors.ErrQRNotFound
	}

	return result.GetText(), nil
}
