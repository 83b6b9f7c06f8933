// Package qrimage extracts the text of a single QR code from an image file.
package qrimage

import (
	"github.com/go-errors/errors"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// ReadFile decodes the QR code in the PNG, JPEG or GIF image at path.
func ReadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.WrapPrefix(err, "Could not open image", 0)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads an image from r and returns the text of the QR code in it.
// Exactly one symbol is decoded.
func Decode(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", errors.WrapPrefix(err, "Could not decode image", 0)
	}

	return DecodeImage(img)
}

func DecodeImage(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errors.WrapPrefix(err, "Could not binarize image", 0)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", errors.WrapPrefix(err, "Could not find a QR code in image", 0)
	}

	return result.GetText(), nil
}
