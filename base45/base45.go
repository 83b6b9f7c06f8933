// Package base45 wraps the RFC 9285 Base45 codec for the EU Digital COVID
// Certificate QR payload.
package base45

import (
	"github.com/adrianrudnik/base45-go"
	"github.com/go-errors/errors"
)

// Encode returns the Base45 representation of src.
func Encode(src []byte) []byte {
	return base45.Encode(src)
}

// Decode reverses Encode. Characters outside the alphabet, a dangling single
// character and chunks that overflow their output width are rejected. An
// empty input decodes to an empty result.
func Decode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	decoded, err := base45.Decode(src)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not decode Base45", 0)
	}

	return decoded, nil
}
