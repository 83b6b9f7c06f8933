package common

import (
	"bytes"
	"github.com/coronacheck/hc1dump/base45"
	"github.com/go-errors/errors"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"io"
)

const HC1_PREFIX = "HC1:"

// MarshalQREncoded compresses and armors an encoded COSE_Sign1 message into
// the text that is put into the QR code.
func MarshalQREncoded(coseCbor []byte) ([]byte, error) {
	// Zlib compress
	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, flate.BestCompression)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not create zlib writer", 0)
	}

	_, err = zw.Write(coseCbor)
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not write to zlib writer", 0)
	}

	err = zw.Close()
	if err != nil {
		return nil, errors.WrapPrefix(err, "Could not close zlib writer", 0)
	}

	// Base45 encode and prefix
	encoded := base45.Encode(compressed.Bytes())
	return append([]byte(HC1_PREFIX), encoded...), nil
}

// UnmarshalQREncoded reverses MarshalQREncoded and parses the COSE_Sign1
// structure, without verifying its signature.
func UnmarshalQREncoded(proofPrefixed []byte) (*Sign1, error) {
	proofBase45, err := StripPrefix(proofPrefixed)
	if err != nil {
		return nil, err
	}

	compressed, err := base45.Decode(proofBase45)
	if err != nil {
		return nil, NewDecodeError(KindBase45Malformed, err, "Could not Base45 decode QR")
	}

	coseCbor, err := Inflate(compressed)
	if err != nil {
		return nil, err
	}

	sign1, err := ParseSign1(coseCbor)
	if err != nil {
		return nil, err
	}

	sign1.InflatedSize = len(coseCbor)
	return sign1, nil
}

// StripPrefix checks for the byte exact HC1: envelope and returns what follows it.
func StripPrefix(proofPrefixed []byte) ([]byte, error) {
	if !bytes.HasPrefix(proofPrefixed, []byte(HC1_PREFIX)) {
		err := errors.Errorf("QR is not prefixed as a EU Health Credential")
		return nil, &DecodeError{Kind: KindNotAnHC1Certificate, Err: err}
	}

	return proofPrefixed[len(HC1_PREFIX):], nil
}

// Inflate decompresses a zlib stream, verifying its Adler-32 trailer.
func Inflate(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, NewDecodeError(KindInflate, err, "Could not create zlib reader")
	}
	defer zr.Close()

	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, NewDecodeError(KindInflate, err, "Could not decompress QR")
	}

	return inflated, nil
}
