package common

import (
	"bytes"
	"github.com/coronacheck/hc1dump/cborvalue"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
)

const (
	COSE_SIGN1_TAG = 18
	CWT_TAG        = 61

	HEADER_LABEL_ALG = 1
	HEADER_LABEL_KID = 4

	CLAIM_ISSUER          = 1
	CLAIM_EXPIRATION_TIME = 4
	CLAIM_ISSUED_AT       = 6
	CLAIM_HCERT           = -260
)

// Sign1 is a COSE_Sign1 message as found in a HC1 QR code. Headers and
// signature are kept as opaque CBOR values.
type Sign1 struct {
	Tagged      bool
	Protected   cborvalue.Value
	Unprotected cborvalue.Value
	Payload     []byte
	Signature   cborvalue.Value

	// InflatedSize is the length of the decompressed QR data, when known
	InflatedSize int
}

// ParseSign1 reads the first CBOR item of coseCbor as a COSE_Sign1 array,
// either bare or wrapped in tag 18. A surrounding CWT tag 61 is also
// accepted. Anything after the first item is ignored.
func ParseSign1(coseCbor []byte) (*Sign1, error) {
	var root cborvalue.Value
	err := cbor.NewDecoder(bytes.NewReader(coseCbor)).Decode(&root)
	if err != nil {
		return nil, NewDecodeError(KindCoseStructure, err, "Could not CBOR unmarshal QR as COSE_Sign1")
	}

	sign1 := &Sign1{}

	if root.Kind == cborvalue.KindTag && root.TagNumber == CWT_TAG {
		root = *root.TagContent
	}
	if root.Kind == cborvalue.KindTag && root.TagNumber == COSE_SIGN1_TAG {
		sign1.Tagged = true
		root = *root.TagContent
	}

	if root.Kind == cborvalue.KindTag {
		err = errors.Errorf("Unexpected CBOR tag %d", root.TagNumber)
		return nil, &DecodeError{Kind: KindCoseStructure, Err: err}
	}
	if root.Kind != cborvalue.KindArray || len(root.Array) != 4 {
		err = errors.Errorf("Expected an array of 4 elements, got %s of %d", root.Kind, containerLen(root))
		return nil, &DecodeError{Kind: KindCoseStructure, Err: err}
	}

	payload := root.Array[2]
	if payload.Kind != cborvalue.KindBytes {
		err = errors.Errorf("Payload is a CBOR %s", payload.Kind)
		return nil, &DecodeError{Kind: KindPayloadNotBytes, Err: err}
	}

	sign1.Protected = root.Array[0]
	sign1.Unprotected = root.Array[1]
	sign1.Payload = payload.Bytes
	sign1.Signature = root.Array[3]

	return sign1, nil
}

// ReadClaims decodes the payload as the CWT claim set.
func (s *Sign1) ReadClaims() (cborvalue.Value, error) {
	claims, err := cborvalue.Decode(s.Payload)
	if err != nil {
		return cborvalue.Value{}, NewDecodeError(KindClaimCbor, err, "Could not CBOR unmarshal CWT payload")
	}

	return claims, nil
}

// Algorithm returns the alg header, looking in the protected header first.
// It is informational only: nothing here verifies the signature.
func (s *Sign1) Algorithm() (cborvalue.Value, bool) {
	return s.findHeader(HEADER_LABEL_ALG)
}

// KeyID returns the kid header, looking in the protected header first.
func (s *Sign1) KeyID() (cborvalue.Value, bool) {
	return s.findHeader(HEADER_LABEL_KID)
}

func (s *Sign1) findHeader(label int64) (cborvalue.Value, bool) {
	// The protected header is a byte string wrapping a map; an empty one is allowed
	if s.Protected.Kind == cborvalue.KindBytes && len(s.Protected.Bytes) > 0 {
		protected, err := cborvalue.Decode(s.Protected.Bytes)
		if err == nil {
			if v, ok := protected.Lookup(label); ok {
				return v, true
			}
		}
	}

	return s.Unprotected.Lookup(label)
}

func containerLen(v cborvalue.Value) int {
	switch v.Kind {
	case cborvalue.KindArray:
		return len(v.Array)
	case cborvalue.KindMap:
		return len(v.Map)
	}

	return 0
}
