package common

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseSign1Forms(t *testing.T) {
	payload := marshalCOSE(t, map[int]string{1: "DE"})
	untagged := []interface{}{[]byte{}, map[int]int{}, payload, []byte{}}

	t.Run("bare array", func(t *testing.T) {
		sign1, err := ParseSign1(marshalCOSE(t, untagged))
		require.NoError(t, err)
		require.False(t, sign1.Tagged)
		require.Equal(t, payload, sign1.Payload)
	})

	t.Run("tag 18", func(t *testing.T) {
		sign1, err := ParseSign1(marshalCOSE(t, cbor.Tag{Number: COSE_SIGN1_TAG, Content: untagged}))
		require.NoError(t, err)
		require.True(t, sign1.Tagged)
		require.Equal(t, payload, sign1.Payload)
	})

	t.Run("CWT tag around tag 18", func(t *testing.T) {
		inner := cbor.Tag{Number: COSE_SIGN1_TAG, Content: untagged}
		sign1, err := ParseSign1(marshalCOSE(t, cbor.Tag{Number: CWT_TAG, Content: inner}))
		require.NoError(t, err)
		require.True(t, sign1.Tagged)
		require.Equal(t, payload, sign1.Payload)
	})

	t.Run("trailing data is ignored", func(t *testing.T) {
		data := append(marshalCOSE(t, untagged), 0x01, 0x02)
		sign1, err := ParseSign1(data)
		require.NoError(t, err)
		require.Equal(t, payload, sign1.Payload)
	})
}

func TestParseSign1Errors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		err  error
	}{
		{"empty", nil, ErrCoseStructure},
		{"invalid CBOR", []byte{0x84, 0x40}, ErrCoseStructure},
		{"map root", marshalCOSE(t, map[int]int{1: 2}), ErrCoseStructure},
		{"three elements", marshalCOSE(t, []interface{}{[]byte{}, map[int]int{}, []byte{0xa0}}), ErrCoseStructure},
		{"five elements", marshalCOSE(t, []interface{}{[]byte{}, map[int]int{}, []byte{0xa0}, []byte{}, []byte{}}), ErrCoseStructure},
		{"other tag", marshalCOSE(t, cbor.Tag{Number: 98, Content: []interface{}{[]byte{}, map[int]int{}, []byte{0xa0}, []byte{}}}), ErrCoseStructure},
		{"text payload", marshalCOSE(t, []interface{}{[]byte{}, map[int]int{}, "payload", []byte{}}), ErrPayloadNotBytes},
		{"null payload", marshalCOSE(t, []interface{}{[]byte{}, map[int]int{}, nil, []byte{}}), ErrPayloadNotBytes},
		{"map payload", marshalCOSE(t, []interface{}{[]byte{}, map[int]int{}, map[int]int{}, []byte{}}), ErrPayloadNotBytes},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseSign1(c.data)
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestReadClaims(t *testing.T) {
	sign1 := &Sign1{Payload: marshalCOSE(t, map[int]string{1: "DE"})}
	claims, err := sign1.ReadClaims()
	require.NoError(t, err)

	iss, ok := claims.Lookup(CLAIM_ISSUER)
	require.True(t, ok)
	require.Equal(t, "DE", iss.Text)

	sign1 = &Sign1{Payload: []byte{0xa1, 0x01}}
	_, err = sign1.ReadClaims()
	require.ErrorIs(t, err, ErrClaimCbor)

	sign1 = &Sign1{Payload: []byte{}}
	_, err = sign1.ReadClaims()
	require.ErrorIs(t, err, ErrClaimCbor)
}

func TestHeaders(t *testing.T) {
	protected := marshalCOSE(t, map[int]int{HEADER_LABEL_ALG: -7})
	unprotected := map[int]interface{}{HEADER_LABEL_KID: []byte("kid1"), HEADER_LABEL_ALG: -37}

	sign1, err := ParseSign1(marshalCOSE(t, []interface{}{protected, unprotected, []byte{0xa0}, []byte{}}))
	require.NoError(t, err)

	alg, ok := sign1.Algorithm()
	require.True(t, ok)
	require.Equal(t, "-7", alg.String())

	kid, ok := sign1.KeyID()
	require.True(t, ok)
	require.Equal(t, []byte("kid1"), kid.Bytes)

	sign1, err = ParseSign1(marshalCOSE(t, []interface{}{[]byte{}, map[int]int{}, []byte{0xa0}, []byte{}}))
	require.NoError(t, err)

	_, ok = sign1.Algorithm()
	require.False(t, ok)
	_, ok = sign1.KeyID()
	require.False(t, ok)
}
