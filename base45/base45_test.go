package base45

import (
	refbase45 "github.com/adrianrudnik/base45-go"
	"github.com/go-errors/errors"
	"github.com/stretchr/testify/require"
	"math/rand"
	"testing"
)

var vectors = []struct {
	decoded string
	encoded string
}{
	{"AB", "BB8"},
	{"Hello!!", "%69 VD92EX0"},
	{"base-45", "UJCLQE7W581"},
	{"ietf!", "QED8WEX0"},
}

func TestEncode(t *testing.T) {
	for _, v := range vectors {
		require.Equal(t, v.encoded, string(Encode([]byte(v.decoded))))
	}
}

func TestDecode(t *testing.T) {
	for _, v := range vectors {
		decoded, err := Decode([]byte(v.encoded))
		require.NoError(t, err)
		require.Equal(t, v.decoded, string(decoded))
	}
}

func TestEmptyInput(t *testing.T) {
	require.Empty(t, Encode(nil))

	decoded, err := Decode(nil)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	require.Empty(t, decoded)

	decoded, err = Decode([]byte{})
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name    string
		encoded string
		err     error
	}{
		{"dangling character", "BB8B", refbase45.ErrInvalidLength},
		{"invalid character", "!!!", refbase45.ErrInvalidEncodingCharacters},
		{"lowercase is outside the alphabet", "bb8", refbase45.ErrInvalidEncodingCharacters},
		// 44 + 44*45 + 44*45*45 = 91124
		{"full chunk overflow", ":::", refbase45.ErrInvalidEncodedDataOverflow},
		// 16 + 16*45 + 32*45*45 = 65536
		{"first full chunk overflow", "GGW", refbase45.ErrInvalidEncodedDataOverflow},
		// 44 + 44*45 = 2024
		{"final pair overflow", "BB8::", refbase45.ErrInvalidEncodedDataOverflow},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			decoded, err := Decode([]byte(c.encoded))
			require.Error(t, err)
			require.Nil(t, decoded)
			require.True(t, errors.Is(err, c.err), err.Error())
			require.Contains(t, err.Error(), "Could not decode Base45")
		})
	}
}

func TestDecodeLargestChunk(t *testing.T) {
	// 65535 = 15 + 16*45 + 32*45*45
	decoded, err := Decode([]byte("FGW"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF}, decoded)
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(45))
	for size := 1; size < 200; size++ {
		src := make([]byte, size)
		rnd.Read(src)

		decoded, err := Decode(Encode(src))
		require.NoError(t, err)
		require.Equal(t, src, decoded)
	}
}
