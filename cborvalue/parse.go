package cborvalue

import (
	"bytes"
	"encoding/binary"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
	"math/big"
)

const (
	majorUnsigned = 0
	majorNegative = 1
	majorBytes    = 2
	majorText     = 3
	majorArray    = 4
	majorMap      = 5
	majorTag      = 6
	majorSimple   = 7

	infoIndefinite = 31
	breakByte      = 0xff
)

type head struct {
	major      byte
	info       byte
	arg        uint64
	size       int
	indefinite bool
}

func readHead(data []byte) (h head, err error) {
	if len(data) == 0 {
		return h, errors.Errorf("Could not read CBOR head from empty input")
	}

	h.major = data[0] >> 5
	h.info = data[0] & 0x1f

	switch {
	case h.info < 24:
		h.arg, h.size = uint64(h.info), 1
	case h.info == 24 && len(data) >= 2:
		h.arg, h.size = uint64(data[1]), 2
	case h.info == 25 && len(data) >= 3:
		h.arg, h.size = uint64(binary.BigEndian.Uint16(data[1:])), 3
	case h.info == 26 && len(data) >= 5:
		h.arg, h.size = uint64(binary.BigEndian.Uint32(data[1:])), 5
	case h.info == 27 && len(data) >= 9:
		h.arg, h.size = binary.BigEndian.Uint64(data[1:]), 9
	case h.info == infoIndefinite:
		h.indefinite, h.size = true, 1
	default:
		return h, errors.Errorf("Could not read CBOR head 0x%02x", data[0])
	}

	return h, nil
}

func parse(data []byte) (v Value, err error) {
	h, err := readHead(data)
	if err != nil {
		return Value{}, err
	}

	switch h.major {
	case majorUnsigned:
		v.Kind = KindInteger
		v.Int = new(big.Int).SetUint64(h.arg)

	case majorNegative:
		// -1 - arg, which may not fit an int64
		n := new(big.Int).SetUint64(h.arg)
		v.Kind = KindInteger
		v.Int = n.Neg(n.Add(n, big.NewInt(1)))

	case majorBytes:
		v.Kind = KindBytes
		err = cbor.Unmarshal(data, &v.Bytes)
		if err != nil {
			return Value{}, errors.WrapPrefix(err, "Could not CBOR unmarshal byte string", 0)
		}
		if v.Bytes == nil {
			v.Bytes = []byte{}
		}

	case majorText:
		v.Kind = KindText
		err = cbor.Unmarshal(data, &v.Text)
		if err != nil {
			return Value{}, errors.WrapPrefix(err, "Could not CBOR unmarshal text string", 0)
		}

	case majorArray:
		v.Kind = KindArray
		v.Array, err = parseItems(data[h.size:], h.arg, h.indefinite)
		if err != nil {
			return Value{}, err
		}

	case majorMap:
		items, err := parseItems(data[h.size:], h.arg*2, h.indefinite)
		if err != nil {
			return Value{}, err
		}
		if len(items)%2 != 0 {
			return Value{}, errors.Errorf("Could not pair up %d CBOR map items", len(items))
		}

		v.Kind = KindMap
		v.Map = make([]Pair, 0, len(items)/2)
		for i := 0; i < len(items); i += 2 {
			v.Map = append(v.Map, Pair{Key: items[i], Value: items[i+1]})
		}

	case majorTag:
		content, err := parse(data[h.size:])
		if err != nil {
			return Value{}, errors.WrapPrefix(err, "Could not parse tag content", 0)
		}

		v.Kind = KindTag
		v.TagNumber = h.arg
		v.TagContent = &content

	case majorSimple:
		switch {
		case h.info == 20 || h.info == 21:
			v.Kind = KindBool
			v.Bool = h.info == 21
		case h.info == 22:
			v.Kind = KindNull
		case h.info == 23:
			v.Kind = KindUndefined
		case h.info >= 25 && h.info <= 27:
			v.Kind = KindFloat
			err = cbor.Unmarshal(data, &v.Float)
			if err != nil {
				return Value{}, errors.WrapPrefix(err, "Could not CBOR unmarshal float", 0)
			}
		default:
			v.Kind = KindSimple
			v.Simple = uint8(h.arg)
		}
	}

	v.raw = append([]byte(nil), data...)
	return v, nil
}

// parseItems decodes count consecutive items from body, or items up to the
// break byte when indefinite is set.
func parseItems(body []byte, count uint64, indefinite bool) ([]Value, error) {
	dec := cbor.NewDecoder(bytes.NewReader(body))

	var items []Value
	if !indefinite {
		items = make([]Value, 0, count)
	}

	for i := uint64(0); indefinite || i < count; i++ {
		if indefinite {
			off := dec.NumBytesRead()
			if off >= len(body) {
				return nil, errors.Errorf("Could not find break in indefinite length CBOR item")
			}
			if body[off] == breakByte {
				break
			}
		}

		var item Value
		err := dec.Decode(&item)
		if err != nil {
			return nil, errors.WrapPrefix(err, "Could not decode CBOR container item", 0)
		}

		items = append(items, item)
	}

	return items, nil
}
