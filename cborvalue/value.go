// Package cborvalue holds a generic CBOR data item tree that, unlike decoding
// into map[interface{}]interface{}, keeps map pairs in their encoded order.
package cborvalue

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
	"math/big"
	"strconv"
)

type Kind int

const (
	KindInteger Kind = iota + 1
	KindBytes
	KindText
	KindArray
	KindMap
	KindBool
	KindNull
	KindUndefined
	KindSimple
	KindFloat
	KindTag
)

var kindNames = [...]string{
	KindInteger:   "integer",
	KindBytes:     "bytes",
	KindText:      "text",
	KindArray:     "array",
	KindMap:       "map",
	KindBool:      "bool",
	KindNull:      "null",
	KindUndefined: "undefined",
	KindSimple:    "simple",
	KindFloat:     "float",
	KindTag:       "tag",
}

func (k Kind) String() string {
	if k <= 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Pair is a single map entry.
type Pair struct {
	Key   Value
	Value Value
}

// Value is one decoded CBOR data item. Only the fields belonging to Kind are set.
type Value struct {
	Kind Kind

	Int    *big.Int
	Bytes  []byte
	Text   string
	Array  []Value
	Map    []Pair
	Bool   bool
	Float  float64
	Simple uint8

	TagNumber  uint64
	TagContent *Value

	raw []byte
}

// Decode parses data as exactly one CBOR data item.
func Decode(data []byte) (Value, error) {
	var v Value
	err := cbor.Unmarshal(data, &v)
	if err != nil {
		return Value{}, errors.WrapPrefix(err, "Could not CBOR unmarshal value", 0)
	}

	return v, nil
}

// UnmarshalCBOR is called by the cbor package with a single well-formed item.
func (v *Value) UnmarshalCBOR(data []byte) error {
	parsed, err := parse(data)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// IsScalar reports whether the value prints on the same line as its key.
func (v Value) IsScalar() bool {
	return v.Kind == KindInteger || v.Kind == KindText
}

// String renders scalars as plain text; other kinds render as their kind name.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return v.Int.String()
	case KindText:
		return v.Text
	}

	return v.Kind.String()
}

// Raw returns the encoded bytes the value was decoded from.
func (v Value) Raw() []byte {
	return v.raw
}

// Diagnostic renders the value in RFC 8949 diagnostic notation.
func (v Value) Diagnostic() (string, error) {
	if v.raw == nil {
		return "", errors.Errorf("Could not render %s value without encoded form", v.Kind)
	}

	diag, err := cbor.Diagnose(v.raw)
	if err != nil {
		return "", errors.WrapPrefix(err, "Could not render CBOR diagnostic notation", 0)
	}

	return diag, nil
}

// Lookup finds the first map pair whose key is the integer key.
func (v Value) Lookup(key int64) (Value, bool) {
	if v.Kind != KindMap {
		return Value{}, false
	}

	k := big.NewInt(key)
	for _, pair := range v.Map {
		if pair.Key.Kind == KindInteger && pair.Key.Int.Cmp(k) == 0 {
			return pair.Value, true
		}
	}

	return Value{}, false
}
