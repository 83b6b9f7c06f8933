package common

import (
	"github.com/go-errors/errors"
)

// ErrorKind identifies the decoding stage that failed.
type ErrorKind int

const (
	KindNotAnHC1Certificate ErrorKind = iota + 1
	KindBase45Malformed
	KindInflate
	KindCoseStructure
	KindPayloadNotBytes
	KindClaimCbor
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotAnHC1Certificate:
		return "not an HC1 certificate"
	case KindBase45Malformed:
		return "malformed Base45"
	case KindInflate:
		return "zlib inflate failed"
	case KindCoseStructure:
		return "invalid COSE_Sign1 structure"
	case KindPayloadNotBytes:
		return "COSE payload is not a byte string"
	case KindClaimCbor:
		return "invalid claim CBOR"
	case KindIO:
		return "output failed"
	}

	return "unknown decode error"
}

// DecodeError is returned by every stage of the HC1 pipeline.
type DecodeError struct {
	Kind ErrorKind
	Err  error
}

// Sentinels for errors.Is; they match any DecodeError of the same kind.
var (
	ErrNotAnHC1Certificate = &DecodeError{Kind: KindNotAnHC1Certificate}
	ErrBase45Malformed     = &DecodeError{Kind: KindBase45Malformed}
	ErrInflate             = &DecodeError{Kind: KindInflate}
	ErrCoseStructure       = &DecodeError{Kind: KindCoseStructure}
	ErrPayloadNotBytes     = &DecodeError{Kind: KindPayloadNotBytes}
	ErrClaimCbor           = &DecodeError{Kind: KindClaimCbor}
	ErrIO                  = &DecodeError{Kind: KindIO}
)

// NewDecodeError wraps err with a stack trace and prefix, tagged with kind.
func NewDecodeError(kind ErrorKind, err error, prefix string) *DecodeError {
	return &DecodeError{
		Kind: kind,
		Err:  errors.WrapPrefix(err, prefix, 1),
	}
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}

	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

// ErrorStack returns the stack trace of the wrapped cause, if it has one.
func (e *DecodeError) ErrorStack() string {
	if err, ok := e.Err.(*errors.Error); ok {
		return err.ErrorStack()
	}

	return e.Error()
}
