// Package printer renders a decoded CBOR claim tree as indented text, one
// key or array index per line.
package printer

import (
	"bufio"
	"github.com/coronacheck/hc1dump/cborvalue"
	"github.com/go-errors/errors"
	"io"
	"strconv"
	"strings"
)

const indentUnit = "  "

type Printer struct {
	w          *bufio.Writer
	diagnostic bool
	err        error
}

// New creates a printer writing to w. In diagnostic mode, values that are
// normally skipped (byte strings, simple values, floats, tags and non-scalar
// map keys) are rendered in CBOR diagnostic notation instead.
func New(w io.Writer, diagnostic bool) *Printer {
	return &Printer{
		w:          bufio.NewWriter(w),
		diagnostic: diagnostic,
	}
}

// Print writes v and flushes. It returns the first write or render error.
func (p *Printer) Print(v cborvalue.Value) error {
	p.printValue(v, 0)
	if p.err != nil {
		return p.err
	}

	err := p.w.Flush()
	if err != nil {
		return errors.WrapPrefix(err, "Could not flush output", 0)
	}

	return nil
}

func (p *Printer) printValue(v cborvalue.Value, level int) {
	indent := strings.Repeat(indentUnit, level)

	switch v.Kind {
	case cborvalue.KindMap:
		for _, pair := range v.Map {
			key, ok := p.keyText(pair.Key)
			if !ok {
				continue
			}

			if val, ok := p.valueText(pair.Value); ok {
				p.writeLine(indent + key + ": " + val)
				continue
			}

			p.writeLine(indent + key + ":")
			p.printValue(pair.Value, level+1)
		}

	case cborvalue.KindArray:
		for i, item := range v.Array {
			p.writeLine(indent + strconv.Itoa(i) + ":")
			p.printValue(item, level+1)
		}

	default:
		if val, ok := p.valueText(v); ok {
			p.writeLine(indent + val)
		}
	}
}

func (p *Printer) keyText(v cborvalue.Value) (string, bool) {
	if v.IsScalar() {
		return v.String(), true
	}
	if !p.diagnostic {
		return "", false
	}

	return p.diag(v)
}

// valueText returns the single-line form of v, if it has one.
func (p *Printer) valueText(v cborvalue.Value) (string, bool) {
	if v.IsScalar() {
		return v.String(), true
	}
	if !p.diagnostic || v.Kind == cborvalue.KindMap || v.Kind == cborvalue.KindArray {
		return "", false
	}

	return p.diag(v)
}

func (p *Printer) diag(v cborvalue.Value) (string, bool) {
	s, err := v.Diagnostic()
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return "", false
	}

	return s, true
}

func (p *Printer) writeLine(line string) {
	if p.err != nil {
		return
	}

	_, err := p.w.WriteString(line + "\n")
	if err != nil {
		p.err = errors.WrapPrefix(err, "Could not write output", 0)
	}
}
