package jsonval

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// Encode serializes v back to JSON text, writing object members in the
// order Decode (or DecodeYAML) read them.
func Encode(v Value) ([]byte, error) {
	buf := new(byteWriter)
	enc := jsontext.NewEncoder(buf)
	if err := encodeValue(enc, v); err != nil {
		return nil, fmt.Errorf("jsonval: encode: %w", err)
	}
	// jsontext.Encoder ends each top-level value with a newline; the
	// returned text is the value alone.
	return bytes.TrimSuffix(buf.b, []byte{'\n'}), nil
}

func encodeValue(enc *jsontext.Encoder, v Value) error {
	if v == nil {
		return enc.WriteToken(jsontext.Null)
	}
	switch v.Kind() {
	case KindNull:
		return enc.WriteToken(jsontext.Null)
	case KindBool:
		return enc.WriteToken(jsontext.Bool(v.Bool()))
	case KindNumber:
		return enc.WriteToken(jsontext.Float(v.Number()))
	case KindString:
		return enc.WriteToken(jsontext.String(v.String()))
	case KindArray:
		if err := enc.WriteToken(jsontext.ArrayStart); err != nil {
			return err
		}
		for i := 0; ; i++ {
			elem, ok := v.Index(i)
			if !ok {
				break
			}
			if err := encodeValue(enc, elem); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ArrayEnd)
	case KindObject:
		if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
			return err
		}
		for k, mv := range v.Entries() {
			if err := enc.WriteToken(jsontext.String(k)); err != nil {
				return err
			}
			if err := encodeValue(enc, mv); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ObjectEnd)
	default:
		return fmt.Errorf("jsonval: unknown kind %v", v.Kind())
	}
}

// byteWriter adapts a growable []byte to io.Writer, the inverse of
// byteReader in decode.go.
type byteWriter struct {
	b []byte
}

func (w *byteWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}
