package jsonval

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

// Decode parses a single JSON text from data into a Value tree, preserving
// object member order by streaming jsontext.Decoder tokens instead of
// unmarshaling into map[string]any (whose key order Go does not preserve).
func Decode(data []byte) (Value, error) {
	dec := jsontext.NewDecoder(newByteReader(data))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("jsonval: decode: %w", err)
	}
	return v, nil
}

func decodeValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case 'n':
		return Null{}, nil
	case 't', 'f':
		return Bool(tok.Bool()), nil
	case '"':
		return String(tok.String()), nil
	case '0':
		return Number(tok.Float()), nil
	case '[':
		arr := Array{}
		for dec.PeekKind() != ']' {
			elem, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		if _, err := dec.ReadToken(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil
	case '{':
		obj := NewObject(0)
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(keyTok.String(), val)
		}
		if _, err := dec.ReadToken(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("jsonval: unexpected token %v", tok)
	}
}

// byteReader adapts a []byte to io.Reader without an extra copy.
type byteReader struct {
	b []byte
	i int
}

func newByteReader(b []byte) *byteReader { return &byteReader{b: b} }

func (r *byteReader) Read(p []byte) (int, error) {
	if r.i >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.i:])
	r.i += n
	return n, nil
}

// DecodeYAML parses a single YAML document from data into a Value tree.
// Mapping key order is preserved because yaml.Node's Content slice already
// stores mapping nodes as alternating key/value pairs in document order.
func DecodeYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonval: decode yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return Null{}, nil
	}
	return decodeYAMLNode(doc.Content[0])
}

func decodeYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return decodeYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return decodeYAMLNode(n.Alias)
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeYAMLNode(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := NewObject(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := decodeYAMLNode(n.Content[i])
			if err != nil {
				return nil, err
			}
			val, err := decodeYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key.String(), val)
		}
		return obj, nil
	default:
		return Null{}, nil
	}
}

func decodeYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, err
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}
