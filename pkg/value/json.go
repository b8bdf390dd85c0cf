package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes a single JSON document.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(data string) Value {
	v, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return v
}

// Decode reads exactly one JSON document from r, preserving object key order.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSON(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidJSON)
		}
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, errors.Join(ErrInvalidJSON, err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, errors.Join(ErrInvalidJSON, err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("%w: object key is not a string", ErrInvalidJSON)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Join(ErrInvalidJSON, err)
			}
			return m, nil
		case '[':
			seq := Sequence{}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				seq = append(seq, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Join(ErrInvalidJSON, err)
			}
			return seq, nil
		default:
			return nil, fmt.Errorf("%w: unexpected delimiter %q", ErrInvalidJSON, t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return Scalar{raw: t}, nil
	case bool:
		return Scalar{raw: t}, nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %v", ErrInvalidJSON, tok)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.Join(ErrInvalidJSON, io.ErrUnexpectedEOF)
	}
	return err
}

// Marshal encodes v as JSON, keeping map key order and leaving HTML characters
// unescaped so sanitized text is not rewritten a second time.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, v Value) error {
	switch n := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case String:
		return writePlain(buf, string(n))
	case Scalar:
		return writePlain(buf, n.raw)
	case Sequence:
		buf.WriteByte('[')
		for i, item := range n {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Map:
		buf.WriteByte('{')
		for i, e := range n.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writePlain(buf, e.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeJSON(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writePlain(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encoder terminates every value with a newline.
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m *Map) MarshalJSON() ([]byte, error) { return Marshal(m) }

// MarshalJSON implements json.Marshaler.
func (s Sequence) MarshalJSON() ([]byte, error) { return Marshal(s) }

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) { return Marshal(s) }

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }
