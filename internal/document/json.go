package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"go.yaml.in/yaml/v4"
)

// EncodeJSON renders the tree as JSON indented by two spaces, keeping
// mapping key order. There is no trailing newline. Numbers keep their value
// but not their spelling: 1.0 is written as 1.
func EncodeJSON(n Node) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeJSON(&compact, n); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indenting JSON: %w", err)
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n Node) error {
	switch x := n.(type) {
	case *Mapping:
		buf.WriteByte('{')
		first := true
		for k, v := range x.All() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case *Sequence:
		buf.WriteByte('[')
		for i, item := range x.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case *Scalar:
		return writeJSONScalar(buf, x)

	default:
		buf.WriteString("null")
		return nil
	}
}

func writeJSONScalar(buf *bytes.Buffer, s *Scalar) error {
	yn := &yaml.Node{Kind: yaml.ScalarNode, Tag: s.Tag, Value: s.Value}

	switch s.Tag {
	case TagNull:
		buf.WriteString("null")
		return nil

	case TagBool:
		var b bool
		if err := yn.Decode(&b); err == nil {
			return writeJSONValue(buf, b)
		}

	case TagInt:
		var i int64
		if err := yn.Decode(&i); err == nil {
			return writeJSONValue(buf, i)
		}
		var u uint64
		if err := yn.Decode(&u); err == nil {
			return writeJSONValue(buf, u)
		}
		var f float64
		if err := yn.Decode(&f); err == nil {
			return writeJSONFloat(buf, f)
		}

	case TagFloat:
		var f float64
		if err := yn.Decode(&f); err == nil {
			return writeJSONFloat(buf, f)
		}
	}

	return writeJSONString(buf, s.Value)
}

// writeJSONFloat writes null for values JSON cannot represent.
func writeJSONFloat(buf *bytes.Buffer, f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		buf.WriteString("null")
		return nil
	}
	return writeJSONValue(buf, f)
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	return writeJSONValue(buf, s)
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON value: %w", err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
