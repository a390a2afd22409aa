package capgains

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// fields is a JSON object that keeps its keys in insertion order.
// The zero value is an empty object.
type fields struct {
	keys   []string
	values []any
}

// Set adds key with value, encoded with json.Marshal.
func (f *fields) Set(key string, value any) *fields {
	f.keys = append(f.keys, key)
	f.values = append(f.values, value)
	return f
}

// SetString adds key unless value is empty.
func (f *fields) SetString(key, value string) *fields {
	if value == "" {
		return f
	}
	return f.Set(key, value)
}

func (f *fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.values[i])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
