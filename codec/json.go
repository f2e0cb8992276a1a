package codec

import (
	"bytes"
	"encoding/json"
)

// JSON serializes values as UTF-8 JSON text. The encoder does not escape
// HTML-unsafe runes, so non-Latin scripts and characters like '<' land in
// the store verbatim and the payload stays readable by any other client of
// the database. The zero value is ready to use.
type JSON[V any] struct{}

var _ Codec[struct{}] = JSON[struct{}]{}

func (JSON[V]) Encode(v V) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder appends a newline after each value; strip it.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
