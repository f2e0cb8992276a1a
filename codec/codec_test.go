package codec

import (
	"strings"
	"testing"
)

type record struct {
	Quote string `json:"quote" msgpack:"quote"`
	Book  string `json:"book" msgpack:"book"`
}

func TestJSONKeepsTextVerbatim(t *testing.T) {
	v := record{Quote: "धर्मक्षेत्रे <कुरुक्षेत्रे> & समवेताः", Book: "Bhagavad Gita"}

	b, err := JSON[record]{}.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(b)
	if strings.Contains(s, `\u`) {
		t.Fatalf("payload must not escape unicode or html runes: %s", s)
	}
	if !strings.Contains(s, v.Quote) {
		t.Fatalf("payload must carry the text byte-exact: %s", s)
	}
	if strings.HasSuffix(s, "\n") {
		t.Fatalf("payload must not carry a trailing newline")
	}

	got, err := JSON[record]{}.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != v {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, v)
	}
}

func TestLimitRejectsOversizedPayload(t *testing.T) {
	c := LimitCodec[record]{Inner: JSON[record]{}, MaxDecode: 8}

	b, err := c.Encode(record{Quote: "long enough to exceed eight bytes"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(b); err == nil {
		t.Fatalf("oversized payload must be rejected before decoding")
	}

	unlimited := LimitCodec[record]{Inner: JSON[record]{}}
	if _, err := unlimited.Decode(b); err != nil {
		t.Fatalf("limit disabled: %v", err)
	}
}
