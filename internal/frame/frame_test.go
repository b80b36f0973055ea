package frame

import (
	"bytes"
	"testing"

	apperrors "passstore/cli/internal/errors"
)

func TestEncodeLittleEndianPrefix(t *testing.T) {
	payload := []byte(`{"type":"getLogin","entry":"web/example"}`)
	got, err := Encode(payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(got) != PrefixLen+len(payload) {
		t.Fatalf("len = %d, want %d", len(got), PrefixLen+len(payload))
	}
	want := []byte{byte(len(payload)), 0, 0, 0}
	if !bytes.Equal(got[:PrefixLen], want) {
		t.Fatalf("prefix = %v, want %v", got[:PrefixLen], want)
	}
	if !bytes.Equal(got[PrefixLen:], payload) {
		t.Fatalf("payload mismatch: %q", got[PrefixLen:])
	}
}

func TestEncodeMultiByteLength(t *testing.T) {
	payload := bytes.Repeat([]byte("a"), 0x0102)
	got, err := Encode(payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got[0] != 0x02 || got[1] != 0x01 || got[2] != 0 || got[3] != 0 {
		t.Fatalf("prefix = %v, want [2 1 0 0]", got[:PrefixLen])
	}
}

func TestEncodeCountsBytesNotRunes(t *testing.T) {
	payload := []byte(`{"password":"pässwörd"}`)
	got, err := Encode(payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if int(got[0]) != len(payload) {
		t.Fatalf("prefix = %d, want %d", got[0], len(payload))
	}
}

func TestWriteDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"type":"query","query":"web"}`)
	if err := Write(&buf, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("payload mismatch: %q", out)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	msg, _ := Encode([]byte("{}"))
	msg = append(msg, "junk"...)
	out, err := Decode(msg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("payload = %q, want {}", out)
	}
}

func TestDecodeTruncated(t *testing.T) {
	msg := []byte{10, 0, 0, 0, '{', '}'}
	if _, err := Decode(msg); !apperrors.Is(err, apperrors.JSON) {
		t.Fatalf("expected json kind error, got %v", err)
	}
	if _, err := Decode([]byte{1, 2}); !apperrors.Is(err, apperrors.JSON) {
		t.Fatalf("expected json kind error, got %v", err)
	}
}

func TestSkipDropsExactlyFourBytes(t *testing.T) {
	out := append([]byte{0xde, 0xad, 0xbe, 0xef}, `{"password":"abc"}`...)
	got, err := Skip(out)
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if string(got) != `{"password":"abc"}` {
		t.Fatalf("skip = %q", got)
	}
}

func TestSkipShortOutput(t *testing.T) {
	for _, out := range [][]byte{nil, {1}, {1, 2, 3}} {
		if _, err := Skip(out); !apperrors.Is(err, apperrors.JSON) {
			t.Fatalf("Skip(%v): expected json kind error, got %v", out, err)
		}
	}
	got, err := Skip([]byte{1, 2, 3, 4})
	if err != nil || len(got) != 0 {
		t.Fatalf("Skip(4 bytes) = %q, %v; want empty, nil", got, err)
	}
}
