package sml

import (
	"testing"

	"pgregory.net/rapid"
)

// TestRapidOctetStringRoundTrip covers invariant 1 (round-trip,
// fixed-width) for arbitrary-length octet strings.
func TestRapidOctetStringRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(rt, "payload")

		buf := NewWriteBuffer(0)
		WriteOctetString(buf, s)

		rbuf := NewBuffer(buf.Bytes())
		if len(s) == 0 {
			skipped, err := rbuf.ProbeOptionalSkipped()
			if err != nil || !skipped {
				rt.Fatalf("expected optional-skip for empty string, err=%v", err)
			}
			return
		}
		got, err := ParseOctetString(rbuf)
		if err != nil {
			rt.Fatalf("parse error: %v", err)
		}
		if string(got) != string(s) {
			rt.Fatalf("got %v, want %v", got, s)
		}
	})
}

// TestRapidNumberRoundTrip covers invariant 8 (sign extension) and
// invariant 1 (round-trip) generically across the full int32 range.
func TestRapidNumberRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Int32().Draw(rt, "value")
		signed := rapid.Bool().Draw(rt, "signed")

		var n Number
		if signed {
			n = Number{Value: int64(v), Width: 4, Signed: true}
		} else {
			n = Number{Value: int64(uint32(v)), Width: 4, Signed: false}
		}

		buf := NewWriteBuffer(0)
		typ := TypeUnsigned
		if signed {
			typ = TypeInteger
		}
		writeNumber(buf, typ, n)

		rbuf := NewBuffer(buf.Bytes())
		if _, err := rbuf.PeekType(); err != nil {
			rt.Fatal(err)
		}
		ln, err := rbuf.ReadLength()
		if err != nil {
			rt.Fatal(err)
		}
		got, err := parseNumber(rbuf, ln, signed)
		if err != nil {
			rt.Fatal(err)
		}
		if got.Value != n.Value {
			rt.Fatalf("got %d, want %d", got.Value, n.Value)
		}
	})
}

// TestRapidTLLengthRoundTrip checks that a TL header written for any
// length in a wide span reads back to the same length (the write/read
// half of invariant 6; it does not check that the header is the shortest
// one, nor that longer encodings are accepted).
func TestRapidTLLengthRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		length := rapid.IntRange(0, 5000).Draw(rt, "length")
		isList := rapid.Bool().Draw(rt, "isList")

		typ := TypeOctetString
		if isList {
			typ = TypeList
		}

		buf := NewWriteBuffer(0)
		buf.WriteTypeLength(typ, length)

		rbuf := NewBuffer(buf.Bytes())
		got, err := rbuf.ReadLength()
		if err != nil {
			rt.Fatal(err)
		}
		if got != length {
			rt.Fatalf("got %d, want %d", got, length)
		}
	})
}

// TestRapidMessageRoundTrip round-trips single randomly generated
// close-request messages through Message.Write and ParseMessage (the
// per-message part of invariant 2; File itself is not involved).
func TestRapidMessageRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sig := rapid.SliceOfN(rapid.Byte(), 0, 32).Draw(rt, "signature")

		m := NewMessage()
		m.Body = &MessageBody{Tag: TagCloseRequest, CloseRequest: &CloseRequest{GlobalSignature: sig}}

		buf := NewWriteBuffer(0)
		m.Write(buf)

		rbuf := NewBuffer(buf.Bytes())
		got, err := ParseMessage(rbuf)
		if err != nil {
			rt.Fatalf("parse error: %v", err)
		}
		if string(got.Body.CloseRequest.GlobalSignature) != string(sig) {
			rt.Fatalf("signature mismatch")
		}
	})
}
