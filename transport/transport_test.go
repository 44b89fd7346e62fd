package transport

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/mbenders/go-sml/crc16"
)

func TestWriteReadRoundTrip(t *testing.T) {
	inner := []byte("hello sml file")

	var buf bytes.Buffer
	if _, err := Write(&buf, inner); err != nil {
		t.Fatal(err)
	}

	got, err := Read(&buf, 0)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := Unescape(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, inner) {
		t.Fatalf("got %q, want %q", decoded, inner)
	}
}

func TestS6TransportFrame(t *testing.T) {
	inner := []byte{0xAA, 0xBB, 0xCC, 0xDD} // already 4-byte aligned
	var body bytes.Buffer
	body.Write(start)
	body.Write(inner)
	body.Write(esc)
	body.WriteByte(0x1A)
	body.WriteByte(0x00)
	crc := crc16.X25(body.Bytes())
	body.WriteByte(byte(crc >> 8))
	body.WriteByte(byte(crc))

	got, err := Read(bytes.NewReader(body.Bytes()), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body.Bytes()) {
		t.Fatalf("got %x, want %x", got, body.Bytes())
	}

	decoded, err := Unescape(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, inner) {
		t.Fatalf("decoded %x, want %x", decoded, inner)
	}
}

func TestReadSkipsLeadingGarbage(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x11, 0x22})
	if _, err := Write(&buf, []byte("payload")); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(&buf, 0); err != nil {
		t.Fatal(err)
	}
}

func TestReadRejectsUnsupportedEscape(t *testing.T) {
	var body bytes.Buffer
	body.Write(start)
	body.Write(esc)
	body.WriteByte(0x42) // not END (0x1A), not a literal-escape continuation
	body.WriteByte(0x00)
	body.WriteByte(0x00)

	_, err := Read(&body, 0)
	if err == nil {
		t.Fatal("expected unsupported escape error")
	}
}

func TestReadToleratesEscapedLiteral(t *testing.T) {
	// inner = "WXYZ" + a literal 1B1B1B1B run (doubled on the wire to
	// 1B1B1B1B 1B1B1B1B, 4-byte-window aligned right after START) +
	// "ABCD", 12 bytes total, already 4-byte aligned.
	var frame bytes.Buffer
	frame.Write(start)
	frame.Write([]byte("WXYZ"))
	frame.Write(esc)
	frame.Write(esc)
	frame.Write([]byte("ABCD"))
	frame.Write(esc)
	frame.WriteByte(0x1A)
	frame.WriteByte(0x00)
	frame.WriteByte(0x00)
	frame.WriteByte(0x00)

	got, err := Read(bytes.NewReader(frame.Bytes()), 0)
	if err != nil {
		t.Fatalf("expected literal-escape tolerance, got %v", err)
	}

	decoded, err := Unescape(got)
	if err != nil {
		t.Fatal(err)
	}
	want := append(append([]byte("WXYZ"), esc...), "ABCD"...)
	if !bytes.Equal(decoded, want) {
		t.Fatalf("got %x, want %x", decoded, want)
	}
}

func TestListenStopsOnEOF(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Write(&buf, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if _, err := Write(&buf, []byte("two")); err != nil {
		t.Fatal(err)
	}

	var frames [][]byte
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Listen(ctx, &buf, 0, func(f []byte) error {
		frames = append(frames, f)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
}
