package sml

import "testing"

func TestSignExtend8(t *testing.T) {
	got := SignExtend8(0xFF, 0xFE, 0xFD, true)
	if got != -259 {
		t.Fatalf("signed: got %d, want -259", got)
	}

	gotU := SignExtend8(0xFF, 0xFE, 0xFD, false)
	if gotU != 16776957 {
		t.Fatalf("unsigned: got %d, want 16776957", gotU)
	}
}

func TestWidenPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 7: 8, 8: 8}
	for n, want := range cases {
		if got := widen(n); got != want {
			t.Fatalf("widen(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestNumberRoundTripUnsigned(t *testing.T) {
	buf := NewWriteBuffer(0)
	writeNumber(buf, TypeUnsigned, Number{Value: 300, Width: 2})

	rbuf := NewBuffer(buf.Bytes())
	typ, err := rbuf.PeekType()
	if err != nil || typ != TypeUnsigned {
		t.Fatalf("type: %d, %v", typ, err)
	}
	n, err := rbuf.ReadLength()
	if err != nil {
		t.Fatal(err)
	}
	num, err := parseNumber(rbuf, n, false)
	if err != nil {
		t.Fatal(err)
	}
	if num.Value != 300 {
		t.Fatalf("got %d, want 300", num.Value)
	}
}

func TestNumberWidenedU16FromTwoBytePayload(t *testing.T) {
	// TL byte 0x63 declares length 3 (TL-inclusive), so a 2-byte payload
	// 01 2C follows; value 0x012C = 300 widens in memory to 2 bytes, kept
	// as Number.Width 2 (the unsigned | width 2 stamp, 0x62).
	buf := NewBuffer([]byte{0x63, 0x01, 0x2C})
	n, err := buf.ReadLength()
	if err != nil {
		t.Fatal(err)
	}
	num, err := parseNumber(buf, n, false)
	if err != nil {
		t.Fatal(err)
	}
	if num.Value != 300 {
		t.Fatalf("got %d, want 300", num.Value)
	}
	if num.Width != 2 {
		t.Fatalf("width got %d, want 2", num.Width)
	}
}
