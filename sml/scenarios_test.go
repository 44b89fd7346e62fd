package sml

import "testing"

func TestS1OptionalSkipped(t *testing.T) {
	buf := NewBuffer([]byte{0x01})
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil {
		t.Fatal(err)
	}
	if !skipped {
		t.Fatal("expected optional-skip marker")
	}
	if buf.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", buf.Cursor())
	}
}

func TestS2ShortOctetString(t *testing.T) {
	buf := NewBuffer([]byte{0x05, 0x48, 0x69})
	if _, err := ParseOctetString(buf); err == nil {
		t.Fatal("expected truncation error for declared length exceeding remaining bytes")
	}

	ok := NewBuffer([]byte{0x03, 0x48, 0x69})
	got, err := ParseOctetString(ok)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hi" {
		t.Fatalf("got %q, want \"hi\"", got)
	}
}

func TestS4List7Tuple(t *testing.T) {
	buf := NewWriteBuffer(0)
	buf.WriteTypeLength(TypeList, 1)
	e := ListEntry{
		ObjName: []byte{1, 0, 1, 8, 0, 255},
		Value:   Value{Kind: ValueUnsigned, Num: Number{Value: 7, Width: 1}},
	}
	e.write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseList(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(got.Entries))
	}
	if string(got.Entries[0].ObjName) != string(e.ObjName) {
		t.Fatalf("obj name mismatch")
	}
}

func TestS5MessageCRC(t *testing.T) {
	m := NewMessage()
	m.Body = &MessageBody{
		Tag: TagGetListResponse,
		GetListResponse: &GetListResponse{
			ClientID: []byte("c"),
			ServerID: []byte("s"),
			ListName: []byte("n"),
		},
	}

	buf := NewWriteBuffer(0)
	m.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	if _, err := ParseMessage(rbuf); err != nil {
		t.Fatalf("valid CRC should parse, got %v", err)
	}

	corrupted := append([]byte{}, buf.Bytes()...)
	corrupted[len(corrupted)-3] ^= 0xFF
	rbuf2 := NewBuffer(corrupted)
	if _, err := ParseMessage(rbuf2); err == nil {
		t.Fatal("expected CRC error after flipping a CRC byte")
	}
}

func TestS8SignExtension(t *testing.T) {
	if got := SignExtend8(0xFF, 0xFE, 0xFD, true); got != -259 {
		t.Fatalf("i32: got %d, want -259", got)
	}
	if got := SignExtend8(0xFF, 0xFE, 0xFD, false); got != 16776957 {
		t.Fatalf("u32: got %d, want 16776957", got)
	}
}
