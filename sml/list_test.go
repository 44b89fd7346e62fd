package sml

import "testing"

func TestListRoundTrip(t *testing.T) {
	l := &List{Entries: []ListEntry{
		{
			ObjName: []byte{1, 0, 1, 8, 0, 255},
			Value:   Value{Kind: ValueUnsigned, Num: Number{Value: 12345, Width: 4}},
		},
		{
			ObjName: []byte{1, 0, 2, 8, 0, 255},
			Value:   Value{Kind: ValueSigned, Num: Number{Value: -7, Width: 1, Signed: true}},
		},
	}}

	buf := NewWriteBuffer(0)
	l.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseList(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("got %d entries", len(got.Entries))
	}
	if got.Entries[0].Value.Num.Value != 12345 {
		t.Fatalf("entry0 value = %d", got.Entries[0].Value.Num.Value)
	}
	if got.Entries[1].Value.Num.Value != -7 {
		t.Fatalf("entry1 value = %d", got.Entries[1].Value.Num.Value)
	}
}

func TestListDZGWorkaround(t *testing.T) {
	serialValue := append(append([]byte{}, dzgSerialStart...), 0x01, 0x02, 0x03, 0x00)
	l := &List{Entries: []ListEntry{
		{
			ObjName: dzgSerialName,
			Value:   Value{Kind: ValueOctetString, Str: serialValue},
		},
		{
			ObjName: dzgPowerName,
			Value:   Value{Kind: ValueSigned, Num: Number{Value: -1, Width: 2, Signed: true}},
		},
	}}

	buf := NewWriteBuffer(0)
	l.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseList(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Entries[1].Value.Kind != ValueUnsigned {
		t.Fatalf("expected power entry coerced to unsigned, got %v", got.Entries[1].Value.Kind)
	}
	if got.Entries[1].Value.Num.Value != 0xFFFF {
		t.Fatalf("got %d, want 0xFFFF (mask of -1 at width 2)", got.Entries[1].Value.Num.Value)
	}
}

func TestListOptionalSkip(t *testing.T) {
	buf := NewWriteBuffer(0)
	var l *List
	l.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseList(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil list, got %+v", got)
	}
}
