package sml

import (
	"testing"

	"github.com/mbenders/go-sml/crc16"
)

func TestMessageRoundTrip(t *testing.T) {
	m := NewMessage()
	groupID := uint8(0)
	abort := uint8(0)
	m.GroupID = &groupID
	m.AbortOnError = &abort
	m.Body = &MessageBody{
		Tag: TagOpenRequest,
		OpenRequest: &OpenRequest{
			ClientID: []byte("client"),
			ServerID: []byte("server"),
		},
	}

	buf := NewWriteBuffer(0)
	m.Write(buf)

	rbuf := NewBuffer(buf.Bytes())
	got, err := ParseMessage(rbuf)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.TransactionID) != string(m.TransactionID) {
		t.Fatalf("transaction id mismatch")
	}
	if got.Body.Tag != TagOpenRequest {
		t.Fatalf("tag got %x", got.Body.Tag)
	}
	if string(got.Body.OpenRequest.ClientID) != "client" {
		t.Fatalf("client id got %q", got.Body.OpenRequest.ClientID)
	}
}

func TestMessageCRCMismatchRejected(t *testing.T) {
	m := NewMessage()
	m.Body = &MessageBody{Tag: TagCloseRequest, CloseRequest: &CloseRequest{}}

	buf := NewWriteBuffer(0)
	m.Write(buf)

	corrupted := append([]byte{}, buf.Bytes()...)
	corrupted[len(corrupted)-3] ^= 0xFF // flip a CRC byte

	rbuf := NewBuffer(corrupted)
	if _, err := ParseMessage(rbuf); err == nil {
		t.Fatal("expected CRC mismatch error")
	}
}

func TestMessageKermitFallback(t *testing.T) {
	m := NewMessage()
	m.Body = &MessageBody{Tag: TagCloseRequest, CloseRequest: &CloseRequest{}}

	buf := NewWriteBuffer(0)
	m.Write(buf)
	raw := append([]byte{}, buf.Bytes()...)

	// Recompute the trailing CRC with Kermit instead of X25, as a Holley
	// meter would, and verify the fallback still accepts the message.
	span := raw[:len(raw)-4]
	kermit := crc16.Kermit(span)
	raw[len(raw)-3] = byte(kermit >> 8)
	raw[len(raw)-2] = byte(kermit)

	rbuf := NewBuffer(raw)
	if _, err := ParseMessage(rbuf); err != nil {
		t.Fatalf("expected Kermit fallback to accept message, got %v", err)
	}
}
