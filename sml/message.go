package sml

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/mbenders/go-sml/crc16"
)

// Message is the SML_Message 6-tuple envelope: transaction id, group id,
// abort-on-error flag, body, CRC and (implicitly) the trailing end byte.
type Message struct {
	TransactionID []byte
	GroupID       *uint8
	AbortOnError  *uint8
	Body          *MessageBody
	CRC           uint16
}

// NewMessage returns a Message with a fresh random transaction id and no
// body set; callers fill in GroupID/AbortOnError/Body before writing.
func NewMessage() *Message {
	id := uuid.New()
	return &Message{TransactionID: id[:]}
}

// ParseMessage reads one SML_Message starting at buf's current cursor,
// verifying its trailing CRC-16 against the bytes it just consumed. Per
// the protocol's two known checksum variants, CRC-16/CCITT-x25 is tried
// first; on mismatch CRC-16/Kermit is tried before giving up.
func ParseMessage(buf *Buffer) (*Message, error) {
	msgStart := buf.Cursor()

	typ, err := buf.PeekType()
	if err != nil {
		return nil, err
	}
	if typ != TypeList {
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected message tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	if n != 6 {
		return nil, newErr(ErrLengthMismatch, buf.Cursor(), "message must have 6 fields")
	}

	m := &Message{}
	m.TransactionID, err = ParseOctetString(buf)
	if err != nil {
		return nil, err
	}
	m.GroupID, err = parseOptionalU8(buf)
	if err != nil {
		return nil, err
	}
	m.AbortOnError, err = parseOptionalU8(buf)
	if err != nil {
		return nil, err
	}
	m.Body, err = ParseMessageBody(buf)
	if err != nil {
		return nil, err
	}

	span := buf.Bytes()[msgStart:buf.Cursor()]

	crcTyp, err := buf.PeekType()
	if err != nil {
		return nil, err
	}
	if crcTyp != TypeUnsigned {
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected CRC field")
	}
	crcLen, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	crcNum, err := parseNumber(buf, crcLen, false)
	if err != nil {
		return nil, err
	}
	m.CRC = uint16(crcNum.Value)

	if m.CRC != crc16.X25(span) && m.CRC != crc16.Kermit(span) {
		return nil, newErr(ErrCRCMismatch, buf.Cursor(), "message CRC does not match X25 or Kermit")
	}

	if b, err := buf.CurrentByte(); err == nil && b == MessageEnd {
		buf.Advance(1)
	}

	return m, nil
}

// Write emits m's 6-tuple, computes its CRC-16/CCITT-x25 over the bytes
// just written, and appends the CRC and end byte.
func (m *Message) Write(buf *Buffer) {
	msgStart := buf.Len()

	buf.WriteTypeLength(TypeList, 6)
	WriteOctetString(buf, m.TransactionID)
	writeOptionalU8(buf, m.GroupID)
	writeOptionalU8(buf, m.AbortOnError)
	m.Body.Write(buf)

	span := buf.Bytes()[msgStart:buf.Len()]
	crc := crc16.X25(span)

	var crcBytes [2]byte
	binary.BigEndian.PutUint16(crcBytes[:], crc)
	buf.WriteTypeLength(TypeUnsigned, 2)
	buf.WriteBytes(crcBytes[:])
	buf.WriteBytes([]byte{MessageEnd})
}
