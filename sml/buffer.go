package sml

// Type field values, the high nibble of a TL byte (SML_TYPE_FIELD = 0x70).
const (
	TypeOctetString = 0x00
	TypeBoolean     = 0x40
	TypeInteger     = 0x50
	TypeUnsigned    = 0x60
	TypeList        = 0x70
)

const (
	typeFieldMask = 0x70
	lengthMask    = 0x0F
	continueBit   = 0x80
)

// OptionalSkip is the single byte standing in for any absent optional field.
const OptionalSkip = 0x01

// MessageEnd is the padding/terminator byte following a Message on the wire.
const MessageEnd = 0x00

// invalidType is returned by PeekType when the cursor is past the end of
// the buffer; it cannot collide with any real type field (those are all
// <= 0x70).
const invalidType = 0x100

// Buffer is a cursor-based byte buffer used both to parse received bytes
// and to grow a write buffer on demand. Unlike the C/Python reference it
// carries no shared error flag: every operation that can fail returns an
// error directly, and on any parse failure the cursor position is left
// undefined for the caller, who is expected to abandon the parse.
type Buffer struct {
	buf    []byte
	cursor int
}

// NewBuffer wraps data for parsing. The cursor starts at zero.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{buf: data}
}

// NewWriteBuffer returns an empty Buffer ready for writing, pre-sized to
// reduce reallocation.
func NewWriteBuffer(capacityHint int) *Buffer {
	if capacityHint <= 0 {
		capacityHint = 512
	}
	return &Buffer{buf: make([]byte, 0, capacityHint)}
}

// Cursor returns the current read/write position.
func (b *Buffer) Cursor() int { return b.cursor }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.buf) }

// Remaining reports how many unread bytes are left.
func (b *Buffer) Remaining() int { return len(b.buf) - b.cursor }

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte { return b.buf }

// CurrentByte returns the byte at the cursor without advancing it.
func (b *Buffer) CurrentByte() (byte, error) {
	if b.cursor >= len(b.buf) {
		return 0, newErr(ErrTruncation, b.cursor, "buffer exhausted")
	}
	return b.buf[b.cursor], nil
}

// PeekType returns the type nibble of the byte at the cursor.
func (b *Buffer) PeekType() (int, error) {
	if b.cursor >= len(b.buf) {
		return invalidType, newErr(ErrTruncation, b.cursor, "buffer exhausted reading type")
	}
	return int(b.buf[b.cursor]) & typeFieldMask, nil
}

// ReadLength parses one or more TL bytes starting at the cursor, advances
// the cursor past them, and returns the element count (for lists) or the
// payload byte count (for primitives) after applying the list-vs-primitive
// offset correction: the declared length includes the TL byte(s)
// themselves for non-list types, so the primitive payload length is
// (declared length) - (number of TL bytes consumed).
func (b *Buffer) ReadLength() (int, error) {
	if b.cursor >= len(b.buf) {
		return 0, newErr(ErrTruncation, b.cursor, "buffer exhausted reading length")
	}

	first := b.buf[b.cursor]
	isList := (first & typeFieldMask) == TypeList
	offset := 0
	if !isList {
		offset = -1
	}

	length := 0
	for b.cursor < len(b.buf) {
		bt := b.buf[b.cursor]
		length = (length << 4) | int(bt&lengthMask)

		if bt&continueBit != continueBit {
			break
		}
		b.cursor++
		if !isList {
			offset--
		}
	}

	if b.cursor < len(b.buf) {
		b.cursor++
	} else {
		return 0, newErr(ErrTruncation, b.cursor, "truncated TL continuation")
	}

	return length + offset, nil
}

// WriteTypeLength emits the shortest legal TL header for (typ, length) at
// the cursor. For non-list types the stored length is length+1 to account
// for the TL byte itself; if that growth spills into another nibble the
// header widens by one more continuation byte (and can cascade again, the
// rare case handled below).
func (b *Buffer) WriteTypeLength(typ int, length int) {
	isList := typ == TypeList
	if !isList {
		length++
	}

	if length <= lengthMask {
		b.appendByte(byte(typ) | byte(length))
		return
	}

	// Determine how many nibbles (beyond the first) are needed, i.e. how
	// many continuation TL bytes.
	nibbles := 1
	for v := length >> 4; v > 0; v >>= 4 {
		nibbles++
	}

	// Growing the length by the TL-byte count can itself push the value
	// into one more nibble; recompute once to account for that, mirroring
	// the reference's cascading mask_pos adjustment. Lists have no
	// TL-self-reference to begin with, so this growth only applies to
	// the non-list branch above.
	if !isList {
		grown := length + (nibbles - 1)
		for v := grown >> 4; v > (1<<(4*(nibbles-1)))-1 && nibbles < 8; v >>= 4 {
			nibbles++
			grown = length + (nibbles - 1)
		}
		length = grown
	}

	shift := 4 * (nibbles - 1)
	start := b.cursor
	b.appendByte(0)
	b.buf[start] = byte(typ) | continueBit | byte((length>>shift)&lengthMask)

	for shift -= 4; shift > 0; shift -= 4 {
		b.appendByte(continueBit | byte((length>>shift)&lengthMask))
	}
	b.appendByte(byte(length & lengthMask))
}

// ProbeOptionalSkipped consumes and reports whether the next byte is the
// optional-skip marker.
func (b *Buffer) ProbeOptionalSkipped() (bool, error) {
	if b.cursor >= len(b.buf) {
		return false, newErr(ErrTruncation, b.cursor, "buffer exhausted probing optional")
	}
	if b.buf[b.cursor] == OptionalSkip {
		b.cursor++
		return true, nil
	}
	return false, nil
}

// WriteOptionalSkipped emits the optional-skip marker.
func (b *Buffer) WriteOptionalSkipped() {
	b.appendByte(OptionalSkip)
}

// Advance moves the cursor forward n bytes (used after copying payload
// bytes read via a slice view).
func (b *Buffer) Advance(n int) { b.cursor += n }

// ReadBytes copies the next n bytes and advances the cursor.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.cursor+n > len(b.buf) {
		return nil, newErr(ErrTruncation, b.cursor, "buffer exhausted reading payload")
	}
	out := make([]byte, n)
	copy(out, b.buf[b.cursor:b.cursor+n])
	b.cursor += n
	return out, nil
}

// WriteBytes appends raw bytes.
func (b *Buffer) WriteBytes(p []byte) {
	b.ensureCapacity(len(p))
	b.buf = append(b.buf, p...)
	b.cursor = len(b.buf)
}

func (b *Buffer) appendByte(v byte) {
	b.ensureCapacity(1)
	b.buf = append(b.buf, v)
	b.cursor = len(b.buf)
}

// ensureCapacity grows the backing array so n more bytes fit, doubling as
// needed; append already does this for us, but we mirror the reference's
// explicit operation for symmetry with its API surface.
func (b *Buffer) ensureCapacity(n int) {
	if cap(b.buf)-len(b.buf) >= n {
		return
	}
	newCap := cap(b.buf) * 2
	if newCap < len(b.buf)+n {
		newCap = len(b.buf) + n
	}
	grown := make([]byte, len(b.buf), newCap)
	copy(grown, b.buf)
	b.buf = grown
}
