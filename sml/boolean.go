package sml

// ParseBoolean reads a single-byte SML boolean: nonzero is true.
func ParseBoolean(buf *Buffer) (bool, error) {
	typ, err := buf.PeekType()
	if err != nil {
		return false, err
	}
	if typ != TypeBoolean {
		return false, newErr(ErrTypeMismatch, buf.Cursor(), "expected boolean")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return false, err
	}
	if n != 1 {
		return false, newErr(ErrLengthMismatch, buf.Cursor(), "boolean payload must be 1 byte")
	}
	raw, err := buf.ReadBytes(1)
	if err != nil {
		return false, err
	}
	return raw[0] != 0, nil
}

// WriteBoolean emits v canonicalized to 0xFF (true) or 0x00 (false).
func WriteBoolean(buf *Buffer, v bool) {
	buf.WriteTypeLength(TypeBoolean, 1)
	if v {
		buf.WriteBytes([]byte{0xFF})
	} else {
		buf.WriteBytes([]byte{0x00})
	}
}
