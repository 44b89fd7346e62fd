package sml

// Time tag values.
const (
	TimeSecIndex  = 0x01
	TimeTimestamp = 0x02
)

// Time is the 2-tuple {tag, u32}. The zero value (Tag == 0) represents
// an absent time, used both for a genuinely optional field and for the
// FROETEC workaround below, where the payload is dropped rather than
// preserved.
type Time struct {
	Tag   byte
	Value uint32
}

// IsZero reports whether t carries no usable data.
func (t Time) IsZero() bool { return t.Tag == 0 }

// ParseTime reads an optional SML Time, tolerating two documented vendor
// bugs:
//
//   - Holley DTZ541 elides the 2-tuple wrapper and writes a bare 5-byte
//     unsigned (type byte 0x65) where a SML_TIME_SEC_INDEX tag+value pair
//     was expected; the tag is synthesized.
//   - FROETEC Multiflex ZG22 sometimes writes the value slot as a 3-element
//     list (u32, i16, i16) instead of a single u32; those three values are
//     logged and discarded, leaving Time as its zero value, and parsing
//     continues rather than failing.
func ParseTime(buf *Buffer) (Time, error) {
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil {
		return Time{}, err
	}
	if skipped {
		return Time{}, nil
	}

	cur, err := buf.CurrentByte()
	if err != nil {
		return Time{}, err
	}

	var tag byte
	if cur == (TypeUnsigned | 5) {
		// Holley DTZ541: no enclosing list, tag synthesized as sec-index.
		tag = TimeSecIndex
		Logger.Debug("sml: Holley DTZ541 time workaround applied", "offset", buf.Cursor())
	} else {
		typ, err := buf.PeekType()
		if err != nil {
			return Time{}, err
		}
		if typ != TypeList {
			return Time{}, newErr(ErrTypeMismatch, buf.Cursor(), "expected time list")
		}
		n, err := buf.ReadLength()
		if err != nil {
			return Time{}, err
		}
		if n != 2 {
			return Time{}, newErr(ErrLengthMismatch, buf.Cursor(), "time tuple must have 2 elements")
		}
		tagNum, err := parseUnsignedField(buf)
		if err != nil {
			return Time{}, err
		}
		tag = byte(tagNum)
	}

	valType, err := buf.PeekType()
	if err != nil {
		return Time{}, err
	}

	switch valType {
	case TypeUnsigned:
		n, err := buf.ReadLength()
		if err != nil {
			return Time{}, err
		}
		num, err := parseNumber(buf, n, false)
		if err != nil {
			return Time{}, err
		}
		return Time{Tag: tag, Value: uint32(num.Value)}, nil
	case TypeList:
		n, err := buf.ReadLength()
		if err != nil {
			return Time{}, err
		}
		_ = n
		t1n, err := buf.ReadLength()
		if err != nil {
			return Time{}, err
		}
		t1, err := parseNumber(buf, t1n, false)
		if err != nil {
			return Time{}, err
		}
		t2n, err := buf.ReadLength()
		if err != nil {
			return Time{}, err
		}
		t2, err := parseNumber(buf, t2n, true)
		if err != nil {
			return Time{}, err
		}
		t3n, err := buf.ReadLength()
		if err != nil {
			return Time{}, err
		}
		t3, err := parseNumber(buf, t3n, true)
		if err != nil {
			return Time{}, err
		}
		Logger.Warn("sml: time as list[3], ignoring", "value0", t1.Value, "value1", t2.Value, "value2", t3.Value)
		return Time{}, nil
	default:
		return Time{}, newErr(ErrTypeMismatch, buf.Cursor(), "unexpected time value type")
	}
}

// Write emits t, or an optional-skip marker if t is zero.
func (t Time) Write(buf *Buffer) {
	if t.IsZero() {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, 2)
	writeNumber(buf, TypeUnsigned, Number{Value: int64(t.Tag), Width: 1})
	writeNumber(buf, TypeUnsigned, Number{Value: int64(t.Value), Width: 4})
}

// parseUnsignedField reads a TL-prefixed unsigned integer at the cursor.
func parseUnsignedField(buf *Buffer) (uint64, error) {
	typ, err := buf.PeekType()
	if err != nil {
		return 0, err
	}
	if typ != TypeUnsigned {
		return 0, newErr(ErrTypeMismatch, buf.Cursor(), "expected unsigned integer")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return 0, err
	}
	num, err := parseNumber(buf, n, false)
	if err != nil {
		return 0, err
	}
	return uint64(num.Value), nil
}
