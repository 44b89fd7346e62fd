package sml

import "bytes"

// ListEntry is the SML_ListEntry 7-tuple. Optional tuple members use a
// pointer (nil = absent) except ValTime, whose own zero value already
// means "absent" (see Time.IsZero).
type ListEntry struct {
	ObjName        []byte
	Status         *Status
	ValTime        Time
	Unit           *uint8
	Scaler         *int8
	Value          Value
	ValueSignature []byte
}

// List is a contiguous vector of entries, not the reference's singly
// linked list: the wire format only ever needs the declared count and
// sequential delivery, and a vector gives consumers random access for
// free (see the design notes on linked structures vs arrays).
type List struct {
	Entries []ListEntry
}

var (
	dzgSerialName  = []byte{1, 0, 96, 1, 0, 255}
	dzgSerialStart = []byte{0x0a, 0x01, 'D', 'Z', 'G', 0x00}
	dzgSerialFixed = []byte{0x0a, 0x01, 'D', 'Z', 'G', 0x00, 0x03, 0x93, 0x87, 0x00}
	dzgPowerName   = []byte{1, 0, 16, 7, 0, 255}
)

// ParseList reads an optional SML list of 7-tuple entries, applying the
// DZG meter workaround: once an entry's obj-name is dzgSerialName and its
// value is an octet string starting with dzgSerialStart and byte-wise less
// than dzgSerialFixed, every later entry in the same list whose obj-name
// is dzgPowerName and whose declared value length is 1-3 bytes has its
// value re-tagged from signed to unsigned (the meter emits unsigned data
// under a signed tag).
//
// The byte-wise comparison against dzgSerialFixed is preserved exactly as
// the reference performs it; the intent may have been a numeric
// serial-range comparison instead, but this implementation keeps the
// literal lexicographic comparison rather than silently reinterpreting it.
func ParseList(buf *Buffer) (*List, error) {
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil {
		return nil, err
	}
	if skipped {
		return nil, nil
	}

	typ, err := buf.PeekType()
	if err != nil {
		return nil, err
	}
	if typ != TypeList {
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected list")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}

	list := &List{Entries: make([]ListEntry, 0, n)}
	oldDZG := false

	for i := 0; i < n; i++ {
		entry, valueLenMore, err := parseListEntry(buf)
		if err != nil {
			return nil, err
		}

		switch {
		case bytes.Equal(entry.ObjName, dzgSerialName) &&
			entry.Value.Kind == ValueOctetString &&
			len(entry.Value.Str) >= len(dzgSerialStart) &&
			bytes.Equal(entry.Value.Str[:len(dzgSerialStart)], dzgSerialStart) &&
			bytes.Compare(entry.Value.Str, dzgSerialFixed) < 0:
			oldDZG = true
			Logger.Debug("sml: old-DZG serial workaround triggered", "offset", buf.Cursor())
		case oldDZG && bytes.Equal(entry.ObjName, dzgPowerName) &&
			(valueLenMore == 1 || valueLenMore == 2 || valueLenMore == 3) &&
			entry.Value.Kind == ValueSigned:
			width := entry.Value.Num.Width
			mask := int64((uint64(1) << uint(8*width)) - 1)
			entry.Value.Kind = ValueUnsigned
			entry.Value.Num.Value &= mask
			entry.Value.Num.Signed = false
			Logger.Debug("sml: old-DZG power-type coercion applied", "offset", buf.Cursor())
		}

		list.Entries = append(list.Entries, entry)
	}

	return list, nil
}

func parseListEntry(buf *Buffer) (ListEntry, int, error) {
	typ, err := buf.PeekType()
	if err != nil {
		return ListEntry{}, 0, err
	}
	if typ != TypeList {
		return ListEntry{}, 0, newErr(ErrTypeMismatch, buf.Cursor(), "expected list entry tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return ListEntry{}, 0, err
	}
	if n != 7 {
		return ListEntry{}, 0, newErr(ErrLengthMismatch, buf.Cursor(), "list entry must have 7 fields")
	}

	var e ListEntry

	e.ObjName, err = ParseOctetString(buf)
	if err != nil {
		return ListEntry{}, 0, err
	}

	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil {
		return ListEntry{}, 0, err
	}
	if !skipped {
		st, err := ParseStatus(buf)
		if err != nil {
			return ListEntry{}, 0, err
		}
		e.Status = &st
	}

	e.ValTime, err = ParseTime(buf)
	if err != nil {
		return ListEntry{}, 0, err
	}

	skipped, err = buf.ProbeOptionalSkipped()
	if err != nil {
		return ListEntry{}, 0, err
	}
	if !skipped {
		u, err := parseUnsignedField(buf)
		if err != nil {
			return ListEntry{}, 0, err
		}
		v := uint8(u)
		e.Unit = &v
	}

	skipped, err = buf.ProbeOptionalSkipped()
	if err != nil {
		return ListEntry{}, 0, err
	}
	if !skipped {
		typ, err := buf.PeekType()
		if err != nil {
			return ListEntry{}, 0, err
		}
		if typ != TypeInteger {
			return ListEntry{}, 0, newErr(ErrTypeMismatch, buf.Cursor(), "expected signed scaler")
		}
		ln, err := buf.ReadLength()
		if err != nil {
			return ListEntry{}, 0, err
		}
		num, err := parseNumber(buf, ln, true)
		if err != nil {
			return ListEntry{}, 0, err
		}
		v := int8(num.Value)
		e.Scaler = &v
	}

	valueTL, err := buf.CurrentByte()
	if err != nil {
		return ListEntry{}, 0, err
	}
	valueLenMore := int(valueTL & (continueBit | lengthMask))

	e.Value, err = ParseValue(buf)
	if err != nil {
		return ListEntry{}, 0, err
	}

	e.ValueSignature, err = parseOptionalOctetString(buf)
	if err != nil {
		return ListEntry{}, 0, err
	}

	return e, valueLenMore, nil
}

func parseOptionalOctetString(buf *Buffer) ([]byte, error) {
	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil {
		return nil, err
	}
	if skipped {
		return nil, nil
	}
	return ParseOctetString(buf)
}

// Write emits l, or an optional-skip marker if l is nil.
func (l *List) Write(buf *Buffer) {
	if l == nil {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, len(l.Entries))
	for _, e := range l.Entries {
		e.write(buf)
	}
}

func (e ListEntry) write(buf *Buffer) {
	buf.WriteTypeLength(TypeList, 7)
	WriteOctetString(buf, e.ObjName)
	if e.Status == nil {
		buf.WriteOptionalSkipped()
	} else {
		e.Status.Write(buf)
	}
	e.ValTime.Write(buf)
	if e.Unit == nil {
		buf.WriteOptionalSkipped()
	} else {
		writeNumber(buf, TypeUnsigned, Number{Value: int64(*e.Unit), Width: 1})
	}
	if e.Scaler == nil {
		buf.WriteOptionalSkipped()
	} else {
		writeNumber(buf, TypeInteger, Number{Value: int64(*e.Scaler), Width: 1, Signed: true})
	}
	e.Value.Write(buf)
	if len(e.ValueSignature) == 0 {
		buf.WriteOptionalSkipped()
	} else {
		WriteOctetString(buf, e.ValueSignature)
	}
}
