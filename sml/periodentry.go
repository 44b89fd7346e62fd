package sml

// PeriodEntry is the SML_PeriodEntry 5-tuple.
type PeriodEntry struct {
	ObjName        []byte
	Unit           *uint8
	Scaler         *int8
	Value          Value
	ValueSignature []byte
}

// ParsePeriodEntry reads an optional PeriodEntry.
func ParsePeriodEntry(buf *Buffer) (*PeriodEntry, error) {
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
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected period entry tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	if n != 5 {
		return nil, newErr(ErrLengthMismatch, buf.Cursor(), "period entry must have 5 fields")
	}

	e := &PeriodEntry{}
	e.ObjName, err = ParseOctetString(buf)
	if err != nil {
		return nil, err
	}

	skipped, err = buf.ProbeOptionalSkipped()
	if err != nil {
		return nil, err
	}
	if !skipped {
		u, err := parseUnsignedField(buf)
		if err != nil {
			return nil, err
		}
		v := uint8(u)
		e.Unit = &v
	}

	skipped, err = buf.ProbeOptionalSkipped()
	if err != nil {
		return nil, err
	}
	if !skipped {
		typ, err := buf.PeekType()
		if err != nil {
			return nil, err
		}
		if typ != TypeInteger {
			return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected signed scaler")
		}
		ln, err := buf.ReadLength()
		if err != nil {
			return nil, err
		}
		num, err := parseNumber(buf, ln, true)
		if err != nil {
			return nil, err
		}
		v := int8(num.Value)
		e.Scaler = &v
	}

	e.Value, err = ParseValue(buf)
	if err != nil {
		return nil, err
	}

	e.ValueSignature, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Write emits e, or an optional-skip marker if e is nil.
func (e *PeriodEntry) Write(buf *Buffer) {
	if e == nil {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, 5)
	WriteOctetString(buf, e.ObjName)
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
