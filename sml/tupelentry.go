package sml

// PhaseQuantity groups the repeated {unit, scaler, value} triple that
// appears six times in TupelEntry (once per phase/quadrant).
type PhaseQuantity struct {
	Unit   *uint8
	Scaler *int8
	Value  *int64
}

func parsePhaseQuantity(buf *Buffer) (PhaseQuantity, error) {
	var q PhaseQuantity

	skipped, err := buf.ProbeOptionalSkipped()
	if err != nil {
		return q, err
	}
	if !skipped {
		u, err := parseUnsignedField(buf)
		if err != nil {
			return q, err
		}
		v := uint8(u)
		q.Unit = &v
	}

	skipped, err = buf.ProbeOptionalSkipped()
	if err != nil {
		return q, err
	}
	if !skipped {
		typ, err := buf.PeekType()
		if err != nil {
			return q, err
		}
		if typ != TypeInteger {
			return q, newErr(ErrTypeMismatch, buf.Cursor(), "expected signed scaler")
		}
		ln, err := buf.ReadLength()
		if err != nil {
			return q, err
		}
		num, err := parseNumber(buf, ln, true)
		if err != nil {
			return q, err
		}
		v := int8(num.Value)
		q.Scaler = &v
	}

	skipped, err = buf.ProbeOptionalSkipped()
	if err != nil {
		return q, err
	}
	if !skipped {
		typ, err := buf.PeekType()
		if err != nil {
			return q, err
		}
		if typ != TypeInteger {
			return q, newErr(ErrTypeMismatch, buf.Cursor(), "expected signed value")
		}
		ln, err := buf.ReadLength()
		if err != nil {
			return q, err
		}
		num, err := parseNumber(buf, ln, true)
		if err != nil {
			return q, err
		}
		q.Value = &num.Value
	}

	return q, nil
}

func (q PhaseQuantity) write(buf *Buffer) {
	if q.Unit == nil {
		buf.WriteOptionalSkipped()
	} else {
		writeNumber(buf, TypeUnsigned, Number{Value: int64(*q.Unit), Width: 1})
	}
	if q.Scaler == nil {
		buf.WriteOptionalSkipped()
	} else {
		writeNumber(buf, TypeInteger, Number{Value: int64(*q.Scaler), Width: 1, Signed: true})
	}
	if q.Value == nil {
		buf.WriteOptionalSkipped()
	} else {
		writeNumber(buf, TypeInteger, Number{Value: *q.Value, Width: 8, Signed: true})
	}
}

// TupelEntry is the SML_TupelEntry 23-tuple describing instantaneous
// multi-phase power measurements. The German "Tupel" spelling is kept
// per the meter's own naming.
type TupelEntry struct {
	ServerID []byte
	SecIndex Time
	Status   *uint64

	PA, R1, R4      PhaseQuantity
	SignaturePAR1R4 []byte

	MA, R2, R3      PhaseQuantity
	SignatureMAR2R3 []byte
}

// ParseTupelEntry reads an optional TupelEntry.
func ParseTupelEntry(buf *Buffer) (*TupelEntry, error) {
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
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected tupel entry tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	if n != 23 {
		return nil, newErr(ErrLengthMismatch, buf.Cursor(), "tupel entry must have 23 fields")
	}

	e := &TupelEntry{}
	e.ServerID, err = ParseOctetString(buf)
	if err != nil {
		return nil, err
	}
	e.SecIndex, err = ParseTime(buf)
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
		e.Status = &u
	}

	for _, q := range []*PhaseQuantity{&e.PA, &e.R1, &e.R4} {
		*q, err = parsePhaseQuantity(buf)
		if err != nil {
			return nil, err
		}
	}
	e.SignaturePAR1R4, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}

	for _, q := range []*PhaseQuantity{&e.MA, &e.R2, &e.R3} {
		*q, err = parsePhaseQuantity(buf)
		if err != nil {
			return nil, err
		}
	}
	e.SignatureMAR2R3, err = parseOptionalOctetString(buf)
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Write emits e, or an optional-skip marker if e is nil.
func (e *TupelEntry) Write(buf *Buffer) {
	if e == nil {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, 23)
	WriteOctetString(buf, e.ServerID)
	e.SecIndex.Write(buf)
	if e.Status == nil {
		buf.WriteOptionalSkipped()
	} else {
		writeNumber(buf, TypeUnsigned, Number{Value: int64(*e.Status), Width: 8})
	}
	e.PA.write(buf)
	e.R1.write(buf)
	e.R4.write(buf)
	if len(e.SignaturePAR1R4) == 0 {
		buf.WriteOptionalSkipped()
	} else {
		WriteOctetString(buf, e.SignaturePAR1R4)
	}
	e.MA.write(buf)
	e.R2.write(buf)
	e.R3.write(buf)
	if len(e.SignatureMAR2R3) == 0 {
		buf.WriteOptionalSkipped()
	} else {
		WriteOctetString(buf, e.SignatureMAR2R3)
	}
}
