package sml

// ProcParValue tag values.
const (
	ProcParValueTagValue       = 0x01
	ProcParValueTagPeriodEntry = 0x02
	ProcParValueTagTupelEntry  = 0x03
	ProcParValueTagTime        = 0x04
)

// ProcParValue is a 2-tuple {tag, payload} discriminating which of the
// four variants Payload holds.
type ProcParValue struct {
	Tag         byte
	Value       *Value
	PeriodEntry *PeriodEntry
	TupelEntry  *TupelEntry
	Time        *Time
}

// ParseProcParValue reads an optional ProcParValue.
func ParseProcParValue(buf *Buffer) (*ProcParValue, error) {
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
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected proc-par-value tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	if n != 2 {
		return nil, newErr(ErrLengthMismatch, buf.Cursor(), "proc-par-value must have 2 fields")
	}

	tagU, err := parseUnsignedField(buf)
	if err != nil {
		return nil, err
	}
	ppv := &ProcParValue{Tag: byte(tagU)}

	switch ppv.Tag {
	case ProcParValueTagValue:
		v, err := ParseValue(buf)
		if err != nil {
			return nil, err
		}
		ppv.Value = &v
	case ProcParValueTagPeriodEntry:
		pe, err := ParsePeriodEntry(buf)
		if err != nil {
			return nil, err
		}
		ppv.PeriodEntry = pe
	case ProcParValueTagTupelEntry:
		te, err := ParseTupelEntry(buf)
		if err != nil {
			return nil, err
		}
		ppv.TupelEntry = te
	case ProcParValueTagTime:
		t, err := ParseTime(buf)
		if err != nil {
			return nil, err
		}
		ppv.Time = &t
	default:
		return nil, newErr(ErrUnknownTag, buf.Cursor(), "unknown proc-par-value tag")
	}

	return ppv, nil
}

// Write emits p, or an optional-skip marker if p is nil.
func (p *ProcParValue) Write(buf *Buffer) {
	if p == nil {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, 2)
	writeNumber(buf, TypeUnsigned, Number{Value: int64(p.Tag), Width: 1})

	switch p.Tag {
	case ProcParValueTagValue:
		if p.Value != nil {
			p.Value.Write(buf)
		} else {
			buf.WriteOptionalSkipped()
		}
	case ProcParValueTagPeriodEntry:
		p.PeriodEntry.Write(buf)
	case ProcParValueTagTupelEntry:
		p.TupelEntry.Write(buf)
	case ProcParValueTagTime:
		if p.Time != nil {
			p.Time.Write(buf)
		} else {
			buf.WriteOptionalSkipped()
		}
	}
}
