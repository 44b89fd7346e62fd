package sml

// Status is an unsigned integer with the same width-widening rules as
// Value's numeric variants.
type Status struct {
	Num Number
}

// ParseStatus reads an SML Status field.
func ParseStatus(buf *Buffer) (Status, error) {
	typ, err := buf.PeekType()
	if err != nil {
		return Status{}, err
	}
	if typ != TypeUnsigned {
		return Status{}, newErr(ErrTypeMismatch, buf.Cursor(), "expected unsigned status")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return Status{}, err
	}
	num, err := parseNumber(buf, n, false)
	if err != nil {
		return Status{}, err
	}
	return Status{Num: num}, nil
}

// Write emits s.
func (s Status) Write(buf *Buffer) {
	writeNumber(buf, TypeUnsigned, s.Num)
}
