package sml

// Sequence is a homogeneous list of N elements parameterized by an
// element codec, used for TreePath (octet strings) and anywhere else a
// plain repeated field shows up. Unlike List's fixed 7-tuple entries,
// elements here are whatever shape the caller's parse/write functions
// produce.
type Sequence[T any] struct {
	Items []T
}

// ParseSequence reads an optional SML list and decodes each element with
// parseElem.
func ParseSequence[T any](buf *Buffer, parseElem func(*Buffer) (T, error)) (*Sequence[T], error) {
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
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected sequence list")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}

	seq := &Sequence[T]{Items: make([]T, 0, n)}
	for i := 0; i < n; i++ {
		item, err := parseElem(buf)
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, item)
	}
	return seq, nil
}

// WriteSequence emits seq as a list, or an optional-skip marker if seq is nil.
func WriteSequence[T any](buf *Buffer, seq *Sequence[T], writeElem func(*Buffer, T)) {
	if seq == nil {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, len(seq.Items))
	for _, item := range seq.Items {
		writeElem(buf, item)
	}
}
