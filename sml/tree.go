package sml

// Tree is the recursive 3-tuple {parameter-name, parameter-value?,
// child-list?}.
type Tree struct {
	ParameterName  []byte
	ParameterValue *ProcParValue
	ChildList      []*Tree
}

// ParseTree reads an optional Tree, recursing into ChildList.
func ParseTree(buf *Buffer) (*Tree, error) {
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
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected tree tuple")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	if n != 3 {
		return nil, newErr(ErrLengthMismatch, buf.Cursor(), "tree must have 3 fields")
	}

	t := &Tree{}
	t.ParameterName, err = ParseOctetString(buf)
	if err != nil {
		return nil, err
	}
	t.ParameterValue, err = ParseProcParValue(buf)
	if err != nil {
		return nil, err
	}

	skipped, err = buf.ProbeOptionalSkipped()
	if err != nil {
		return nil, err
	}
	if !skipped {
		childTyp, err := buf.PeekType()
		if err != nil {
			return nil, err
		}
		if childTyp != TypeList {
			return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected tree child list")
		}
		count, err := buf.ReadLength()
		if err != nil {
			return nil, err
		}
		t.ChildList = make([]*Tree, 0, count)
		for i := 0; i < count; i++ {
			child, err := ParseTree(buf)
			if err != nil {
				return nil, err
			}
			t.ChildList = append(t.ChildList, child)
		}
	}

	return t, nil
}

// Write emits t, or an optional-skip marker if t is nil.
func (t *Tree) Write(buf *Buffer) {
	if t == nil {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, 3)
	WriteOctetString(buf, t.ParameterName)
	t.ParameterValue.Write(buf)

	if t.ChildList == nil {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeList, len(t.ChildList))
	for _, child := range t.ChildList {
		child.Write(buf)
	}
}
