package sml

// TreePath is a list of octet strings identifying a path through a Tree.
type TreePath struct {
	Path *Sequence[[]byte]
}

// ParseTreePath reads an optional TreePath.
func ParseTreePath(buf *Buffer) (TreePath, error) {
	seq, err := ParseSequence(buf, ParseOctetString)
	if err != nil {
		return TreePath{}, err
	}
	return TreePath{Path: seq}, nil
}

// Write emits p.
func (p TreePath) Write(buf *Buffer) {
	WriteSequence(buf, p.Path, WriteOctetString)
}
