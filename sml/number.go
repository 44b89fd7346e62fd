package sml

// Number is the canonical in-memory form of an SML Integer/Unsigned: a
// native Go integer plus the wire width it was (or will be) carried in.
// The reference keeps a big-endian byte blob of the widened width; per the
// design notes that exists only so its C serializer can be reused. Here we
// keep a native int64 and the remembered width, and do the byte-order
// reflection only on Write.
type Number struct {
	Value  int64
	Width  int  // 1, 2, 4, or 8 — the widened (power-of-two) width
	Signed bool
}

// widen returns the smallest power-of-two >= n, clamped to {1,2,4,8}. n is
// the declared payload length, which may be 0 for a zero-length integer
// (treated as width 1, value 0).
func widen(n int) int {
	switch {
	case n <= 1:
		return 1
	case n <= 2:
		return 2
	case n <= 4:
		return 4
	default:
		return 8
	}
}

// parseNumber reads a length-prefixed signed or unsigned integer: the
// caller has already consumed the TL header and knows the declared
// (pre-widening) payload length n. Bytes shorter than the widened width
// are sign-extended (signed) or zero-extended (unsigned) from the MSB.
func parseNumber(buf *Buffer, n int, signed bool) (Number, error) {
	raw, err := buf.ReadBytes(n)
	if err != nil {
		return Number{}, err
	}

	width := widen(n)
	var fill byte
	if signed && len(raw) > 0 && raw[0]&0x80 != 0 {
		fill = 0xFF
	}

	full := make([]byte, width)
	for i := range full {
		full[i] = fill
	}
	copy(full[width-len(raw):], raw)

	var v uint64
	for _, b := range full {
		v = (v << 8) | uint64(b)
	}

	value := int64(v)
	if signed && width < 8 {
		shift := uint(64 - width*8)
		value = (value << shift) >> shift
	}

	return Number{Value: value, Width: width, Signed: signed}, nil
}

// writeNumber emits typ/length then the big-endian bytes of n.Width width.
func writeNumber(buf *Buffer, typ int, n Number) {
	buf.WriteTypeLength(typ, n.Width)
	out := make([]byte, n.Width)
	v := uint64(n.Value)
	for i := n.Width - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	buf.WriteBytes(out)
}

// SignExtend8 sign-extends a declared-3-byte big-endian integer the way
// an i32/u32 parser would, exposed standalone because it is one of the
// package's directly testable invariants (0xFF 0xFE 0xFD -> -259 as i32,
// 16776957 as u32).
func SignExtend8(b0, b1, b2 byte, signed bool) int64 {
	buf := NewBuffer([]byte{b0, b1, b2})
	n, _ := parseNumber(buf, 3, signed)
	return n.Value
}
