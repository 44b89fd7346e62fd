package sml

import "bytes"

// ParseOctetString reads an SML octet-string: a TL header followed by
// that many raw bytes. Length 0 is a valid empty string, distinct from
// OptionalSkip which the caller must probe for first.
func ParseOctetString(buf *Buffer) ([]byte, error) {
	typ, err := buf.PeekType()
	if err != nil {
		return nil, err
	}
	if typ != TypeOctetString {
		return nil, newErr(ErrTypeMismatch, buf.Cursor(), "expected octet string")
	}
	n, err := buf.ReadLength()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	return buf.ReadBytes(n)
}

// WriteOctetString emits s as an octet string, or an optional-skip marker
// if s is nil or empty (matching the reference's "null/empty emitted as
// optional-skip" write policy).
func WriteOctetString(buf *Buffer, s []byte) {
	if len(s) == 0 {
		buf.WriteOptionalSkipped()
		return
	}
	buf.WriteTypeLength(TypeOctetString, len(s))
	buf.WriteBytes(s)
}

// ToHexString renders b as uppercase hex pairs, space-separated. When
// mixed is true, printable ASCII runs are passed through literally instead
// of being hex-encoded, matching the reference's to_strhex(mixed) helper.
func ToHexString(b []byte, mixed bool) string {
	var out bytes.Buffer
	for i, c := range b {
		if i > 0 {
			out.WriteByte(' ')
		}
		if mixed && c >= 0x20 && c < 0x7F {
			out.WriteByte(c)
			continue
		}
		const hex = "0123456789ABCDEF"
		out.WriteByte(hex[c>>4])
		out.WriteByte(hex[c&0x0F])
	}
	return out.String()
}
