// Package transport implements the SML file framing: the escape/padding
// envelope that brackets an sml.File's encoded bytes on a serial or
// TCP byte stream.
package transport

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mbenders/go-sml/crc16"
)

var (
	start = []byte{0x1B, 0x1B, 0x1B, 0x1B, 0x01, 0x01, 0x01, 0x01}
	esc   = []byte{0x1B, 0x1B, 0x1B, 0x1B}
)

// DefaultMaxFrameLen bounds how many bytes Read will buffer for a single
// frame before giving up, matching the reference implementation's ~8 KiB
// ceiling.
const DefaultMaxFrameLen = 8192

// ErrFrameTooLong is returned when a frame exceeds the configured maximum.
var ErrFrameTooLong = errors.New("transport: frame exceeds maximum length")

// ErrUnsupportedEscape is returned when a 4-byte ESC window is followed by
// something other than END (0x1A) or a re-escaped literal ESC sequence.
var ErrUnsupportedEscape = errors.New("transport: unsupported escape sequence")

// Write wraps file (an encoded sml.File) in the START/escape/padding
// envelope and writes it to w, returning the number of bytes written.
func Write(w io.Writer, file []byte) (int, error) {
	var buf bytes.Buffer
	buf.Write(start)
	buf.Write(file)

	padCount := (4 - buf.Len()%4) % 4
	for i := 0; i < padCount; i++ {
		buf.WriteByte(0x00)
	}

	buf.Write(esc)
	buf.WriteByte(0x1A)
	buf.WriteByte(byte(padCount))

	crc := crc16.X25(buf.Bytes())
	var crcBytes [2]byte
	binary.BigEndian.PutUint16(crcBytes[:], crc)
	buf.Write(crcBytes[:])

	return w.Write(buf.Bytes())
}

// Read scans r for one START-delimited frame and returns it (START through
// the trailing CRC, inclusive). An escaped literal ESC run (two ESC
// sequences in a row) is collapsed to a single 1B 1B 1B 1B in the returned
// frame; everything else is returned as received. The trailing CRC is not
// checked. maxLen bounds total frame size; pass 0 for DefaultMaxFrameLen.
func Read(r io.Reader, maxLen int) ([]byte, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxFrameLen
	}

	br := newByteReader(r)
	if err := scanForStart(br); err != nil {
		return nil, err
	}

	frame := append([]byte{}, start...)
	window := make([]byte, 4)

	for {
		if len(frame) > maxLen {
			return nil, ErrFrameTooLong
		}

		if _, err := io.ReadFull(br, window); err != nil {
			return nil, fmt.Errorf("transport: reading frame: %w", err)
		}

		if bytes.Equal(window, esc) {
			next, err := br.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("transport: reading escape continuation: %w", err)
			}

			switch next {
			case 0x1A:
				frame = append(frame, esc...)
				frame = append(frame, next)
				padCount, err := br.ReadByte()
				if err != nil {
					return nil, fmt.Errorf("transport: reading pad count: %w", err)
				}
				frame = append(frame, padCount)
				var crcBytes [2]byte
				if _, err := io.ReadFull(br, crcBytes[:]); err != nil {
					return nil, fmt.Errorf("transport: reading CRC: %w", err)
				}
				frame = append(frame, crcBytes[:]...)
				return frame, nil
			case 0x1B:
				// A conformant encoder escaping a literal 1B 1B 1B 1B
				// run inside the payload doubles it to 1B 1B 1B 1B 1B 1B
				// 1B 1B; one 1B was already consumed as next, so read the
				// remaining three and treat the whole run as one literal
				// ESC sequence rather than aborting, per the redesign note
				// in the spec's open questions — the reference bails here.
				rest := make([]byte, 3)
				if _, err := io.ReadFull(br, rest); err != nil {
					return nil, fmt.Errorf("transport: reading escaped literal: %w", err)
				}
				if rest[0] != 0x1B || rest[1] != 0x1B || rest[2] != 0x1B {
					return nil, ErrUnsupportedEscape
				}
				frame = append(frame, esc...)
			default:
				return nil, ErrUnsupportedEscape
			}
			continue
		}

		frame = append(frame, window...)
	}
}

// Listen repeatedly calls Read on r and invokes fn with each framed
// slice until r is exhausted (io.EOF), fn returns an error, or ctx is
// canceled. Cancellation is observed between frames only: the
// underlying io.Reader has no cancellation primitive of its own, so a
// blocked Read can only be interrupted by closing the source.
func Listen(ctx context.Context, r io.Reader, maxLen int, fn func([]byte) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := Read(r, maxLen)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := fn(frame); err != nil {
			return err
		}
	}
}

// Unescape strips frame's START/ESC/END/padding envelope and returns the
// inner encoded sml.File bytes. It does not collapse escaped-literal ESC
// runs itself; frames returned by Read already have them collapsed.
func Unescape(frame []byte) ([]byte, error) {
	if len(frame) < len(start)+len(esc)+1+1+2 {
		return nil, fmt.Errorf("transport: frame too short to unescape")
	}
	if !bytes.Equal(frame[:len(start)], start) {
		return nil, fmt.Errorf("transport: frame missing START")
	}

	endIdx := len(frame) - (len(esc) + 1 + 1 + 2)
	if !bytes.Equal(frame[endIdx:endIdx+len(esc)], esc) || frame[endIdx+len(esc)] != 0x1A {
		return nil, fmt.Errorf("transport: frame missing END")
	}
	padCount := int(frame[endIdx+len(esc)+1])

	inner := frame[len(start):endIdx]
	if padCount > len(inner) {
		return nil, fmt.Errorf("transport: pad count exceeds frame length")
	}

	// Read already collapses any escaped-literal ESC run it encountered
	// back to a single literal occurrence, so inner needs no further
	// unescaping here — only the padding trim.
	return inner[:len(inner)-padCount], nil
}

func scanForStart(br *byteReader) error {
	matched := 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("transport: scanning for start: %w", err)
		}
		if b == start[matched] {
			matched++
			if matched == len(start) {
				return nil
			}
			continue
		}
		if b == start[0] {
			matched = 1
		} else {
			matched = 0
		}
	}
}

// byteReader adapts an io.Reader to io.ByteReader without requiring the
// caller to provide one, buffering a single byte at a time to keep the
// scan loop simple.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func newByteReader(r io.Reader) *byteReader {
	if br, ok := r.(*byteReader); ok {
		return br
	}
	return &byteReader{r: r}
}

func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}

func (b *byteReader) Read(p []byte) (int, error) {
	for i := range p {
		c, err := b.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = c
	}
	return len(p), nil
}
