package sml

// File is an ordered sequence of Messages, the unit a transport read
// delivers and a transport write sends.
type File struct {
	Messages []Message
}

// FileParse decodes every Message in data. Runs of 0x00 padding bytes
// before or between messages are skipped. If a message fails to parse
// (including one with an unknown body tag), FileParse stops
// and returns whatever messages were read so far alongside the error,
// rather than discarding a file that only partially decodes.
func FileParse(data []byte) (*File, error) {
	buf := NewBuffer(data)
	f := &File{}

	for buf.Remaining() > 0 {
		skipped, err := skipPadding(buf)
		if err != nil {
			break
		}
		if skipped && buf.Remaining() == 0 {
			break
		}

		if _, err := buf.PeekType(); err != nil {
			break
		}

		msg, err := ParseMessage(buf)
		if err != nil {
			Logger.Warn("could not read the whole file", "offset", buf.Cursor(), "err", err)
			return f, err
		}
		f.Messages = append(f.Messages, *msg)
	}

	return f, nil
}

// skipPadding advances past any run of MessageEnd padding bytes that
// precede the next message, reporting whether it consumed anything.
func skipPadding(buf *Buffer) (bool, error) {
	skipped := false
	for buf.Remaining() > 0 {
		b, err := buf.CurrentByte()
		if err != nil {
			return skipped, err
		}
		if b != MessageEnd {
			break
		}
		buf.Advance(1)
		skipped = true
	}
	return skipped, nil
}

// Bytes serializes f's messages in order.
func (f *File) Bytes() []byte {
	buf := NewWriteBuffer(0)
	for i := range f.Messages {
		f.Messages[i].Write(buf)
	}
	return buf.Bytes()
}
