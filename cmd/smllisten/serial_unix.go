//go:build unix

package main

import (
	"github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// applyBaud sets a conventional baud rate via pkg/term first; SML meters
// using the IEC 62056-21 optical probe convention sometimes run at rates
// (300, 2400 with a mode-E handshake) outside pkg/term's fixed speed
// table, so a raw termios round-trip is tried as a fallback.
func applyBaud(fd *term.Term, baud int) error {
	if err := fd.SetSpeed(baud); err == nil {
		return nil
	}

	t, err := unix.IoctlGetTermios(int(fd.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}
	t.Ispeed = uint32(baud)
	t.Ospeed = uint32(baud)
	return unix.IoctlSetTermios(int(fd.Fd()), unix.TCSETS, t)
}
