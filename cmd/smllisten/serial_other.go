//go:build !unix

package main

import "github.com/pkg/term"

func applyBaud(fd *term.Term, baud int) error {
	return fd.SetSpeed(baud)
}
