// Package prompt reads answers from the user, hiding passwords when stdin is
// a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Func asks label and returns the answer without the trailing newline.
type Func func(label string) (string, error)

// ErrNoInput is returned when input ends before an answer is given.
var ErrNoInput = errors.New("prompt: no input")

// Password reads without echo from a terminal, or line by line otherwise so
// that answers can be piped in.
func Password(in *os.File, out io.Writer) Func {
	if isTerminal(in) {
		fd := int(in.Fd())
		return func(label string) (string, error) {
			_, _ = fmt.Fprint(out, label)
			b, err := term.ReadPassword(fd)
			_, _ = fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
	}
	return Lines(in, out)
}

// Lines reads one visible line per answer.
func Lines(in io.Reader, out io.Writer) Func {
	r := bufio.NewReader(in)
	return func(label string) (string, error) {
		_, _ = fmt.Fprint(out, label)
		s, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && s != "" {
				return strings.TrimRight(s, "\r\n"), nil
			}
			if errors.Is(err, io.EOF) {
				return "", ErrNoInput
			}
			return "", err
		}
		return strings.TrimRight(s, "\r\n"), nil
	}
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	return isTerminal(f)
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
