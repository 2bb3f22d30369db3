package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordReader obtains a password from the user.
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}

// TerminalPasswordReader reads passwords with echo disabled when In is a
// terminal, and line by line otherwise.
type TerminalPasswordReader struct {
	In  *os.File
	Out io.Writer

	lines *bufio.Reader
}

// NewTerminalPasswordReader reads from stdin and prompts on out.
func NewTerminalPasswordReader(out io.Writer) *TerminalPasswordReader {
	return &TerminalPasswordReader{In: os.Stdin, Out: out}
}

// ReadPassword prompts and reads one password.
func (r *TerminalPasswordReader) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(r.Out, prompt)

	fd := int(r.In.Fd()) //nolint:gosec // G115: file descriptors fit in int
	if !term.IsTerminal(fd) {
		return r.readLine()
	}

	password, err := term.ReadPassword(fd)
	fmt.Fprintln(r.Out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func (r *TerminalPasswordReader) readLine() (string, error) {
	if r.lines == nil {
		r.lines = bufio.NewReader(r.In)
	}

	line, err := r.lines.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptPassword returns password unless it is empty, in which case it asks
// the reader. With confirm set the password is asked for twice.
func promptPassword(r PasswordReader, password string, confirm bool) (string, error) {
	if password != "" {
		return password, nil
	}

	password, err := r.ReadPassword("Password: ")
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", errEmptyPassword
	}

	if confirm {
		again, err := r.ReadPassword("Confirm password: ")
		if err != nil {
			return "", err
		}
		if again != password {
			return "", errPasswordMismatch
		}
	}

	return password, nil
}
