package vm

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrSuspended may be returned by a bridge's ReadLine to pause the
// machine instead of faulting it: the program counter stays on the
// INPUT instruction and the machine remains Running, ready to be
// snapshotted or resumed with a fresh bridge.
var ErrSuspended = errors.New("input suspended")

// Bridge is the machine's only contact with the outside world: PRINT
// goes through WriteLine, INPUT blocks on ReadLine. The machine never
// inspects the transport behind it; a host cancels a blocked INPUT by
// closing the input side, which surfaces as a read error and faults the
// machine.
type Bridge interface {
	WriteLine(text string) error
	ReadLine() (string, error)
}

// StdioBridge adapts an io.Reader/io.Writer pair, typically a terminal.
type StdioBridge struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdioBridge(in io.Reader, out io.Writer) *StdioBridge {
	return &StdioBridge{in: bufio.NewReader(in), out: out}
}

func (b *StdioBridge) WriteLine(text string) error {
	_, err := io.WriteString(b.out, text+"\n")
	return err
}

func (b *StdioBridge) ReadLine() (string, error) {
	line, err := b.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// A final unterminated line still counts.
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimRight(line, "\n")
	return strings.TrimRight(line, "\r"), nil
}

// SuspendOnEOF wraps a bridge so that end of input suspends the machine
// instead of faulting it. Other read errors pass through unchanged.
func SuspendOnEOF(b Bridge) Bridge {
	return &eofSuspendBridge{Bridge: b}
}

type eofSuspendBridge struct {
	Bridge
}

func (b *eofSuspendBridge) ReadLine() (string, error) {
	line, err := b.Bridge.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", ErrSuspended
	}
	return line, err
}
