// Package input contains the readers used to get menu choices from the CLI
// or other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ChoiceReader reads one line of user input at a time. Implementations must
// have Close called on them before disposal.
type ChoiceReader interface {
	// ReadChoice blocks until a line containing non-space characters is
	// read and returns it with surrounding space trimmed. At end of input
	// the returned string is empty and the error is io.EOF.
	ReadChoice() (string, error)

	// Close tears down any resources the reader holds.
	Close() error
}

// DirectChoiceReader reads choices from any generic input stream directly.
// It can be used with any io.Reader but does not sanitize the input of
// control and escape sequences.
type DirectChoiceReader struct {
	r *bufio.Reader
}

// NewDirectReader creates a DirectChoiceReader with a buffered reader on r.
func NewDirectReader(r io.Reader) *DirectChoiceReader {
	return &DirectChoiceReader{
		r: bufio.NewReader(r),
	}
}

// Close cleans up resources associated with the DirectChoiceReader. It
// currently does nothing but callers should treat the reader as though it
// must be closed.
func (dcr *DirectChoiceReader) Close() error {
	return nil
}

// ReadChoice reads the next non-blank line from the stream.
func (dcr *DirectChoiceReader) ReadChoice() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dcr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// InteractiveChoiceReader reads choices from stdin using a go implementation
// of the GNU Readline library, which keeps input clear of typing and editing
// escape sequences and enables line history. It should in general only be
// used when directly connected to a TTY.
type InteractiveChoiceReader struct {
	rl *readline.Instance
}

// NewInteractiveReader creates an InteractiveChoiceReader and initializes
// readline with the given prompt.
func NewInteractiveReader(prompt string) (*InteractiveChoiceReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveChoiceReader{
		rl: rl,
	}, nil
}

// Close cleans up readline resources associated with the reader.
func (icr *InteractiveChoiceReader) Close() error {
	return icr.rl.Close()
}

// ReadChoice reads the next non-blank line from the terminal.
func (icr *InteractiveChoiceReader) ReadChoice() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = icr.rl.Readline()
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}
